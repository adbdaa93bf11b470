package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-match-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEmbedder 构造指向本地httptest服务器的嵌入器
func newTestEmbedder(t *testing.T, handler http.HandlerFunc) (*AliyunEmbedder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	embedder, err := NewAliyunEmbedder("test-api-key", config.EmbeddingConfig{
		Model:      "text-embedding-v3",
		Dimensions: 4,
		BaseURL:    server.URL,
	})
	require.NoError(t, err)
	return embedder, server
}

// TestAliyunEmbedderEmbedStrings 正常响应解析出按顺序排列的向量
func TestAliyunEmbedderEmbedStrings(t *testing.T) {
	var gotReq AliyunOpenAIEmbeddingRequest
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := AliyunOpenAIEmbeddingResponse{
			Object: "list",
			Model:  "text-embedding-v3",
			Data: []AliyunOpenAIDataEntry{
				{Object: "embedding", Index: 0, Embedding: []float64{0.1, 0.2, 0.3, 0.4}},
				{Object: "embedding", Index: 1, Embedding: []float64{0.5, 0.6, 0.7, 0.8}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	vectors, err := embedder.EmbedStrings(context.Background(), []string{"job one", "job two"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, vectors[0])
	assert.Equal(t, []float64{0.5, 0.6, 0.7, 0.8}, vectors[1])
	assert.Equal(t, "text-embedding-v3", gotReq.Model)
	assert.Equal(t, 4, gotReq.Dimensions)
}

// TestAliyunEmbedderEmptyInput 空输入直接返回空结果，不发请求
func TestAliyunEmbedderEmptyInput(t *testing.T) {
	called := false
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	vectors, err := embedder.EmbedStrings(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.False(t, called)
}

// TestAliyunEmbedderHTTPError 非200状态码返回错误，不重试
func TestAliyunEmbedderHTTPError(t *testing.T) {
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(AliyunOpenAIError{Message: "rate limited", Type: "throttle", Code: "429"})
	})

	_, err := embedder.EmbedStrings(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

// TestAliyunEmbedderAPIErrorIn200 200响应体内的API级错误同样返回错误
func TestAliyunEmbedderAPIErrorIn200(t *testing.T) {
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		resp := AliyunOpenAIEmbeddingResponse{
			Error: &AliyunOpenAIError{Message: "too many inputs", Type: "invalid_request_error"},
		}
		json.NewEncoder(w).Encode(resp)
	})

	_, err := embedder.EmbedStrings(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many inputs")
}

// TestNewAliyunEmbedderRequiresAPIKey API密钥为空时构造失败
func TestNewAliyunEmbedderRequiresAPIKey(t *testing.T) {
	_, err := NewAliyunEmbedder("", config.EmbeddingConfig{})
	assert.Error(t, err)
}
