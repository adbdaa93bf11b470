package processor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder 确定性嵌入器：相同文本产生相同向量，不同文本产生不同向量
type hashEmbedder struct {
	dimensions int
	err        error
}

func (h *hashEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if h.err != nil {
		return nil, h.err
	}
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, h.dimensions)
		for j, r := range text {
			vec[j%h.dimensions] += float64(r) / 1000
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (h *hashEmbedder) GetDimensions() int {
	return h.dimensions
}

func newTestEngine(t *testing.T, embedder TextEmbedder) *MatchEngine {
	t.Helper()
	engine, err := NewMatchEngine(Components{
		Extractor: parser.NewResumeExtractor(nil),
		Embedder:  embedder,
	})
	require.NoError(t, err)
	return engine
}

// TestNewMatchEngineValidation 缺少必填组件时构造失败
func TestNewMatchEngineValidation(t *testing.T) {
	_, err := NewMatchEngine(Components{Embedder: &hashEmbedder{dimensions: 4}})
	assert.Error(t, err)

	_, err = NewMatchEngine(Components{Extractor: parser.NewResumeExtractor(nil)})
	assert.Error(t, err)
}

// TestMatchResumeEmptyCorpus 空语料库返回空列表而非错误
func TestMatchResumeEmptyCorpus(t *testing.T) {
	engine := newTestEngine(t, &hashEmbedder{dimensions: 4})

	resume := engine.ParseResume(context.Background(), "python developer")
	results, err := engine.MatchResume(context.Background(), resume, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

// TestMatchResumeMissingSkills 缺失技能为岗位要求技能与候选人技能的差集
func TestMatchResumeMissingSkills(t *testing.T) {
	engine := newTestEngine(t, &hashEmbedder{dimensions: 8})
	ctx := context.Background()

	require.NoError(t, engine.AddJob(ctx, types.JobFields{
		Title:          "Backend Engineer",
		Description:    "Build backend services in Python with SQL databases.",
		RequiredSkills: []string{"python", "sql"},
	}))

	resume := engine.ParseResume(ctx, "Experienced python developer who worked as a software engineer for 3 years.")
	require.True(t, resume.Skills.Contains("python"))
	require.False(t, resume.Skills.Contains("sql"))

	results, err := engine.MatchResume(ctx, resume, 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Backend Engineer", results[0].Job.Title)
	assert.Equal(t, []string{"sql"}, results[0].MissingSkills.Sorted())
}

// TestMatchResumeTopKLimits 返回数量为 min(topK, 语料库大小)
func TestMatchResumeTopKLimits(t *testing.T) {
	engine := newTestEngine(t, &hashEmbedder{dimensions: 8})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, engine.AddJob(ctx, types.JobFields{
			Title:       fmt.Sprintf("岗位%d", i),
			Description: fmt.Sprintf("description number %d", i),
		}))
	}

	resume := engine.ParseResume(ctx, "generic resume text")

	results, err := engine.MatchResume(ctx, resume, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = engine.MatchResume(ctx, resume, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = engine.MatchResume(ctx, resume, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestMatchResumeIdenticalTextScoresHundred 文本与岗位描述完全相同时距离为0、分数为100
func TestMatchResumeIdenticalTextScoresHundred(t *testing.T) {
	engine := newTestEngine(t, &hashEmbedder{dimensions: 8})
	ctx := context.Background()

	text := "Senior Go developer building distributed systems."
	require.NoError(t, engine.AddJob(ctx, types.JobFields{Title: "Go开发", Description: text}))
	require.NoError(t, engine.AddJob(ctx, types.JobFields{Title: "其他岗位", Description: "completely different work"}))

	resume := engine.ParseResume(ctx, text)
	results, err := engine.MatchResume(ctx, resume, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Go开发", results[0].Job.Title)
	assert.InDelta(t, 100.0, results[0].MatchScore, 1e-9)
	assert.Less(t, results[1].MatchScore, results[0].MatchScore)
}

// TestMatchResumeDeterministic 相同输入重复查询结果完全一致
func TestMatchResumeDeterministic(t *testing.T) {
	engine := newTestEngine(t, &hashEmbedder{dimensions: 8})
	ctx := context.Background()

	for _, desc := range []string{"alpha work", "beta work", "gamma work"} {
		require.NoError(t, engine.AddJob(ctx, types.JobFields{Title: desc, Description: desc}))
	}

	resume := engine.ParseResume(ctx, "some candidate text")
	first, err := engine.MatchResume(ctx, resume, 3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := engine.MatchResume(ctx, resume, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestMatchResumeEmbedderFailure 嵌入失败时错误带类型化基础错误向上传播
func TestMatchResumeEmbedderFailure(t *testing.T) {
	embedder := &hashEmbedder{dimensions: 4}
	engine := newTestEngine(t, embedder)
	ctx := context.Background()

	require.NoError(t, engine.AddJob(ctx, types.JobFields{Description: "some job"}))

	embedder.err = fmt.Errorf("连接超时")
	resume := &types.ParsedResume{RawText: "candidate"}
	_, err := engine.MatchResume(ctx, resume, 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmbeddingFailed))
	assert.Contains(t, err.Error(), "连接超时")
}

// TestAddJobFailureWrapped 语料库更新失败时包装为类型化错误
func TestAddJobFailureWrapped(t *testing.T) {
	embedder := &hashEmbedder{dimensions: 4, err: fmt.Errorf("服务不可用")}
	engine := newTestEngine(t, embedder)

	err := engine.AddJob(context.Background(), types.JobFields{Description: "some job"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorpusUpdateFailed))
}

// TestParseResumeNeverFails 任意输入都产生合法的解析结果
func TestParseResumeNeverFails(t *testing.T) {
	engine := newTestEngine(t, &hashEmbedder{dimensions: 4})

	for _, text := range []string{"", "   ", "no structure here at all", "\x00\xff binary-ish"} {
		resume := engine.ParseResume(context.Background(), text)
		require.NotNil(t, resume)
		assert.NotNil(t, resume.Skills)
		assert.NotNil(t, resume.Education)
		assert.NotNil(t, resume.Experience)
	}
}
