package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractFromTxtFile 纯文本文件原样读出
func TestExtractFromTxtFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Jane Smith\njane@example.com\nSoftware Engineer"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	extractor := NewLocalDocumentExtractor()
	text, err := extractor.ExtractFromFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, content, text)
}

// TestExtractUnsupportedFormat 不支持的扩展名返回带扩展名的类型化错误
func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewLocalDocumentExtractor()

	_, err := extractor.ExtractFromFile(context.Background(), "resume.xlsx")

	require.Error(t, err)
	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".xlsx", unsupported.Ext)
	assert.Contains(t, err.Error(), ".xlsx", "错误信息应原样携带扩展名")
}

// TestExtractUnsupportedFormatCaseInsensitive 扩展名比较大小写不敏感
func TestExtractUnsupportedFormatCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.TXT")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	extractor := NewLocalDocumentExtractor()
	text, err := extractor.ExtractFromFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

// TestExtractMissingTxtFile 文件不存在时返回错误（而不是panic）
func TestExtractMissingTxtFile(t *testing.T) {
	extractor := NewLocalDocumentExtractor()

	_, err := extractor.ExtractFromFile(context.Background(), "/nonexistent/resume.txt")

	assert.Error(t, err)
}
