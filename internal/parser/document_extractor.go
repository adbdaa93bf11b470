package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// DocumentExtractor 文档文本提取接口（Text Extraction Oracle）
// 按扩展名分发到对应的格式读取器
type DocumentExtractor interface {
	// ExtractFromFile 从文档文件提取纯文本
	ExtractFromFile(ctx context.Context, filePath string) (string, error)
}

// UnsupportedFormatError 不支持的文件格式错误
// 错误信息中原样携带扩展名，调用方可直接展示
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的文件格式: %s", e.Ext)
}

// 确保LocalDocumentExtractor实现了DocumentExtractor接口
var _ DocumentExtractor = (*LocalDocumentExtractor)(nil)

// LocalDocumentExtractor 本地文件的文档提取器实现
// 支持 .pdf / .docx / .doc / .txt
type LocalDocumentExtractor struct{}

// NewLocalDocumentExtractor 创建本地文档提取器
func NewLocalDocumentExtractor() *LocalDocumentExtractor {
	return &LocalDocumentExtractor{}
}

// ExtractFromFile 实现DocumentExtractor接口
func (l *LocalDocumentExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return extractPDFText(filePath)
	case ".docx", ".doc":
		return extractDocxText(filePath)
	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("读取文本文件失败: %w", err)
		}
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// extractPDFText 提取PDF各页纯文本并拼接
func extractPDFText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

// extractDocxText 提取docx文档内容
func extractDocxText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
