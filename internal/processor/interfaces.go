package processor

import (
	"context"

	"resume-match-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
)

// TextEmbedder 文本向量化接口 (符合 cloudwego/eino 规范)
// 岗位与简历必须使用同一个实现实例，保证嵌入空间一致
type TextEmbedder interface {
	// EmbedStrings 将文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

// ResumeParser 简历信息提取接口
type ResumeParser interface {
	// Extract 从纯文本提取结构化简历信息，对任意输入都不会失败
	Extract(ctx context.Context, text string) *types.ParsedResume
}
