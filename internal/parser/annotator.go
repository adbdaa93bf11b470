package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// 命名实体标签，与prose/OntoNotes标注一致
const (
	// LabelPerson 人名
	LabelPerson = "PERSON"
	// LabelGPE 地缘政治实体（城市、国家等）
	LabelGPE = "GPE"
)

// Entity 命名实体识别结果
type Entity struct {
	Text  string
	Label string
}

// Annotator 文本标注接口：句子切分 + 命名实体识别
// 作为可注入依赖由组合根构造，生命周期为进程级
type Annotator interface {
	// Annotate 返回文本的句子序列和按出现顺序排列的命名实体
	Annotate(ctx context.Context, text string) ([]string, []Entity, error)
}

// 确保ProseAnnotator实现了Annotator接口
var _ Annotator = (*ProseAnnotator)(nil)

// ProseAnnotator 基于jdkato/prose的默认标注器实现
// prose的模型数据内嵌在包内，无需外部资源
type ProseAnnotator struct{}

// NewProseAnnotator 创建prose标注器
func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

// Annotate 实现Annotator接口
func (p *ProseAnnotator) Annotate(ctx context.Context, text string) ([]string, []Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, nil, fmt.Errorf("标注文本失败: %w", err)
	}

	var sentences []string
	for _, sent := range doc.Sentences() {
		trimmed := strings.TrimSpace(sent.Text)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return sentences, entities, nil
}

// 退化的句子切分正则：按句末标点或换行切段
var fallbackSentenceRegex = regexp.MustCompile(`[^.!?\n]+[.!?]?`)

// fallbackSplitSentences 标注器不可用时的退化句子切分
// 只做正则切分，不产生命名实体
func fallbackSplitSentences(text string) []string {
	var sentences []string
	for _, raw := range fallbackSentenceRegex.FindAllString(text, -1) {
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
