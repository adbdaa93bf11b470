package processor // 简历-岗位语义匹配引擎的编排层

import (
	"context"
	"fmt"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 定义匹配引擎的专用tracer
var engineTracer = otel.Tracer("resume-match-go/processor/engine")

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// Extractor 简历信息提取组件
	Extractor ResumeParser

	// Embedder 文本嵌入组件，岗位与简历共用同一实例
	Embedder TextEmbedder

	// Corpus 岗位语料库及其派生索引
	Corpus *storage.JobCorpus
}

// MatchEngine 简历-岗位匹配引擎
//
// 三个公开操作：ParseResume、AddJob、MatchResume。所有操作同步执行，
// 运行到返回为止；查询操作不修改共享状态，只有AddJob修改语料库。
type MatchEngine struct {
	components Components
	logger     zerolog.Logger
}

// EngineOption 引擎选项函数类型
type EngineOption func(*MatchEngine)

// WithEngineLogger 设置引擎的日志记录器
func WithEngineLogger(l zerolog.Logger) EngineOption {
	return func(e *MatchEngine) {
		e.logger = l
	}
}

// NewMatchEngine 创建匹配引擎
// Extractor与Embedder为必填组件；Corpus为nil时基于Embedder自动构建
func NewMatchEngine(components Components, opts ...EngineOption) (*MatchEngine, error) {
	if components.Extractor == nil {
		return nil, fmt.Errorf("extractor组件不能为空")
	}
	if components.Embedder == nil {
		return nil, fmt.Errorf("embedder组件不能为空")
	}
	if components.Corpus == nil {
		corpus, err := storage.NewJobCorpus(components.Embedder)
		if err != nil {
			return nil, fmt.Errorf("创建岗位语料库失败: %w", err)
		}
		components.Corpus = corpus
	}

	e := &MatchEngine{
		components: components,
		logger:     logger.Logger.With().Str("component", "match_engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ParseResume 从纯文本提取结构化简历
// 提取是整体的且尽力而为：任意输入都产生合法结果，不会返回错误
func (e *MatchEngine) ParseResume(ctx context.Context, text string) *types.ParsedResume {
	ctx, span := engineTracer.Start(ctx, "MatchEngine.ParseResume",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	requestID := uuid.New().String()
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.Int("resume.text_length", len(text)),
	)

	resume := e.components.Extractor.Extract(ctx, text)

	e.logger.Info().
		Str("request_id", requestID).
		Str("name", tracing.MaskPII(resume.ContactInfo.Name)).
		Int("skills", resume.Skills.Len()).
		Msg("简历解析完成")

	return resume
}

// AddJob 注册岗位到语料库并同步重建索引
func (e *MatchEngine) AddJob(ctx context.Context, fields types.JobFields) error {
	ctx, span := engineTracer.Start(ctx, "MatchEngine.AddJob",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	requestID := uuid.New().String()
	span.SetAttributes(attribute.String("request.id", requestID))

	if err := e.components.Corpus.AddJob(ctx, fields); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeVectorIndex)
		return NewCorpusUpdateError(requestID, err.Error())
	}
	return nil
}

// MatchResume 为简历检索最匹配的topK个岗位
//
// 流程：
// 1. 用与岗位相同的嵌入器嵌入简历全文（RawText，不是摘要）
// 2. 查询索引取topK最近邻（平方L2距离升序）；语料库不足topK时全部返回
// 3. 将距离d换算为匹配分 (1 - d/2) * 100（不截断，与参考行为一致）
// 4. 计算缺失技能集合：岗位要求技能 - 候选人技能
// 结果顺序即索引的返回顺序，不做二次排序。
// 语料库为空时返回空列表而非错误；嵌入失败原样向上传播。
func (e *MatchEngine) MatchResume(ctx context.Context, resume *types.ParsedResume, topK int) ([]types.MatchResult, error) {
	ctx, span := engineTracer.Start(ctx, "MatchEngine.MatchResume",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	requestID := uuid.New().String()
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.Int("match.top_k", topK),
		attribute.String("resume.preview", tracing.SafeResumeContent(resume.RawText)),
	)

	if e.components.Corpus.Size() == 0 || topK <= 0 {
		// 空语料库是"暂无岗位"的正常状态，与基础设施错误区分开
		return []types.MatchResult{}, nil
	}

	vectors, err := e.components.Embedder.EmbedStrings(ctx, []string{resume.RawText})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, NewEmbeddingError(requestID, err.Error())
	}
	if len(vectors) == 0 {
		err := fmt.Errorf("嵌入服务未返回向量")
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, NewEmbeddingError(requestID, err.Error())
	}

	scored, err := e.components.Corpus.Search(ctx, vectors[0], topK)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeVectorIndex)
		return nil, NewIndexQueryError(requestID, err.Error())
	}

	results := make([]types.MatchResult, 0, len(scored))
	for _, s := range scored {
		results = append(results, types.MatchResult{
			Job:           s.Job,
			MatchScore:    (1 - s.Distance/2) * 100,
			MissingSkills: s.Job.RequiredSkills.Difference(resume.Skills),
		})
	}

	span.SetAttributes(attribute.Int("match.results", len(results)))
	e.logger.Info().
		Str("request_id", requestID).
		Int("top_k", topK).
		Int("results", len(results)).
		Msg("岗位匹配完成")

	return results, nil
}
