package storage

import (
	"context"
	"fmt"
	"sync"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 定义语料库的专用tracer
var corpusTracer = otel.Tracer("resume-match-go/storage/jobcorpus")

// Embedder 语料库所需的最小嵌入接口 (符合 cloudwego/eino 规范)
type Embedder interface {
	// EmbedStrings 将文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

// ScoredJob 带距离的岗位查询结果
type ScoredJob struct {
	Job types.JobPosting
	// Distance 为平方L2距离
	Distance float64
}

// JobCorpus 岗位语料库及其派生的向量索引
//
// 语料库是追加式的：岗位一经加入不可更新或删除，ID为插入顺序下标。
// 每次AddJob同步整体重建索引（对全部描述做一次批量嵌入），索引没有独立
// 于语料库的生命周期。语料库/索引对由同一把读写锁保护，写锁覆盖整个
// 重建过程，读者不会观察到语料库与索引不一致的状态。
type JobCorpus struct {
	mu       sync.RWMutex
	jobs     []types.JobPosting
	index    VectorIndex
	embedder Embedder
	logger   zerolog.Logger
}

// CorpusOption 语料库选项函数类型
type CorpusOption func(*JobCorpus)

// WithIndex 替换默认的扁平索引实现
func WithIndex(index VectorIndex) CorpusOption {
	return func(c *JobCorpus) {
		c.index = index
	}
}

// WithCorpusLogger 设置语料库的日志记录器
func WithCorpusLogger(l zerolog.Logger) CorpusOption {
	return func(c *JobCorpus) {
		c.logger = l
	}
}

// NewJobCorpus 创建岗位语料库
func NewJobCorpus(embedder Embedder, opts ...CorpusOption) (*JobCorpus, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder不能为空")
	}

	c := &JobCorpus{
		embedder: embedder,
		index:    NewFlatIndex(embedder.GetDimensions()),
		logger:   logger.Logger.With().Str("component", "job_corpus").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AddJob 注册一个岗位并同步整体重建索引
//
// 重建流程：按插入顺序收集所有岗位描述（含新岗位），一次批量嵌入，
// 用得到的向量矩阵重建全新索引。嵌入失败时语料库保持不变，错误原样
// 向上传播（不重试、不本地恢复）。
func (c *JobCorpus) AddJob(ctx context.Context, fields types.JobFields) error {
	ctx, span := corpusTracer.Start(ctx, "JobCorpus.AddJob",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	job := types.JobPosting{
		ID:                 len(c.jobs),
		Title:              fields.Title,
		Description:        fields.Description,
		RequiredSkills:     types.NewSkillSet(fields.RequiredSkills...),
		ExperienceRequired: fields.ExperienceRequired,
		Location:           fields.Location,
	}

	span.SetAttributes(
		attribute.Int("corpus.job_id", job.ID),
		attribute.String("corpus.job_title", job.Title),
		attribute.String("corpus.job_description", tracing.TruncateString(job.Description, tracing.MaxJobDescLength)),
	)

	// 1. 按插入顺序收集所有描述文本
	descriptions := make([]string, 0, len(c.jobs)+1)
	for _, existing := range c.jobs {
		descriptions = append(descriptions, existing.Description)
	}
	descriptions = append(descriptions, job.Description)

	// 2. 一次批量嵌入，每个岗位一行，顺序与语料库一致
	vectors, err := c.embedder.EmbedStrings(ctx, descriptions)
	if err != nil {
		err = fmt.Errorf("嵌入岗位描述失败: %w", err)
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return err
	}
	if len(vectors) != len(descriptions) {
		err = fmt.Errorf("嵌入结果数量不匹配: 期望%d, 得到%d", len(descriptions), len(vectors))
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return err
	}

	// 3. 重建全新索引，丢弃旧索引
	if err := c.index.Rebuild(vectors); err != nil {
		err = fmt.Errorf("重建向量索引失败: %w", err)
		tracing.RecordError(span, err, tracing.ErrorTypeVectorIndex)
		return err
	}

	c.jobs = append(c.jobs, job)

	span.SetAttributes(attribute.Int("corpus.size", len(c.jobs)))
	c.logger.Info().
		Int("job_id", job.ID).
		Str("title", job.Title).
		Int("corpus_size", len(c.jobs)).
		Msg("岗位已加入语料库，索引重建完成")

	return nil
}

// Search 查询与给定向量最近的k个岗位，按距离升序排列
// 语料库为空时返回空结果而不是错误
func (c *JobCorpus) Search(ctx context.Context, queryVector []float64, k int) ([]ScoredJob, error) {
	_, span := corpusTracer.Start(ctx, "JobCorpus.Search",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	c.mu.RLock()
	defer c.mu.RUnlock()

	span.SetAttributes(
		attribute.Int("corpus.size", len(c.jobs)),
		attribute.Int("search.top_k", k),
	)

	if len(c.jobs) == 0 {
		return []ScoredJob{}, nil
	}

	neighbors, err := c.index.Search(queryVector, k)
	if err != nil {
		err = fmt.Errorf("向量索引查询失败: %w", err)
		tracing.RecordError(span, err, tracing.ErrorTypeVectorIndex)
		return nil, err
	}

	results := make([]ScoredJob, 0, len(neighbors))
	for _, n := range neighbors {
		results = append(results, ScoredJob{
			Job:      c.jobs[n.Index],
			Distance: n.Distance,
		})
	}

	span.SetAttributes(attribute.Int("search.results", len(results)))
	return results, nil
}

// Size 返回语料库中的岗位数量
func (c *JobCorpus) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}

// Jobs 返回语料库快照（副本），调用方修改不影响内部状态
func (c *JobCorpus) Jobs() []types.JobPosting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.JobPosting, len(c.jobs))
	copy(out, c.jobs)
	return out
}
