package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrEmbeddingFailed    = errors.New("嵌入服务调用失败")
	ErrIndexQueryFailed   = errors.New("向量索引查询失败")
	ErrCorpusUpdateFailed = errors.New("岗位语料库更新失败")
)

// MatchProcessError 包含详细错误信息的自定义错误
type MatchProcessError struct {
	RequestID string
	Op        string
	BaseErr   error
	Detail    string
}

func (e *MatchProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 请求:%s): %s", e.BaseErr, e.Op, e.RequestID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 请求:%s)", e.BaseErr, e.Op, e.RequestID)
}

func (e *MatchProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *MatchProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewEmbeddingError(requestID, detail string) error {
	return &MatchProcessError{
		RequestID: requestID,
		Op:        "embed",
		BaseErr:   ErrEmbeddingFailed,
		Detail:    detail,
	}
}

func NewIndexQueryError(requestID, detail string) error {
	return &MatchProcessError{
		RequestID: requestID,
		Op:        "search",
		BaseErr:   ErrIndexQueryFailed,
		Detail:    detail,
	}
}

func NewCorpusUpdateError(requestID, detail string) error {
	return &MatchProcessError{
		RequestID: requestID,
		Op:        "add_job",
		BaseErr:   ErrCorpusUpdateFailed,
		Detail:    detail,
	}
}
