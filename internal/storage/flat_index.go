package storage

import (
	"fmt"
	"sort"
)

// Neighbor 最近邻查询的单条结果
type Neighbor struct {
	// Index 为向量在索引中的下标，与语料库插入顺序一致
	Index int
	// Distance 为平方L2距离
	Distance float64
}

// VectorIndex 向量索引接口
// 隔离重建/查询契约，便于后续替换为支持增量插入的实现而不改变语料库的可观测行为
type VectorIndex interface {
	// Rebuild 用给定向量集合整体重建索引，丢弃旧状态
	Rebuild(vectors [][]float64) error

	// Search 返回与查询向量最近的k个向量，按距离升序排列
	Search(query []float64, k int) ([]Neighbor, error)

	// Size 返回索引中的向量数量
	Size() int
}

// 确保FlatIndex实现了VectorIndex接口
var _ VectorIndex = (*FlatIndex)(nil)

// FlatIndex 精确的扁平向量索引
// 对每个存储向量做穷举的平方L2距离计算，结果确定：
// 距离相同时按插入顺序返回
type FlatIndex struct {
	dimension int
	vectors   [][]float64
}

// NewFlatIndex 创建扁平索引
// dimension为0时在首次Rebuild时从数据推断维度
func NewFlatIndex(dimension int) *FlatIndex {
	return &FlatIndex{dimension: dimension}
}

// Rebuild 实现VectorIndex接口
func (f *FlatIndex) Rebuild(vectors [][]float64) error {
	if len(vectors) == 0 {
		f.vectors = nil
		return nil
	}

	dim := f.dimension
	if dim <= 0 {
		dim = len(vectors[0])
	}

	stored := make([][]float64, len(vectors))
	for i, vec := range vectors {
		if len(vec) != dim {
			return fmt.Errorf("向量维度不一致: 第%d个向量维度为%d, 期望%d", i, len(vec), dim)
		}
		stored[i] = vec
	}

	f.dimension = dim
	f.vectors = stored
	return nil
}

// Search 实现VectorIndex接口
func (f *FlatIndex) Search(query []float64, k int) ([]Neighbor, error) {
	if len(f.vectors) == 0 || k <= 0 {
		return []Neighbor{}, nil
	}
	if len(query) != f.dimension {
		return nil, fmt.Errorf("查询向量维度错误: 得到%d, 期望%d", len(query), f.dimension)
	}

	neighbors := make([]Neighbor, len(f.vectors))
	for i, vec := range f.vectors {
		neighbors[i] = Neighbor{Index: i, Distance: squaredL2(query, vec)}
	}

	// 稳定排序保证距离相同时按插入顺序返回
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k], nil
}

// Size 实现VectorIndex接口
func (f *FlatIndex) Size() int {
	return len(f.vectors)
}

// squaredL2 计算两个向量的平方L2距离（与faiss IndexFlatL2一致，不开方）
func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
