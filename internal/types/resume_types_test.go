package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSkillSetDeduplication 测试技能集合的去重和大小写不敏感语义
func TestSkillSetDeduplication(t *testing.T) {
	s := NewSkillSet("Python", "python", "PYTHON", "sql")

	assert.Equal(t, 2, s.Len(), "同一技能的不同大小写只应出现一次")
	assert.True(t, s.Contains("python"))
	assert.True(t, s.Contains("Python"))
	assert.True(t, s.Contains("SQL"))
	assert.False(t, s.Contains("java"))
}

// TestSkillSetIgnoresEmptyTokens 空白词条不应进入集合
func TestSkillSetIgnoresEmptyTokens(t *testing.T) {
	s := NewSkillSet("", "  ", "go")
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("go"))
}

// TestSkillSetDifference 测试差集运算
func TestSkillSetDifference(t *testing.T) {
	required := NewSkillSet("python", "sql", "docker")
	candidate := NewSkillSet("python")

	missing := required.Difference(candidate)

	assert.Equal(t, []string{"docker", "sql"}, missing.Sorted())
	// 差集是岗位要求技能的子集，且与候选人技能不相交
	for skill := range missing {
		assert.True(t, required.Contains(skill))
		assert.False(t, candidate.Contains(skill))
	}
	// 参与运算的集合不被修改
	assert.Equal(t, 3, required.Len())
	assert.Equal(t, 1, candidate.Len())
}

// TestSkillSetJSONRoundTrip 集合序列化为排序数组，反序列化恢复集合语义
func TestSkillSetJSONRoundTrip(t *testing.T) {
	s := NewSkillSet("sql", "python", "Python")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["python","sql"]`, string(data))

	var restored SkillSet
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, s.Sorted(), restored.Sorted())
}
