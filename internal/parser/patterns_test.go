package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWordBoundaryPattern 词条首尾为非单词字符时不加对应一侧的\b
func TestWordBoundaryPattern(t *testing.T) {
	assert.Equal(t, `(?i)\bpython\b`, wordBoundaryPattern("python"))
	assert.Equal(t, `(?i)\bc\+\+`, wordBoundaryPattern("c++"))
}

// TestSkillRegexTableCoversAllPatterns 编译表覆盖所有类别的全部词条
func TestSkillRegexTableCoversAllPatterns(t *testing.T) {
	total := 0
	for _, group := range skillPatternTable {
		total += len(group.Patterns)
	}
	assert.Equal(t, total, len(skillRegexTable))
}

// TestDegreeRegex 学位关键词词边界、大小写不敏感
func TestDegreeRegex(t *testing.T) {
	assert.True(t, degreeRegex.MatchString("completed my bachelor degree"))
	assert.True(t, degreeRegex.MatchString("M.Tech in AI"))
	assert.True(t, degreeRegex.MatchString("PhD candidate"))
	assert.False(t, degreeRegex.MatchString("mastering the craft"), "master后接字母时不应命中")
}

// TestContainsJobTitle 同义词表的子串匹配，大小写不敏感
func TestContainsJobTitle(t *testing.T) {
	assert.True(t, containsJobTitle("Senior Software Engineer at Acme"))
	assert.True(t, containsJobTitle("worked as an SDE II"))
	assert.True(t, containsJobTitle("Site Reliability Engineer"))
	assert.False(t, containsJobTitle("gardener and baker"))
}
