package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// ContactInfo 简历联系方式
// 所有字段都是可选的，未识别到时为空字符串，提取过程不会因缺失而失败
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// EducationEntry 教育经历条目
// 每个包含学位关键词的句子产生一条记录
type EducationEntry struct {
	// Degree 为句子的完整文本（去除首尾空白）
	Degree string `json:"degree"`
	// Year 为句子中第一个"20xx"形式的四位年份，未找到时为空
	Year string `json:"year"`
}

// ExperienceEntry 工作经历条目
// 每个包含已知岗位同义词的句子产生一条记录
type ExperienceEntry struct {
	Title string `json:"title"`
	// Duration 为句子中所有年/月时长片段按空格拼接的结果
	Duration string `json:"duration"`
}

// ParsedResume 简历解析结果
// 一次提取调用产生一个实例，之后不可变
type ParsedResume struct {
	ContactInfo ContactInfo       `json:"contact_info"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Skills      SkillSet          `json:"skills"`
	// RawText 保留原始全文，匹配时重新嵌入的是全文而非摘要
	RawText string `json:"raw_text"`
}

// JobPosting 岗位信息
// 一经加入语料库即不可变，不支持更新或删除
type JobPosting struct {
	// ID 为插入顺序下标
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RequiredSkills     SkillSet `json:"required_skills"`
	ExperienceRequired int      `json:"experience_required"`
	Location           string   `json:"location"`
}

// MatchResult 单条匹配结果
type MatchResult struct {
	Job JobPosting `json:"job"`
	// MatchScore 由 (1 - d/2) * 100 计算，d为平方L2距离
	// 注意：该公式未做[0,100]截断，低相似度时可能越界，与参考行为保持一致
	MatchScore float64 `json:"match_score"`
	// MissingSkills 为岗位要求技能与候选人技能的差集
	MissingSkills SkillSet `json:"missing_skills"`
}

// SkillSet 技能集合，键为小写规范化后的技能词条
// 集合语义：大小写不敏感、自动去重
type SkillSet map[string]struct{}

// NewSkillSet 从词条列表构建技能集合
func NewSkillSet(skills ...string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add 添加一个技能词条（小写规范化）
func (s SkillSet) Add(skill string) {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return
	}
	s[skill] = struct{}{}
}

// Contains 判断技能是否存在（大小写不敏感）
func (s SkillSet) Contains(skill string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// Difference 返回 s - other 的新集合，参与运算的集合不被修改
func (s SkillSet) Difference(other SkillSet) SkillSet {
	diff := make(SkillSet)
	for skill := range s {
		if _, ok := other[skill]; !ok {
			diff[skill] = struct{}{}
		}
	}
	return diff
}

// Len 返回集合大小
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted 返回排序后的词条列表，保证输出稳定
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON 将集合序列化为排序后的数组
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON 从数组反序列化集合
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSkillSet(items...)
	return nil
}

// JobFields 注册岗位时的入参字段，ID由语料库按插入顺序分配
type JobFields struct {
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	RequiredSkills     []string `json:"required_skills" yaml:"required_skills"`
	ExperienceRequired int      `json:"experience_required" yaml:"experience_required"`
	Location           string   `json:"location" yaml:"location"`
}
