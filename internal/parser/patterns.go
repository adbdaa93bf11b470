package parser

import (
	"regexp"
	"strings"
)

// SkillCategory 技能类别枚举
type SkillCategory string

const (
	// CategoryProgramming 编程语言
	CategoryProgramming SkillCategory = "programming"
	// CategoryFrameworks 开发框架
	CategoryFrameworks SkillCategory = "frameworks"
	// CategoryDatabases 数据库
	CategoryDatabases SkillCategory = "databases"
	// CategoryTools 工程工具
	CategoryTools SkillCategory = "tools"
)

// SkillPatternGroup 一个类别下的技能关键词集合
type SkillPatternGroup struct {
	Category SkillCategory
	Patterns []string
}

// JobRole 岗位角色枚举
type JobRole string

const (
	// RoleSoftwareEngineer 软件工程师
	RoleSoftwareEngineer JobRole = "software_engineer"
	// RoleDataScientist 数据科学家
	RoleDataScientist JobRole = "data_scientist"
	// RoleDevOpsEngineer DevOps工程师
	RoleDevOpsEngineer JobRole = "devops_engineer"
)

// JobSynonymGroup 一个角色及其同义岗位名称
type JobSynonymGroup struct {
	Role     JobRole
	Synonyms []string
}

// 技能模式表，加载一次后不可变
// 匹配时类别信息被丢弃，结果是扁平的技能集合：同一词条命中多个类别也只出现一次
var skillPatternTable = []SkillPatternGroup{
	{CategoryProgramming, []string{"python", "java", "javascript", "js", "c++", "ruby", "php"}},
	{CategoryFrameworks, []string{"react", "angular", "vue", "django", "flask", "spring"}},
	{CategoryDatabases, []string{"sql", "mongodb", "postgresql", "mysql", "oracle"}},
	{CategoryTools, []string{"git", "docker", "kubernetes", "aws", "azure", "gcp"}},
}

// 岗位同义词表，加载一次后不可变
var jobSynonymTable = []JobSynonymGroup{
	{RoleSoftwareEngineer, []string{"software developer", "sde", "programmer", "software engineer"}},
	{RoleDataScientist, []string{"data analyst", "ml engineer", "ai engineer", "data scientist"}},
	{RoleDevOpsEngineer, []string{"site reliability engineer", "platform engineer", "devops"}},
}

// 提取规则使用的正则，包初始化时编译一次
var (
	emailRegex    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRegex    = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	degreeRegex   = regexp.MustCompile(`(?i)\b(Bachelor|Master|PhD|B\.Tech|M\.Tech|B\.E|M\.E)\b`)
	yearRegex     = regexp.MustCompile(`\b20\d{2}\b`)
	durationRegex = regexp.MustCompile(`(?i)\d+\s*(?:year|yr|month|mo)s?`)
)

// skillRegexEntry 一条编译后的技能匹配规则
type skillRegexEntry struct {
	token string
	re    *regexp.Regexp
}

var skillRegexTable = buildSkillRegexTable()

// buildSkillRegexTable 为每个技能词条编译词边界正则
func buildSkillRegexTable() []skillRegexEntry {
	var table []skillRegexEntry
	for _, group := range skillPatternTable {
		for _, token := range group.Patterns {
			table = append(table, skillRegexEntry{
				token: token,
				re:    regexp.MustCompile(wordBoundaryPattern(token)),
			})
		}
	}
	return table
}

// wordBoundaryPattern 构造大小写不敏感的词边界模式
// 词条首尾不是单词字符时（如 "c++"）对应一侧不加 \b，否则正则永远无法匹配
func wordBoundaryPattern(token string) string {
	quoted := regexp.QuoteMeta(strings.ToLower(token))
	prefix := ""
	suffix := ""
	if isWordChar(rune(token[0])) {
		prefix = `\b`
	}
	if isWordChar(rune(token[len(token)-1])) {
		suffix = `\b`
	}
	return "(?i)" + prefix + quoted + suffix
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
