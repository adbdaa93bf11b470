package parser

import (
	"context"
	"strings"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// ResumeExtractor 基于规则的简历信息提取器
// 提取是尽力而为且不会失败的：任何一条规则未命中都退化为空值，
// 任意输入（包括空文本）都产生一个合法的ParsedResume，绝不返回错误
type ResumeExtractor struct {
	annotator Annotator
	logger    zerolog.Logger
}

// ExtractorOption 提取器选项函数类型
type ExtractorOption func(*ResumeExtractor)

// WithExtractorLogger 设置提取器的日志记录器
func WithExtractorLogger(l zerolog.Logger) ExtractorOption {
	return func(e *ResumeExtractor) {
		e.logger = l
	}
}

// NewResumeExtractor 创建简历提取器
// annotator为nil时使用默认的prose标注器
func NewResumeExtractor(annotator Annotator, opts ...ExtractorOption) *ResumeExtractor {
	if annotator == nil {
		annotator = NewProseAnnotator()
	}
	e := &ResumeExtractor{
		annotator: annotator,
		logger:    logger.Logger.With().Str("component", "resume_extractor").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 从纯文本提取结构化简历信息
func (e *ResumeExtractor) Extract(ctx context.Context, text string) *types.ParsedResume {
	resume := &types.ParsedResume{
		Education:  []types.EducationEntry{},
		Experience: []types.ExperienceEntry{},
		Skills:     types.NewSkillSet(),
		RawText:    text,
	}

	if strings.TrimSpace(text) == "" {
		return resume
	}

	// 句子切分和NER只做一遍，失败时退化为正则切分（无实体）
	sentences, entities, err := e.annotator.Annotate(ctx, text)
	if err != nil {
		e.logger.Warn().Err(err).Msg("文本标注失败，退化为正则句子切分")
		sentences = fallbackSplitSentences(text)
		entities = nil
	}

	resume.ContactInfo = e.extractContactInfo(text, entities)
	resume.Education = e.extractEducation(sentences)
	resume.Experience = e.extractExperience(sentences)
	resume.Skills = e.extractSkills(text)

	e.logger.Debug().
		Str("email", tracing.MaskPII(resume.ContactInfo.Email)).
		Str("phone", tracing.MaskPII(resume.ContactInfo.Phone)).
		Int("education_entries", len(resume.Education)).
		Int("experience_entries", len(resume.Experience)).
		Int("skills", resume.Skills.Len()).
		Msg("简历提取完成")

	return resume
}

// extractContactInfo 提取联系方式
// 邮箱/电话取第一个正则匹配；姓名/地点取NER结果中第一个PERSON/GPE实体，先出现者优先
func (e *ResumeExtractor) extractContactInfo(text string, entities []Entity) types.ContactInfo {
	info := types.ContactInfo{}

	if m := emailRegex.FindString(text); m != "" {
		info.Email = m
	}
	if m := phoneRegex.FindString(text); m != "" {
		info.Phone = m
	}

	for _, ent := range entities {
		switch ent.Label {
		case LabelPerson:
			if info.Name == "" {
				info.Name = ent.Text
			}
		case LabelGPE:
			if info.Location == "" {
				info.Location = ent.Text
			}
		}
		if info.Name != "" && info.Location != "" {
			break
		}
	}

	return info
}

// extractEducation 提取教育经历
// 每个包含学位关键词的句子产生一条记录，年份取句中第一个20xx
func (e *ResumeExtractor) extractEducation(sentences []string) []types.EducationEntry {
	education := []types.EducationEntry{}
	for _, sent := range sentences {
		if !degreeRegex.MatchString(sent) {
			continue
		}
		education = append(education, types.EducationEntry{
			Degree: strings.TrimSpace(sent),
			Year:   yearRegex.FindString(sent),
		})
	}
	return education
}

// extractExperience 提取工作经历
// 每个包含任意岗位同义词（子串、大小写不敏感）的句子产生一条记录
func (e *ResumeExtractor) extractExperience(sentences []string) []types.ExperienceEntry {
	experience := []types.ExperienceEntry{}
	for _, sent := range sentences {
		if !containsJobTitle(sent) {
			continue
		}
		experience = append(experience, types.ExperienceEntry{
			Title:    strings.TrimSpace(sent),
			Duration: extractDuration(sent),
		})
	}
	return experience
}

// containsJobTitle 判断句子是否包含任意同义词表中的岗位名称
func containsJobTitle(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, group := range jobSynonymTable {
		for _, synonym := range group.Synonyms {
			if strings.Contains(lower, synonym) {
				return true
			}
		}
	}
	return false
}

// extractDuration 提取句中所有时长片段并用空格拼接
func extractDuration(sentence string) string {
	matches := durationRegex.FindAllString(sentence, -1)
	return strings.Join(matches, " ")
}

// extractSkills 提取技能集合
// 对每个类别的每个词条做词边界匹配，命中的词条汇入扁平集合（类别信息丢弃）
func (e *ResumeExtractor) extractSkills(text string) types.SkillSet {
	skills := types.NewSkillSet()
	for _, entry := range skillRegexTable {
		if entry.re.MatchString(text) {
			skills.Add(entry.token)
		}
	}
	return skills
}
