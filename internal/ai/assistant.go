package ai

import (
	"context"
	"fmt"
	"strings"

	"resumekit/internal/resume"
)

// 回退模板随附的提示语，前端按原样展示。
const (
	summaryFallbackNote  = "AI summary generation requires OpenAI API key. This is a template - please customize it."
	optimizeFallbackNote = "AI optimization requires OpenAI API key. Consider adding action verbs and quantifiable achievements."
)

const skillsPreviewLimit = 50

// SummaryContext 是生成职业总结所需的简历片段。
type SummaryContext struct {
	Experiences []resume.ExperienceItem `json:"experiences"`
	Internships []resume.InternshipItem `json:"internships"`
	Hackathons  []resume.HackathonItem  `json:"hackathons"`
	Skills      []resume.SkillItem      `json:"skills"`
}

// SummaryResult 是总结生成的输出；Note 仅在走回退模板时非空。
type SummaryResult struct {
	Summary string `json:"summary"`
	Note    string `json:"note,omitempty"`
}

// OptimizeResult 是内容优化的输出；Note 仅在走回退路径时非空。
type OptimizeResult struct {
	Optimized string `json:"optimized"`
	Note      string `json:"note,omitempty"`
}

// Assistant 封装 AI 文案能力。completer 为 nil 表示未配置后端，
// 此时所有操作走确定性回退，绝不返回错误。
type Assistant struct {
	completer Completer
}

// NewAssistant 构造助手。传入 nil completer 得到纯回退模式。
func NewAssistant(completer Completer) *Assistant {
	return &Assistant{completer: completer}
}

// Enabled 报告是否存在已配置的补全后端。
func (a *Assistant) Enabled() bool {
	return a.completer != nil
}

// GenerateSummary 生成 2-3 句的职业总结。
// 后端未配置时返回由技能列表推导的模板；后端失败时返回 ErrServiceFailure。
func (a *Assistant) GenerateSummary(ctx context.Context, sc SummaryContext) (SummaryResult, error) {
	if !a.Enabled() {
		return SummaryResult{
			Summary: fallbackSummary(sc),
			Note:    summaryFallbackNote,
		}, nil
	}

	summary, err := a.completer.Complete(ctx, "You are a professional resume writer.", summaryPrompt(sc))
	if err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	return SummaryResult{Summary: summary}, nil
}

// OptimizeContent 将一段简历文本改写为更利于 ATS 的表述。
// 后端未配置时原文返回并附提示；后端失败时返回 ErrServiceFailure。
func (a *Assistant) OptimizeContent(ctx context.Context, content string) (OptimizeResult, error) {
	if !a.Enabled() {
		return OptimizeResult{
			Optimized: content,
			Note:      optimizeFallbackNote,
		}, nil
	}

	optimized, err := a.completer.Complete(ctx, "You are a professional resume optimization expert.", optimizePrompt(content))
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	return OptimizeResult{Optimized: optimized}, nil
}

func summaryPrompt(sc SummaryContext) string {
	expLines := make([]string, 0, len(sc.Experiences))
	for _, exp := range sc.Experiences {
		expLines = append(expLines, fmt.Sprintf("- %s at %s: %s", exp.Title, exp.Organization, exp.Description))
	}
	internLines := make([]string, 0, len(sc.Internships))
	for _, intern := range sc.Internships {
		internLines = append(internLines, fmt.Sprintf("- %s at %s: %s", intern.Title, intern.Company, intern.Description))
	}
	hackLines := make([]string, 0, len(sc.Hackathons))
	for _, hack := range sc.Hackathons {
		hackLines = append(hackLines, fmt.Sprintf("- %s: %s - %s", hack.Name, hack.ProjectTitle, hack.Achievement))
	}

	return fmt.Sprintf(`Generate a professional resume summary (2-3 sentences) for someone with the following:

Work Experiences:
%s

Internships:
%s

Hackathons:
%s

Skills: %s

Write a compelling summary that highlights key strengths and career focus. Keep it concise and impactful.`,
		orNone(expLines), orNone(internLines), orNone(hackLines), skillsText(sc.Skills))
}

func optimizePrompt(content string) string {
	return fmt.Sprintf(`Optimize the following resume content for ATS (Applicant Tracking System) and make it more impactful:

%s

Provide an improved version with strong action verbs, quantifiable achievements, and relevant keywords.`, content)
}

// fallbackSummary 由简历片段拼出确定性总结模板。
func fallbackSummary(sc SummaryContext) string {
	var b strings.Builder
	b.WriteString("Motivated professional with experience in ")
	b.WriteString(truncateRunes(skillsText(sc.Skills), skillsPreviewLimit))
	b.WriteString("... Proven track record in ")
	if len(sc.Internships) > 0 {
		b.WriteString("internships and ")
	}
	if len(sc.Hackathons) > 0 {
		b.WriteString("hackathons and ")
	}
	b.WriteString("project development.")
	return b.String()
}

func skillsText(skills []resume.SkillItem) string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}
	return strings.Join(names, ", ")
}

func orNone(lines []string) string {
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

// truncateRunes 按码点截断，避免把多字节字符切成半个。
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
