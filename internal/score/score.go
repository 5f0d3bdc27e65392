package score

import (
	"unicode/utf8"

	"resumekit/internal/resume"
)

// Result 是完整度评分的输出：总分、各维度得分与建议列表。
// Suggestions 的顺序是对外契约：首条为总体评语，之后按固定维度顺序排列。
type Result struct {
	Total       int            `json:"score"`
	Breakdown   map[string]int `json:"breakdown"`
	Suggestions []string       `json:"suggestions"`
}

// 六个评分维度，满分合计 100。
const (
	CategoryPersonalInfo = "personal_info"
	CategorySummary      = "summary"
	CategoryExperience   = "experience"
	CategoryEducation    = "education"
	CategorySkills       = "skills"
	CategoryAchievements = "achievements"
)

// 阈值与分值是历史兼容契约，前端按原样渲染，不要调整。
const (
	summaryMinLength     = 50
	skillsFullCount      = 5
	achievementFullCount = 3
)

// Score 对文档做纯函数式的完整度评估，永不失败。
// 缺失/畸形的可选字段一律按空值计算。
func Score(doc resume.Document) Result {
	breakdown := map[string]int{
		CategoryPersonalInfo: 0,
		CategorySummary:      0,
		CategoryExperience:   0,
		CategoryEducation:    0,
		CategorySkills:       0,
		CategoryAchievements: 0,
	}
	suggestions := make([]string, 0, 7)

	info := doc.PersonalInfo
	if info.FullName != "" && info.Email != "" && info.Phone != "" {
		breakdown[CategoryPersonalInfo] = 15
	} else {
		suggestions = append(suggestions, "Complete your contact information")
	}

	// 按码点计长，多字节文字不得虚增长度。
	if utf8.RuneCountInString(doc.Summary) > summaryMinLength {
		breakdown[CategorySummary] = 15
	} else {
		suggestions = append(suggestions, "Add a professional summary (2-3 sentences)")
	}

	totalWorkExp := len(doc.Experiences) + len(doc.Internships)
	switch {
	case totalWorkExp >= 2:
		breakdown[CategoryExperience] = 25
	case totalWorkExp == 1:
		breakdown[CategoryExperience] = 15
		suggestions = append(suggestions, "Add more work experiences or internships")
	default:
		suggestions = append(suggestions, "Add work experiences or internships")
	}

	if len(doc.Education) > 0 {
		breakdown[CategoryEducation] = 15
	} else {
		suggestions = append(suggestions, "Add your education background")
	}

	switch {
	case len(doc.Skills) >= skillsFullCount:
		breakdown[CategorySkills] = 15
	case len(doc.Skills) > 0:
		breakdown[CategorySkills] = 10
		suggestions = append(suggestions, "Add more skills (aim for 5+)")
	default:
		suggestions = append(suggestions, "Add your technical and professional skills")
	}

	achievementCount := len(doc.Hackathons) + len(doc.Projects) + len(doc.Events)
	switch {
	case achievementCount >= achievementFullCount:
		breakdown[CategoryAchievements] = 15
	case achievementCount >= 1:
		breakdown[CategoryAchievements] = 10
		suggestions = append(suggestions, "Add more projects, hackathons, or events")
	default:
		suggestions = append(suggestions, "Add projects, hackathons, or relevant events")
	}

	total := 0
	for _, v := range breakdown {
		total += v
	}

	// 总体评语插在建议列表最前面。
	var overall string
	switch {
	case total < 60:
		overall = "Your resume needs more content to stand out"
	case total < 80:
		overall = "Good progress! Add more details to reach excellence"
	default:
		overall = "Great resume! Consider fine-tuning descriptions"
	}
	suggestions = append([]string{overall}, suggestions...)

	return Result{
		Total:       total,
		Breakdown:   breakdown,
		Suggestions: suggestions,
	}
}
