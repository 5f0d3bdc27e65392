package resume

import "encoding/json"

// Document 表示存储在简历 Content(JSONB) 中的结构化数据。
// 所有字段均为可选：缺失的节在评分与渲染时按空值处理，绝不报错。
type Document struct {
	PersonalInfo PersonalInfo     `json:"personal_info"`
	Summary      string           `json:"summary"`
	Experiences  []ExperienceItem `json:"experiences"`
	Internships  []InternshipItem `json:"internships"`
	Hackathons   []HackathonItem  `json:"hackathons"`
	Education    []EducationItem  `json:"education"`
	Projects     []ProjectItem    `json:"projects"`
	Skills       []SkillItem      `json:"skills"`
	Events       []EventItem      `json:"events"`
}

// PersonalInfo 描述联系方式与对外链接。
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

// ExperienceItem 表示一段工作类经历。
// Type 区分 work/internship/hackathon 来源，核心逻辑不校验取值。
type ExperienceItem struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Verified     bool     `json:"verified"`
	Location     string   `json:"location"`
	Achievements []string `json:"achievements"`
}

// InternshipItem 表示一段实习经历。
type InternshipItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Location       string   `json:"location"`
	CertificateURL string   `json:"certificate_url"`
}

// HackathonItem 表示一次黑客松参赛记录。
type HackathonItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Organizer    string   `json:"organizer"`
	ProjectTitle string   `json:"project_title"`
	Description  string   `json:"description"`
	Achievement  string   `json:"achievement"`
	Technologies []string `json:"technologies"`
	Date         string   `json:"date"`
	ProjectLink  string   `json:"project_link"`
}

// EventItem 表示参与的活动或社团经历。
type EventItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Role         string `json:"role"`
}

// EducationItem 表示一段教育经历。
// 日期与 GPA 均为自由文本，不做格式校验。
type EducationItem struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa"`
}

// ProjectItem 表示一个个人/团队项目。
type ProjectItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

// SkillItem 表示一项技能及其熟练度（默认中档 3）。
type SkillItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"`
	Verified    bool   `json:"verified"`
}

// DecodeDocument 从 JSONB 字节解码 Document。
// 空输入返回零值文档；解码失败同样返回零值文档，保证评分/渲染永不因脏数据中断。
func DecodeDocument(raw []byte) Document {
	var doc Document
	if len(raw) == 0 {
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}
	}
	return doc
}
