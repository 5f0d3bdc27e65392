package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"resumekit/internal/resume"
)

// pageTemplate 是打印页的 Go HTML 模板。
// 纸张为 Letter（816x1056 @ 96 DPI），页边距固定 0.5 英寸，与 PDF 导出参数保持一致。
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: 'Helvetica', 'Arial', sans-serif;
            font-size: 10pt;
            color: #1a202c;
        }
        .letter-page {
            width: 816px; /* Letter @ 96 DPI */
            min-height: 1056px;
            background: white;
            margin: 0;
            padding: 48px; /* 0.5in */
            box-sizing: border-box;
        }
        .resume-name {
            font-size: 24pt;
            font-weight: bold;
            color: #1a365d;
            text-align: center;
            margin: 0 0 6px 0;
        }
        .contact-line {
            text-align: center;
            margin: 0 0 18px 0;
        }
        .section-heading {
            font-size: 14pt;
            font-weight: bold;
            color: #2c5282;
            border-bottom: 1px solid #2c5282;
            margin: 14px 0 6px 0;
        }
        .entry { margin: 0 0 10px 0; }
        .entry-title { font-weight: bold; }
        .entry-dates { font-style: italic; }
        p { margin: 2px 0; }
        @page {
            size: letter;
            margin: 0;
        }
    </style>
</head>
<body>
    <div class="letter-page">
{{.Body}}
    </div>
</body>
</html>
`

var page = template.Must(template.New("resume").Parse(pageTemplate))

// section 将一节的出现条件与渲染逻辑绑定在一起。
// 节的声明顺序即输出顺序；present 为假时整节（含标题）被省略。
type section struct {
	heading string
	present func(doc resume.Document) bool
	render  func(b *bodyBuilder, doc resume.Document)
}

var sections = []section{
	{
		heading: "PROFESSIONAL SUMMARY",
		present: func(d resume.Document) bool { return d.Summary != "" },
		render: func(b *bodyBuilder, d resume.Document) {
			b.para("", d.Summary)
		},
	},
	{
		heading: "EXPERIENCE",
		present: func(d resume.Document) bool { return len(d.Experiences) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			for _, exp := range d.Experiences {
				b.openEntry()
				b.titleLine(exp.Title, exp.Organization)
				b.dateRange(exp.StartDate, exp.EndDate)
				b.optionalPara("Location", exp.Location)
				b.para("", exp.Description)
				b.optionalPara("Skills", strings.Join(exp.Skills, ", "))
				b.closeEntry()
			}
		},
	},
	{
		heading: "INTERNSHIPS",
		present: func(d resume.Document) bool { return len(d.Internships) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			for _, intern := range d.Internships {
				b.openEntry()
				b.titleLine(intern.Title, intern.Company)
				b.dateRange(intern.StartDate, intern.EndDate)
				b.optionalPara("Location", intern.Location)
				b.para("", intern.Description)
				b.optionalPara("Skills", strings.Join(intern.Skills, ", "))
				b.closeEntry()
			}
		},
	},
	{
		heading: "HACKATHONS",
		present: func(d resume.Document) bool { return len(d.Hackathons) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			for _, hack := range d.Hackathons {
				b.openEntry()
				b.titleLine(hack.Name, hack.Organizer)
				b.para("entry-dates", hack.Date)
				b.optionalPara("Project", hack.ProjectTitle)
				b.optionalPara("Achievement", hack.Achievement)
				b.para("", hack.Description)
				b.optionalPara("Technologies", strings.Join(hack.Technologies, ", "))
				b.closeEntry()
			}
		},
	},
	{
		heading: "EDUCATION",
		present: func(d resume.Document) bool { return len(d.Education) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			for _, edu := range d.Education {
				b.openEntry()
				b.titleLine(edu.Degree, edu.Field)
				b.institutionLine(edu.Institution, edu.StartDate, edu.EndDate)
				b.optionalPara("GPA", edu.GPA)
				b.closeEntry()
			}
		},
	},
	{
		heading: "PROJECTS",
		present: func(d resume.Document) bool { return len(d.Projects) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			for _, proj := range d.Projects {
				b.openEntry()
				b.titleLine(proj.Title, "")
				b.para("", proj.Description)
				b.optionalPara("Technologies", strings.Join(proj.Technologies, ", "))
				b.closeEntry()
			}
		},
	},
	{
		heading: "EVENTS & ACTIVITIES",
		present: func(d resume.Document) bool { return len(d.Events) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			for _, event := range d.Events {
				b.openEntry()
				b.titleLine(event.Title, event.Organization)
				b.para("entry-dates", event.Date)
				b.optionalPara("Role", event.Role)
				b.para("", event.Description)
				b.closeEntry()
			}
		},
	},
	{
		heading: "SKILLS",
		present: func(d resume.Document) bool { return len(d.Skills) > 0 },
		render: func(b *bodyBuilder, d resume.Document) {
			names := make([]string, 0, len(d.Skills))
			for _, skill := range d.Skills {
				if skill.Name != "" {
					names = append(names, skill.Name)
				}
			}
			b.para("", strings.Join(names, ", "))
		},
	},
}

// HTML 将简历文档装配为完整的可打印 HTML 页面。
// 对任意结构良好的输入都不会失败：缺失的可选字段不产生任何输出。
func HTML(title string, doc resume.Document) []byte {
	b := &bodyBuilder{}

	renderHeader(b, doc.PersonalInfo)

	for _, s := range sections {
		if !s.present(doc) {
			continue
		}
		b.heading(s.heading)
		s.render(b, doc)
	}

	var out bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(b.String()),
	}
	// 模板在包初始化时即通过 Must 校验，Execute 写入内存 buffer 不会失败。
	_ = page.Execute(&out, data)
	return out.Bytes()
}

func renderHeader(b *bodyBuilder, info resume.PersonalInfo) {
	if info.FullName != "" {
		b.para("resume-name", info.FullName)
	}
	contact := make([]string, 0, 3)
	for _, part := range []string{info.Email, info.Phone, info.Location} {
		if part != "" {
			contact = append(contact, part)
		}
	}
	if len(contact) > 0 {
		b.para("contact-line", strings.Join(contact, " | "))
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename 由简历标题推导下载文件名：空白归一为下划线并追加 .pdf。
func Filename(title string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}

// bodyBuilder 逐块拼接已转义的 HTML 正文。
type bodyBuilder struct {
	sb strings.Builder
}

func (b *bodyBuilder) String() string { return b.sb.String() }

func (b *bodyBuilder) heading(text string) {
	b.sb.WriteString(`        <h2 class="section-heading">`)
	b.sb.WriteString(template.HTMLEscapeString(text))
	b.sb.WriteString("</h2>\n")
}

func (b *bodyBuilder) openEntry() {
	b.sb.WriteString("        <div class=\"entry\">\n")
}

func (b *bodyBuilder) closeEntry() {
	b.sb.WriteString("        </div>\n")
}

// para 输出一个段落；文本为空时整段省略。
func (b *bodyBuilder) para(class, text string) {
	if text == "" {
		return
	}
	if class == "" {
		b.sb.WriteString("        <p>")
	} else {
		b.sb.WriteString(`        <p class="` + class + `">`)
	}
	b.sb.WriteString(template.HTMLEscapeString(text))
	b.sb.WriteString("</p>\n")
}

// optionalPara 输出 "Label: value" 形式的段落；值为空时省略。
func (b *bodyBuilder) optionalPara(label, value string) {
	if value == "" {
		return
	}
	b.sb.WriteString("        <p>")
	b.sb.WriteString(template.HTMLEscapeString(label))
	b.sb.WriteString(": ")
	b.sb.WriteString(template.HTMLEscapeString(value))
	b.sb.WriteString("</p>\n")
}

// titleLine 输出条目标题行："标题 - 归属"，归属为空时仅输出标题。
func (b *bodyBuilder) titleLine(title, affiliation string) {
	if title == "" && affiliation == "" {
		return
	}
	b.sb.WriteString(`        <p><span class="entry-title">`)
	b.sb.WriteString(template.HTMLEscapeString(title))
	b.sb.WriteString("</span>")
	if affiliation != "" {
		b.sb.WriteString(" - ")
		b.sb.WriteString(template.HTMLEscapeString(affiliation))
	}
	b.sb.WriteString("</p>\n")
}

func (b *bodyBuilder) dateRange(start, end string) {
	if start == "" && end == "" {
		return
	}
	b.para("entry-dates", start+" - "+end)
}

func (b *bodyBuilder) institutionLine(institution, start, end string) {
	switch {
	case institution == "" && start == "" && end == "":
		return
	case start == "" && end == "":
		b.para("", institution)
	default:
		b.para("", institution+" | "+start+" - "+end)
	}
}
