package render

import (
	"strings"
	"testing"

	"resumekit/internal/resume"
)

func TestHTMLEmptyDocument(t *testing.T) {
	out := string(HTML("My Resume", resume.Document{}))

	if out == "" {
		t.Fatal("empty document rendered nothing")
	}
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Fatal("output is not a complete HTML document")
	}
	if strings.Contains(out, "<h2") {
		t.Fatalf("empty document must not contain section headings:\n%s", out)
	}
}

func TestHTMLOmitsEmptySections(t *testing.T) {
	doc := resume.Document{
		PersonalInfo: resume.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Summary:      "Analytical engine programmer.",
		Skills:       []resume.SkillItem{{Name: "Go"}, {Name: "SQL"}},
	}
	out := string(HTML("Ada", doc))

	for _, want := range []string{"PROFESSIONAL SUMMARY", "SKILLS"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing heading %q", want)
		}
	}
	for _, absent := range []string{"EXPERIENCE", "INTERNSHIPS", "HACKATHONS", "EDUCATION", "PROJECTS", "EVENTS"} {
		if strings.Contains(out, absent) {
			t.Fatalf("unexpected heading %q for empty section", absent)
		}
	}
}

func TestHTMLSectionOrder(t *testing.T) {
	doc := resume.Document{
		PersonalInfo: resume.PersonalInfo{FullName: "Ada Lovelace"},
		Summary:      "Seasoned engineer.",
		Experiences:  []resume.ExperienceItem{{Title: "Engineer", Organization: "Analytical Engines"}},
		Internships:  []resume.InternshipItem{{Title: "Intern", Company: "Babbage Co"}},
		Hackathons:   []resume.HackathonItem{{Name: "HackX", Organizer: "RS"}},
		Education:    []resume.EducationItem{{Degree: "BSc", Institution: "London"}},
		Projects:     []resume.ProjectItem{{Title: "Engine", Description: "Difference engine"}},
		Events:       []resume.EventItem{{Title: "Meetup", Organization: "Go London"}},
		Skills:       []resume.SkillItem{{Name: "Go"}},
	}
	out := string(HTML("Ada", doc))

	order := []string{
		"Ada Lovelace",
		"PROFESSIONAL SUMMARY",
		"EXPERIENCE",
		"INTERNSHIPS",
		"HACKATHONS",
		"EDUCATION",
		"PROJECTS",
		"EVENTS &amp; ACTIVITIES",
		"SKILLS",
	}
	pos := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("marker %q not found", marker)
		}
		if idx < pos {
			t.Fatalf("marker %q appears out of order", marker)
		}
		pos = idx
	}
}

func TestHTMLCarriesContentVerbatim(t *testing.T) {
	doc := resume.Document{
		PersonalInfo: resume.PersonalInfo{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "123-456",
			Location: "London",
		},
		Summary: "First programmer in history.",
		Experiences: []resume.ExperienceItem{{
			Title:        "Engineer",
			Organization: "Analytical Engines",
			Description:  "Wrote the first published algorithm.",
			Skills:       []string{"Mathematics", "Notes"},
			StartDate:    "1842",
			EndDate:      "1843",
			Location:     "London",
		}},
		Education: []resume.EducationItem{{
			Degree:      "Private tutoring",
			Institution: "Home",
			Field:       "Mathematics",
			GPA:         "4.0",
		}},
		Skills: []resume.SkillItem{{Name: "Analysis"}},
	}
	out := string(HTML("Ada", doc))

	verbatim := []string{
		"Ada Lovelace",
		"ada@example.com | 123-456 | London",
		"First programmer in history.",
		"Wrote the first published algorithm.",
		"Skills: Mathematics, Notes",
		"1842 - 1843",
		"Private tutoring",
		"GPA: 4.0",
		"Analysis",
	}
	for _, want := range verbatim {
		if !strings.Contains(out, want) {
			t.Fatalf("fragment %q missing from output", want)
		}
	}
}

func TestHTMLEscapesUserInput(t *testing.T) {
	doc := resume.Document{
		Summary: `<script>alert("x")</script>`,
	}
	out := string(HTML("t", doc))

	if strings.Contains(out, "<script>") {
		t.Fatal("user input was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatal("escaped form not found")
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Resume", "My_Resume.pdf"},
		{"Senior  Go\tEngineer", "Senior_Go_Engineer.pdf"},
		{"  padded  ", "padded.pdf"},
		{"", "resume.pdf"},
		{"single", "single.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.title); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
