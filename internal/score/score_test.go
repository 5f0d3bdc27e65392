package score

import (
	"reflect"
	"strings"
	"testing"

	"resumekit/internal/resume"
)

func fullDocument() resume.Document {
	return resume.Document{
		PersonalInfo: resume.PersonalInfo{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "123-456-7890",
		},
		Summary: strings.Repeat("Experienced engineer. ", 4),
		Experiences: []resume.ExperienceItem{
			{ID: "e1", Title: "Engineer", Organization: "Analytical Engines"},
			{ID: "e2", Title: "Lead", Organization: "Babbage Co"},
		},
		Education: []resume.EducationItem{
			{ID: "ed1", Degree: "BSc", Institution: "London"},
		},
		Skills: []resume.SkillItem{
			{ID: "s1", Name: "Go"}, {ID: "s2", Name: "SQL"}, {ID: "s3", Name: "Python"},
			{ID: "s4", Name: "Docker"}, {ID: "s5", Name: "Redis"},
		},
		Hackathons: []resume.HackathonItem{{ID: "h1", Name: "HackX"}},
		Projects:   []resume.ProjectItem{{ID: "p1", Title: "Engine"}},
		Events:     []resume.EventItem{{ID: "ev1", Title: "Meetup"}},
	}
}

func TestScoreFullDocument(t *testing.T) {
	result := Score(fullDocument())

	if result.Total != 100 {
		t.Fatalf("total = %d, want 100", result.Total)
	}
	want := map[string]int{
		CategoryPersonalInfo: 15,
		CategorySummary:      15,
		CategoryExperience:   25,
		CategoryEducation:    15,
		CategorySkills:       15,
		CategoryAchievements: 15,
	}
	if !reflect.DeepEqual(result.Breakdown, want) {
		t.Fatalf("breakdown = %v, want %v", result.Breakdown, want)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("suggestions = %v, want only the overall message", result.Suggestions)
	}
	if result.Suggestions[0] != "Great resume! Consider fine-tuning descriptions" {
		t.Fatalf("overall message = %q", result.Suggestions[0])
	}
}

func TestScoreEmptyDocument(t *testing.T) {
	result := Score(resume.Document{})

	if result.Total != 0 {
		t.Fatalf("total = %d, want 0", result.Total)
	}

	want := []string{
		"Your resume needs more content to stand out",
		"Complete your contact information",
		"Add a professional summary (2-3 sentences)",
		"Add work experiences or internships",
		"Add your education background",
		"Add your technical and professional skills",
		"Add projects, hackathons, or relevant events",
	}
	if !reflect.DeepEqual(result.Suggestions, want) {
		t.Fatalf("suggestions = %#v, want %#v", result.Suggestions, want)
	}
}

func TestScoreIsPure(t *testing.T) {
	doc := fullDocument()
	first := Score(doc)
	second := Score(doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("score is not deterministic: %v vs %v", first, second)
	}
}

func TestScoreSummaryBoundary(t *testing.T) {
	doc := resume.Document{Summary: strings.Repeat("a", 50)}
	if got := Score(doc).Breakdown[CategorySummary]; got != 0 {
		t.Fatalf("summary of exactly 50 chars scored %d, want 0", got)
	}

	doc.Summary = strings.Repeat("a", 51)
	if got := Score(doc).Breakdown[CategorySummary]; got != 15 {
		t.Fatalf("summary of 51 chars scored %d, want 15", got)
	}

	// 多字节文字按码点计长：20 个汉字是 60 字节，但只有 20 个字符。
	doc.Summary = strings.Repeat("简", 20)
	if got := Score(doc).Breakdown[CategorySummary]; got != 0 {
		t.Fatalf("summary of 20 CJK chars scored %d, want 0", got)
	}

	doc.Summary = strings.Repeat("简", 51)
	if got := Score(doc).Breakdown[CategorySummary]; got != 15 {
		t.Fatalf("summary of 51 CJK chars scored %d, want 15", got)
	}
}

func TestScoreExperienceBoundary(t *testing.T) {
	doc := resume.Document{
		Experiences: []resume.ExperienceItem{{ID: "e1", Title: "Engineer"}},
	}
	result := Score(doc)
	if got := result.Breakdown[CategoryExperience]; got != 15 {
		t.Fatalf("one experience scored %d, want 15", got)
	}
	if !containsSuggestion(result.Suggestions, "Add more work experiences or internships") {
		t.Fatalf("partial experience suggestion missing: %v", result.Suggestions)
	}

	// 实习与工作经历合并计数。
	doc.Internships = []resume.InternshipItem{{ID: "i1", Title: "Intern"}}
	if got := Score(doc).Breakdown[CategoryExperience]; got != 25 {
		t.Fatalf("two work-like entries scored %d, want 25", got)
	}
}

func TestScoreSkillsBoundary(t *testing.T) {
	doc := resume.Document{}
	for i := 0; i < 4; i++ {
		doc.Skills = append(doc.Skills, resume.SkillItem{Name: "skill"})
	}
	if got := Score(doc).Breakdown[CategorySkills]; got != 10 {
		t.Fatalf("four skills scored %d, want 10", got)
	}

	doc.Skills = append(doc.Skills, resume.SkillItem{Name: "one more"})
	if got := Score(doc).Breakdown[CategorySkills]; got != 15 {
		t.Fatalf("five skills scored %d, want 15", got)
	}
}

func TestScoreAchievementsBoundary(t *testing.T) {
	doc := resume.Document{
		Hackathons: []resume.HackathonItem{{Name: "HackX"}},
		Projects:   []resume.ProjectItem{{Title: "Engine"}},
	}
	if got := Score(doc).Breakdown[CategoryAchievements]; got != 10 {
		t.Fatalf("two achievements scored %d, want 10", got)
	}

	doc.Events = []resume.EventItem{{Title: "Meetup"}}
	if got := Score(doc).Breakdown[CategoryAchievements]; got != 15 {
		t.Fatalf("three achievements scored %d, want 15", got)
	}
}

func TestScoreOverallTiers(t *testing.T) {
	cases := []struct {
		name string
		doc  resume.Document
		want string
	}{
		{
			name: "low total",
			doc:  resume.Document{},
			want: "Your resume needs more content to stand out",
		},
		{
			name: "mid total",
			doc: resume.Document{
				PersonalInfo: resume.PersonalInfo{FullName: "A", Email: "a@b.c", Phone: "1"},
				Summary:      strings.Repeat("x", 60),
				Experiences: []resume.ExperienceItem{
					{Title: "One"}, {Title: "Two"},
				},
				Education: []resume.EducationItem{{Degree: "BSc"}},
			},
			want: "Good progress! Add more details to reach excellence",
		},
		{
			name: "high total",
			doc:  fullDocument(),
			want: "Great resume! Consider fine-tuning descriptions",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(tc.doc)
			if result.Suggestions[0] != tc.want {
				t.Fatalf("total=%d overall=%q, want %q", result.Total, result.Suggestions[0], tc.want)
			}
		})
	}
}

func containsSuggestion(suggestions []string, want string) bool {
	for _, s := range suggestions {
		if s == want {
			return true
		}
	}
	return false
}
