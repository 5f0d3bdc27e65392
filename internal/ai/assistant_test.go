package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumekit/internal/resume"
)

type fakeCompleter struct {
	system string
	user   string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	return f.reply, f.err
}

func TestGenerateSummaryFallback(t *testing.T) {
	assistant := NewAssistant(nil)
	sc := SummaryContext{
		Skills: []resume.SkillItem{{Name: "Python"}, {Name: "SQL"}},
	}

	result, err := assistant.GenerateSummary(context.Background(), sc)
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if !strings.Contains(result.Summary, "Python, SQL") {
		t.Fatalf("summary missing skills: %q", result.Summary)
	}
	if strings.Contains(result.Summary, "internships and") {
		t.Fatalf("no internships given, fragment must be absent: %q", result.Summary)
	}
	if strings.Contains(result.Summary, "hackathons and") {
		t.Fatalf("no hackathons given, fragment must be absent: %q", result.Summary)
	}
	if result.Note != summaryFallbackNote {
		t.Fatalf("note = %q", result.Note)
	}
}

func TestGenerateSummaryFallbackFragments(t *testing.T) {
	assistant := NewAssistant(nil)
	sc := SummaryContext{
		Internships: []resume.InternshipItem{{Title: "Intern"}},
		Hackathons:  []resume.HackathonItem{{Name: "HackX"}},
	}

	result, _ := assistant.GenerateSummary(context.Background(), sc)
	if !strings.Contains(result.Summary, "internships and hackathons and project development.") {
		t.Fatalf("fragments missing or misordered: %q", result.Summary)
	}
}

func TestGenerateSummaryFallbackTruncatesSkills(t *testing.T) {
	assistant := NewAssistant(nil)
	sc := SummaryContext{}
	for i := 0; i < 20; i++ {
		sc.Skills = append(sc.Skills, resume.SkillItem{Name: "verylongskillname"})
	}

	result, _ := assistant.GenerateSummary(context.Background(), sc)

	const prefix = "Motivated professional with experience in "
	rest := strings.TrimPrefix(result.Summary, prefix)
	preview := rest[:strings.Index(rest, "...")]
	if got := len([]rune(preview)); got != skillsPreviewLimit {
		t.Fatalf("skills preview length = %d, want %d", got, skillsPreviewLimit)
	}
}

func TestGenerateSummaryPrompt(t *testing.T) {
	fake := &fakeCompleter{reply: "A concise summary."}
	assistant := NewAssistant(fake)
	sc := SummaryContext{
		Experiences: []resume.ExperienceItem{{Title: "Engineer", Organization: "Acme", Description: "Built things"}},
		Hackathons:  []resume.HackathonItem{{Name: "HackX", ProjectTitle: "Bot", Achievement: "1st place"}},
		Skills:      []resume.SkillItem{{Name: "Go"}},
	}

	result, err := assistant.GenerateSummary(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary != "A concise summary." {
		t.Fatalf("summary = %q", result.Summary)
	}
	if result.Note != "" {
		t.Fatalf("configured path must carry no note, got %q", result.Note)
	}
	if fake.system != "You are a professional resume writer." {
		t.Fatalf("system prompt = %q", fake.system)
	}
	for _, want := range []string{
		"- Engineer at Acme: Built things",
		"Internships:\nNone",
		"- HackX: Bot - 1st place",
		"Skills: Go",
	} {
		if !strings.Contains(fake.user, want) {
			t.Fatalf("prompt missing %q:\n%s", want, fake.user)
		}
	}
}

func TestGenerateSummaryServiceFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("upstream 500")}
	assistant := NewAssistant(fake)

	_, err := assistant.GenerateSummary(context.Background(), SummaryContext{})
	if !errors.Is(err, ErrServiceFailure) {
		t.Fatalf("err = %v, want ErrServiceFailure", err)
	}
}

func TestOptimizeContentFallback(t *testing.T) {
	assistant := NewAssistant(nil)

	result, err := assistant.OptimizeContent(context.Background(), "Did stuff at work")
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if result.Optimized != "Did stuff at work" {
		t.Fatalf("fallback must return input unchanged, got %q", result.Optimized)
	}
	if result.Note != optimizeFallbackNote {
		t.Fatalf("note = %q", result.Note)
	}
}

func TestOptimizeContentPrompt(t *testing.T) {
	fake := &fakeCompleter{reply: "Spearheaded initiatives"}
	assistant := NewAssistant(fake)

	result, err := assistant.OptimizeContent(context.Background(), "Did stuff")
	if err != nil {
		t.Fatal(err)
	}
	if result.Optimized != "Spearheaded initiatives" {
		t.Fatalf("optimized = %q", result.Optimized)
	}
	if fake.system != "You are a professional resume optimization expert." {
		t.Fatalf("system prompt = %q", fake.system)
	}
	if !strings.Contains(fake.user, "Did stuff") {
		t.Fatalf("prompt missing original content:\n%s", fake.user)
	}
}

func TestOptimizeContentServiceFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("timeout")}
	assistant := NewAssistant(fake)

	_, err := assistant.OptimizeContent(context.Background(), "text")
	if !errors.Is(err, ErrServiceFailure) {
		t.Fatalf("err = %v, want ErrServiceFailure", err)
	}
}
