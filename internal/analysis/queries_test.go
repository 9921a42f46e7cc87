package analysis

import (
	"strings"
	"testing"
)

func TestBuildSearchQuery_KnownQuestions(t *testing.T) {
	tests := []struct {
		q        Question
		contains string
	}{
		{QuestionDeadline, "deadline submission due date timeline schedule"},
		{QuestionRequirement, "scope of work"},
		{QuestionCost, "payment terms"},
		{QuestionQuality, "quality assurance"},
	}
	for _, tt := range tests {
		t.Run(string(tt.q), func(t *testing.T) {
			got := BuildSearchQuery(tt.q)
			want := "Find information about " + string(tt.q) + " in tender document: "
			if !strings.HasPrefix(got, want) {
				t.Errorf("expected prefix %q, got %q", want, got)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("expected query to contain %q, got %q", tt.contains, got)
			}
		})
	}
}

func TestBuildSearchQuery_UnknownQuestionUsesRawText(t *testing.T) {
	got := BuildSearchQuery(Question("Warranty"))
	want := "Find information about Warranty in tender document: Warranty"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildPrompt_IncludesContextAndInstructions(t *testing.T) {
	prompt := BuildPrompt(QuestionDeadline, "Submission closes on May 1, 2025.")
	if !strings.Contains(prompt, "Submission closes on May 1, 2025.") {
		t.Error("prompt missing context")
	}
	if !strings.Contains(prompt, "Submission deadline (exact date and time)") {
		t.Error("prompt missing deadline instructions")
	}
	if !strings.Contains(prompt, "about Deadline") {
		t.Error("prompt missing question name")
	}
}

func TestBuildPrompt_EachKnownQuestionHasDistinctInstructions(t *testing.T) {
	seen := map[string]Question{}
	for _, q := range Questions {
		p := BuildPrompt(q, "ctx")
		if prev, dup := seen[p]; dup {
			t.Errorf("questions %q and %q share a prompt", prev, q)
		}
		seen[p] = q
	}
}

func TestBuildPrompt_UnknownQuestionGetsGenericInstruction(t *testing.T) {
	prompt := BuildPrompt(Question("Warranty"), "ctx")
	if !strings.Contains(prompt, genericInstruction) {
		t.Errorf("expected generic instruction in prompt, got %q", prompt)
	}
}
