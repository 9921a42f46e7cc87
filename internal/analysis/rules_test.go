package analysis

import (
	"context"
	"strings"
	"testing"
)

func ruleExtract(t *testing.T, q Question, docContext string) string {
	t.Helper()
	got, err := RuleExtractor{}.Extract(context.Background(), q, docContext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestRules_DeadlineFindsLongFormDate(t *testing.T) {
	got := ruleExtract(t, QuestionDeadline, "Submission deadline: December 31, 2024 at 17:00.")
	if !strings.Contains(got, "December 31, 2024") {
		t.Errorf("expected answer to reference the date, got %q", got)
	}
	if !strings.HasPrefix(got, "Deadline information:") {
		t.Errorf("expected header line, got %q", got)
	}
}

func TestRules_DeadlineFindsKeywordDatePairs(t *testing.T) {
	got := ruleExtract(t, QuestionDeadline, "All bids are due by 12/31/2024 without exception")
	if !strings.Contains(got, "due by 12/31/2024") {
		t.Errorf("expected deadline sentence, got %q", got)
	}
}

func TestRules_DeadlineNoneFound(t *testing.T) {
	got := ruleExtract(t, QuestionDeadline, "This document discusses scope only.")
	if got != "No specific deadline information found in the document." {
		t.Errorf("unexpected answer %q", got)
	}
}

func TestRules_RequirementsSectionsAndBullets(t *testing.T) {
	docContext := `Project Requirements:
The vendor shall provide a complete solution.
All components must be delivered on site.

Other notes follow here.

- supply of 40 servers
- installation and commissioning
- operator training`

	got := ruleExtract(t, QuestionRequirement, docContext)
	if !strings.HasPrefix(got, "Project Requirements:") {
		t.Errorf("expected header, got %q", got)
	}
	if !strings.Contains(got, "Requirement section:") {
		t.Errorf("expected a requirement section line, got %q", got)
	}
	if !strings.Contains(got, "- supply of 40 servers") {
		t.Errorf("expected bullet line, got %q", got)
	}
	if !strings.Contains(got, "- operator training") {
		t.Errorf("expected last bullet line, got %q", got)
	}
}

func TestRules_RequirementsSectionCappedAt150Chars(t *testing.T) {
	body := strings.Repeat("very long requirement text ", 20)
	docContext := "Specifications overview\n" + body + "\n\nend"
	got := ruleExtract(t, QuestionRequirement, docContext)
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "- Requirement section: ") {
			section := strings.TrimSuffix(strings.TrimPrefix(line, "- Requirement section: "), "...")
			if len(section) > 150 {
				t.Errorf("section length %d exceeds 150", len(section))
			}
			return
		}
	}
	t.Fatalf("no requirement section line in %q", got)
}

func TestRules_RequirementsBulletsCappedAtTen(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		sb.WriteString("- a bullet item\n")
	}
	got := ruleExtract(t, QuestionRequirement, sb.String())
	count := strings.Count(got, "- a bullet item")
	if count != 10 {
		t.Errorf("expected 10 bullets, got %d", count)
	}
}

func TestRules_CostFindsCurrencyVerbatim(t *testing.T) {
	got := ruleExtract(t, QuestionCost, "The total budget is $50,000 payable in two installments.")
	if !strings.Contains(got, "$50,000") {
		t.Errorf("expected verbatim figure, got %q", got)
	}
	if !strings.Contains(got, "Financial figures mentioned:") {
		t.Errorf("expected figures header, got %q", got)
	}
	if !strings.Contains(got, "Payment terms mentioned:") {
		t.Errorf("expected payment header, got %q", got)
	}
}

func TestRules_CostCentsAndGrouping(t *testing.T) {
	got := ruleExtract(t, QuestionCost, "Items priced at $1,250,000.50 and $75.")
	if !strings.Contains(got, "$1,250,000.50") {
		t.Errorf("expected grouped figure with cents, got %q", got)
	}
	if !strings.Contains(got, "- $75") {
		t.Errorf("expected small figure, got %q", got)
	}
}

func TestRules_CostFiltersShortFragments(t *testing.T) {
	// "fee." normalizes to a fragment under 10 chars and must be dropped.
	got := ruleExtract(t, QuestionCost, "A fee.\nThe payment schedule spans four milestones.")
	if strings.Contains(got, "- A fee") {
		t.Errorf("short fragment should be filtered, got %q", got)
	}
	if !strings.Contains(got, "payment schedule spans four milestones") {
		t.Errorf("expected payment sentence, got %q", got)
	}
}

func TestRules_CostNoneFound(t *testing.T) {
	got := ruleExtract(t, QuestionCost, "Nothing about money here at all")
	if got != "No specific cost information found in the document." {
		t.Errorf("unexpected answer %q", got)
	}
}

func TestRules_QualityGroups(t *testing.T) {
	docContext := "Quality assurance follows ISO 9001 procedures.\n" +
		"All hardware must pass burn-in inspection.\n" +
		"The software delivered requires acceptance review."
	got := ruleExtract(t, QuestionQuality, docContext)
	if !strings.HasPrefix(got, "Quality Checking Information:") {
		t.Errorf("expected header, got %q", got)
	}
	for _, want := range []string{"Quality standards mentioned:", "Hardware specifications:", "Software requirements:"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected group %q in %q", want, got)
		}
	}
}

func TestRules_QualityNoneFound(t *testing.T) {
	got := ruleExtract(t, QuestionQuality, "An unrelated paragraph about gardening.")
	if got != "No specific quality checking information found in the document." {
		t.Errorf("unexpected answer %q", got)
	}
}

func TestRules_UnknownQuestionIsDeterministic(t *testing.T) {
	first := ruleExtract(t, Question("Warranty"), "Warranty period is two years.")
	second := ruleExtract(t, Question("Warranty"), "Completely different text.")
	if first != "No information available for this question." || first != second {
		t.Errorf("expected fixed placeholder, got %q and %q", first, second)
	}
}

func TestRules_IndependentAcrossQuestions(t *testing.T) {
	docContext := "Budget: $10,000. Deadline is December 1, 2025. Testing procedures apply."
	costFirst := ruleExtract(t, QuestionCost, docContext)
	_ = ruleExtract(t, QuestionDeadline, docContext)
	costSecond := ruleExtract(t, QuestionCost, docContext)
	if costFirst != costSecond {
		t.Error("cost extraction changed after running another question")
	}
}
