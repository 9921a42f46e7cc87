package report

import (
	"strings"
	"testing"

	"github.com/tenderlens/tenderlens/internal/analysis"
)

func sampleResult() analysis.Result {
	return analysis.Result{
		analysis.QuestionDeadline:    "Deadline information:\n- Date found: December 31, 2024",
		analysis.QuestionRequirement: "Project Requirements:\n- supply of servers",
		analysis.QuestionCost:        "Cost and Payment Information:\n- $50,000",
		analysis.QuestionQuality:     "Quality Checking Information:\n- quality testing applies",
	}
}

func TestMarkdown_SectionsInQuestionOrder(t *testing.T) {
	md := New("tender.pdf", sampleResult()).Markdown()

	if !strings.Contains(md, "# Tender Document Analysis Report") {
		t.Error("missing title")
	}
	if !strings.Contains(md, "**Source document:** tender.pdf") {
		t.Error("missing source filename")
	}

	last := -1
	for _, q := range analysis.Questions {
		pos := strings.Index(md, "## "+string(q))
		if pos < 0 {
			t.Fatalf("missing section for %q", q)
		}
		if pos < last {
			t.Errorf("section %q out of order", q)
		}
		last = pos
	}
	if !strings.Contains(md, "$50,000") {
		t.Error("missing cost answer")
	}
}

func TestMarkdown_MissingAnswerGetsPlaceholder(t *testing.T) {
	result := sampleResult()
	delete(result, analysis.QuestionQuality)
	md := New("tender.pdf", result).Markdown()
	if !strings.Contains(md, "No specific quality checking information found") {
		t.Errorf("expected placeholder for missing answer, got %q", md)
	}
}

func TestHTML_RendersSections(t *testing.T) {
	html, err := New("tender.pdf", sampleResult()).HTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	for _, q := range analysis.Questions {
		if !strings.Contains(html, string(q)) {
			t.Errorf("missing question %q in html", q)
		}
	}
	if !strings.Contains(html, "$50,000") {
		t.Error("missing answer content")
	}
}

func TestHTML_EscapesFilenameInTitle(t *testing.T) {
	html, err := New(`<weird>"name".pdf`, sampleResult()).HTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<title>Tender Analysis: <weird>") {
		t.Error("filename not escaped in title")
	}
	if !strings.Contains(html, "&lt;weird&gt;") {
		t.Error("expected escaped filename")
	}
}
