// Package report renders analysis findings into downloadable documents.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/tenderlens/tenderlens/internal/analysis"
)

// Report is the rendered summary of one analysis run.
type Report struct {
	SourceFilename string
	GeneratedAt    time.Time
	Result         analysis.Result
}

// New builds a report over a complete analysis result.
func New(sourceFilename string, result analysis.Result) *Report {
	return &Report{
		SourceFilename: sourceFilename,
		GeneratedAt:    time.Now().UTC(),
		Result:         result,
	}
}

// Markdown renders the report with one section per question, in the
// fixed question order.
func (r *Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Tender Document Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Source document:** %s\n\n", r.SourceFilename))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	for _, q := range analysis.Questions {
		sb.WriteString(fmt.Sprintf("## %s\n\n", q))
		answer := r.Result[q]
		if strings.TrimSpace(answer) == "" {
			answer = fmt.Sprintf("No specific %s information found in the document.", strings.ToLower(string(q)))
		}
		sb.WriteString(answer)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// HTML renders the Markdown report through goldmark, wrapped in a
// minimal standalone page.
func (r *Report) HTML() (string, error) {
	md := goldmark.New(
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)
	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &body); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>Tender Analysis: %s</title>\n", htmlEscape(r.SourceFilename)))
	sb.WriteString("</head>\n<body>\n")
	sb.Write(body.Bytes())
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
