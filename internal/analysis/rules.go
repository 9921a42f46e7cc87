package analysis

import (
	"context"
	"regexp"
	"strings"
)

// RuleExtractor derives answers with deterministic pattern rules. It is
// always available and serves as the fallback whenever no generative
// model can be reached.
type RuleExtractor struct{}

var (
	longDatePattern = regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`)

	deadlinePattern = regexp.MustCompile(`(?i)\b(?:deadline|due date|submission|due by|complete by|deliver by|finish by)[^\n.]*` +
		`(?:\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})[^\n.]*`)

	requirementSectionPattern = regexp.MustCompile(`(?is)(?:requirements|specifications|scope)[^\n]*\n+.*?(?:\n[ \t]*\n|\z)`)
	bulletPattern             = regexp.MustCompile(`[-•*]\s+([^\n]+)`)

	currencyPattern = regexp.MustCompile(`\$\s*\d+(?:,\d{3})*(?:\.\d{2})?`)
	paymentPattern  = regexp.MustCompile(`(?i)(?:payment|budget|cost|price|fee|financial)[^\n.]*`)

	qualityPattern  = regexp.MustCompile(`(?i)(?:quality|testing|assurance|certification|compliance|standard)[^\n.]*`)
	hardwarePattern = regexp.MustCompile(`(?i)(?:hardware|server|equipment|device)[^\n.]*`)
	softwarePattern = regexp.MustCompile(`(?i)(?:software|application|system|code|program)[^\n.]*`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Extract applies the question's pattern rules over the retrieved context.
// It never fails: questions without rules get a deterministic placeholder.
func (RuleExtractor) Extract(_ context.Context, q Question, docContext string) (string, error) {
	switch q {
	case QuestionDeadline:
		return extractDeadline(docContext), nil
	case QuestionRequirement:
		return extractRequirements(docContext), nil
	case QuestionCost:
		return extractCost(docContext), nil
	case QuestionQuality:
		return extractQuality(docContext), nil
	default:
		return "No information available for this question.", nil
	}
}

func extractDeadline(docContext string) string {
	dates := longDatePattern.FindAllString(docContext, -1)
	deadlines := deadlinePattern.FindAllString(docContext, -1)

	if len(dates) == 0 && len(deadlines) == 0 {
		return "No specific deadline information found in the document."
	}

	lines := []string{"Deadline information:"}
	for _, d := range dates {
		lines = append(lines, "- Date found: "+d)
	}
	for _, d := range deadlines {
		lines = append(lines, "- "+strings.TrimSpace(d))
	}
	return strings.Join(lines, "\n")
}

func extractRequirements(docContext string) string {
	sections := requirementSectionPattern.FindAllString(docContext, -1)
	bullets := bulletPattern.FindAllStringSubmatch(docContext, -1)

	if len(sections) == 0 && len(bullets) == 0 {
		return "No specific project requirements found in the document."
	}

	lines := []string{"Project Requirements:"}

	if len(sections) > 3 {
		sections = sections[:3]
	}
	for _, section := range sections {
		cleaned := normalize(section)
		if len(cleaned) > 150 {
			cleaned = cleaned[:150]
		}
		lines = append(lines, "- Requirement section: "+cleaned+"...")
	}

	if len(bullets) > 10 {
		bullets = bullets[:10]
	}
	for _, m := range bullets {
		lines = append(lines, "- "+strings.TrimSpace(m[1]))
	}
	return strings.Join(lines, "\n")
}

func extractCost(docContext string) string {
	costs := currencyPattern.FindAllString(docContext, -1)
	payments := paymentPattern.FindAllString(docContext, -1)

	if len(costs) == 0 && len(payments) == 0 {
		return "No specific cost information found in the document."
	}

	lines := []string{"Cost and Payment Information:"}

	if len(costs) > 0 {
		lines = append(lines, "Financial figures mentioned:")
		if len(costs) > 5 {
			costs = costs[:5]
		}
		for _, c := range costs {
			lines = append(lines, "- "+c)
		}
	}

	if len(payments) > 0 {
		lines = append(lines, "Payment terms mentioned:")
		if len(payments) > 5 {
			payments = payments[:5]
		}
		for _, p := range payments {
			if cleaned := normalize(p); len(cleaned) > 10 {
				lines = append(lines, "- "+cleaned)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func extractQuality(docContext string) string {
	quality := qualityPattern.FindAllString(docContext, -1)
	hardware := hardwarePattern.FindAllString(docContext, -1)
	software := softwarePattern.FindAllString(docContext, -1)

	if len(quality) == 0 && len(hardware) == 0 && len(software) == 0 {
		return "No specific quality checking information found in the document."
	}

	lines := []string{"Quality Checking Information:"}

	appendGroup := func(header string, matches []string, limit int) {
		if len(matches) == 0 {
			return
		}
		lines = append(lines, header)
		if len(matches) > limit {
			matches = matches[:limit]
		}
		for _, m := range matches {
			if cleaned := normalize(m); len(cleaned) > 10 {
				lines = append(lines, "- "+cleaned)
			}
		}
	}

	appendGroup("Quality standards mentioned:", quality, 5)
	appendGroup("Hardware specifications:", hardware, 3)
	appendGroup("Software requirements:", software, 3)

	return strings.Join(lines, "\n")
}

// normalize collapses whitespace runs into single spaces.
func normalize(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
