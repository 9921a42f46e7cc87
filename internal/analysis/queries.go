package analysis

import (
	"fmt"
	"strings"
)

// queryExpansions holds hand-authored domain synonyms per question. The
// expansion is what actually drives keyword retrieval; the question name
// alone is too sparse to match tender prose.
var queryExpansions = map[Question]string{
	QuestionDeadline:    "deadline submission due date timeline schedule",
	QuestionRequirement: "project requirements specifications scope of work technical requirements",
	QuestionCost:        "cost budget price financial milestone payment terms payment schedule financial terms",
	QuestionQuality:     "quality control quality assurance testing hardware software requirements quality standards",
}

// BuildSearchQuery returns the retrieval query for a question. Unknown
// questions fall back to using the question text itself as the expansion.
func BuildSearchQuery(q Question) string {
	expansion, ok := queryExpansions[q]
	if !ok {
		expansion = string(q)
	}
	return fmt.Sprintf("Find information about %s in tender document: %s", q, expansion)
}

const promptTemplate = `You are a professional tender document analyzer. Your task is to extract accurate information about %[1]s from the given tender document context.

Context from tender document:
%[2]s

Extract all relevant information about %[1]s from the above context.
Be specific, detailed, and accurate. Focus only on extracting factual information.
Organize the information in a clear, structured format.
If information is not available, state so clearly.

%[3]s

Your detailed extraction about %[1]s:`

// promptInstructions lists the sub-facts the model should pull out, one
// block per known question.
var promptInstructions = map[Question]string{
	QuestionDeadline: `For Deadline information, extract:
- Submission deadline (exact date and time)
- Pre-proposal meeting dates if any
- Q&A submission deadlines
- Evaluation timeline
- Project start and end dates if mentioned
List all dates chronologically with their corresponding events.`,

	QuestionRequirement: `For Project Requirements, extract:
- Core project objectives
- Detailed scope of work
- Technical specifications
- Required deliverables
- Any mandatory project phases or components
- Special requirements or conditions
Organize by categories and list all important requirements.`,

	QuestionCost: `For Cost information, extract:
- Total budget or estimated cost if mentioned
- Payment schedule and milestones
- Payment terms and conditions
- Budget constraints
- Cost breakdown requirements
- Financial guarantees or securities required
Be precise about financial figures, percentages, and payment timelines.`,

	QuestionQuality: `For Quality Checking information, extract:
- Quality control requirements
- Testing procedures
- Hardware specifications and quality standards
- Software requirements and quality standards
- Required certifications or compliance standards
- Quality assurance documentation requirements
- Inspection and acceptance criteria
List all quality-related requirements systematically.`,
}

const genericInstruction = "Provide a detailed extraction of the information."

// BuildPrompt assembles the full generation prompt for a question over
// the retrieved context.
func BuildPrompt(q Question, context string) string {
	instructions, ok := promptInstructions[q]
	if !ok {
		instructions = genericInstruction
	}
	return strings.TrimSpace(fmt.Sprintf(promptTemplate, q, context, instructions))
}
