package analysis

// Question is one of the business facts extracted from a tender document.
// The set is fixed, but extraction degrades gracefully for unknown values.
type Question string

const (
	QuestionDeadline    Question = "Deadline"
	QuestionRequirement Question = "Project Requirement"
	QuestionCost        Question = "Cost"
	QuestionQuality     Question = "Quality Checking"
)

// Questions lists all questions in the order they are analyzed and
// reported. The order is part of the output contract.
var Questions = []Question{
	QuestionDeadline,
	QuestionRequirement,
	QuestionCost,
	QuestionQuality,
}

// Result maps each question to its extracted answer text. A Result is
// complete: all four questions are present, none of the answers empty.
type Result map[Question]string
