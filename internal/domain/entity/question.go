package entity

import "time"

// QuestionFamily identifies which daily questionnaire a question belongs to.
// The general, meal and sleep catalogs share one schema and are told apart
// by this tag.
type QuestionFamily string

const (
	FamilyGeneral QuestionFamily = "general"
	FamilyMeal    QuestionFamily = "meal"
	FamilySleep   QuestionFamily = "sleep"
)

// Valid reports whether the value is a known questionnaire family.
func (f QuestionFamily) Valid() bool {
	switch f {
	case FamilyGeneral, FamilyMeal, FamilySleep:
		return true
	}

	return false
}

// QuestionCategory classifies the topic of a question. The weekly answer
// view filters on this tag.
type QuestionCategory string

const (
	CategoryMeal     QuestionCategory = "meal"
	CategoryExercise QuestionCategory = "exercise"
	CategorySleep    QuestionCategory = "sleep"
)

// Question is a daily questionnaire prompt. Questions are reference data:
// administrators create and edit them, end users only read them. A question
// has no owner.
type Question struct {
	ID         uint
	Family     QuestionFamily
	Prompt     string
	Category   QuestionCategory
	AnswerKind AnswerKind
	// Fixed choice labels for AnswerKindChoice questions. Unused labels are
	// empty strings, mirroring the catalog's at-most-four-options shape.
	Choice1    string
	Choice2    string
	Choice3    string
	Choice4    string
	IsRequired bool
	CreatedAt  time.Time
}

// Choices returns the non-empty fixed choice labels in display order.
func (q *Question) Choices() []string {
	labels := make([]string, 0, 4)
	for _, label := range []string{q.Choice1, q.Choice2, q.Choice3, q.Choice4} {
		if label != "" {
			labels = append(labels, label)
		}
	}

	return labels
}

// Vegetable is a pure lookup row that meal answers may reference.
type Vegetable struct {
	ID      uint
	Name    string
	Color   string
	Variety string
}
