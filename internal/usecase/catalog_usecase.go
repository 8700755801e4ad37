package usecase

import (
	"context"

	"diary/internal/domain/entity"
)

// QuestionOutput is the public view of a catalog question. Choices carries
// the populated choice labels in display order alongside the raw columns.
type QuestionOutput struct {
	ID         uint     `json:"id"`
	Prompt     string   `json:"question"`
	Category   string   `json:"category"`
	AnswerType string   `json:"answer_type"`
	Choice1    string   `json:"choice1"`
	Choice2    string   `json:"choice2"`
	Choice3    string   `json:"choice3"`
	Choice4    string   `json:"choice4"`
	Choices    []string `json:"choices"`
	IsRequired bool     `json:"is_required"`
}

// NewQuestionOutput maps a question entity to its public view.
func NewQuestionOutput(q *entity.Question) *QuestionOutput {
	return &QuestionOutput{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Category:   string(q.Category),
		AnswerType: string(q.AnswerKind),
		Choice1:    q.Choice1,
		Choice2:    q.Choice2,
		Choice3:    q.Choice3,
		Choice4:    q.Choice4,
		Choices:    q.Choices(),
		IsRequired: q.IsRequired,
	}
}

// VegetableOutput is the public view of a vegetable entry.
type VegetableOutput struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Variety string `json:"variety"`
}

// NewVegetableOutput maps a vegetable entity to its public view.
func NewVegetableOutput(v *entity.Vegetable) *VegetableOutput {
	return &VegetableOutput{
		ID:      v.ID,
		Name:    v.Name,
		Color:   v.Color,
		Variety: v.Variety,
	}
}

// CatalogUsecase exposes the read-only reference catalogs: the daily
// question sets of each family and the vegetable table.
type CatalogUsecase interface {
	ListQuestions(ctx context.Context, family entity.QuestionFamily) ([]*QuestionOutput, error)
	ListVegetables(ctx context.Context) ([]*VegetableOutput, error)
}
