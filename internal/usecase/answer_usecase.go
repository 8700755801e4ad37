package usecase

import (
	"context"
	"time"

	"diary/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitAnswerInput defines the payload for recording a daily answer.
// Exactly one of the value fields must be set, matching AnswerType.
type SubmitAnswerInput struct {
	QuestionID    *uint   `json:"question"`
	AnswerType    string  `json:"answer_type" validate:"required,oneof=choice boolean integer"`
	AnswerChoice  *string `json:"answer_choice"`
	AnswerInt     *int64  `json:"answer_int"`
	AnswerBool    *bool   `json:"answer_bool"`
	VegetableID   *uint   `json:"vegetable"`
	IsAllergy     bool    `json:"is_allergy"`
	IsUnnecessary bool    `json:"is_unnecessary"`
}

// UpdateAnswerInput carries the mutable answer fields. Nil fields are
// left unchanged; setting AnswerType replaces the whole value.
type UpdateAnswerInput struct {
	AnswerType    *string `json:"answer_type" validate:"omitempty,oneof=choice boolean integer"`
	AnswerChoice  *string `json:"answer_choice"`
	AnswerInt     *int64  `json:"answer_int"`
	AnswerBool    *bool   `json:"answer_bool"`
	VegetableID   *uint   `json:"vegetable"`
	IsAllergy     *bool   `json:"is_allergy"`
	IsUnnecessary *bool   `json:"is_unnecessary"`
}

// AnswerOutput is the owner's view of a recorded answer.
type AnswerOutput struct {
	ID            uint      `json:"id"`
	QuestionID    *uint     `json:"question"`
	AnswerType    string    `json:"answer_type"`
	AnswerChoice  *string   `json:"answer_choice"`
	AnswerInt     *int64    `json:"answer_int"`
	AnswerBool    *bool     `json:"answer_bool"`
	VegetableID   *uint     `json:"vegetable"`
	IsAllergy     bool      `json:"is_allergy"`
	IsUnnecessary bool      `json:"is_unnecessary"`
	AnsweredOn    string    `json:"answered_on"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAnswerOutput maps an answer entity to its owner-facing view.
func NewAnswerOutput(a *entity.Answer) *AnswerOutput {
	out := &AnswerOutput{
		ID:            a.ID,
		QuestionID:    a.QuestionID,
		AnswerType:    string(a.Value.Kind),
		VegetableID:   a.VegetableID,
		IsAllergy:     a.IsAllergy,
		IsUnnecessary: a.IsUnnecessary,
		AnsweredOn:    string(a.AnsweredOn),
		CreatedAt:     a.CreatedAt,
	}
	switch a.Value.Kind {
	case entity.AnswerKindChoice:
		choice := a.Value.Choice
		out.AnswerChoice = &choice
	case entity.AnswerKindInteger:
		n := a.Value.Int
		out.AnswerInt = &n
	case entity.AnswerKindBoolean:
		b := a.Value.Bool
		out.AnswerBool = &b
	}
	return out
}

// NewAnswerOutputs maps a slice of answer entities.
func NewAnswerOutputs(answers []*entity.Answer) []*AnswerOutput {
	outs := make([]*AnswerOutput, 0, len(answers))
	for _, a := range answers {
		outs = append(outs, NewAnswerOutput(a))
	}
	return outs
}

// AnswerUsecase defines the owner-scoped answer operations of one
// question family. Every method acts only on rows owned by userID.
type AnswerUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, input *SubmitAnswerInput) (*AnswerOutput, error)
	List(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*AnswerOutput, error)
	Update(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, answerID uint, input *UpdateAnswerInput) (*AnswerOutput, error)
	Delete(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, answerID uint) error
	ListYesterday(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*AnswerOutput, error)
	ListWeek(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*AnswerOutput, error)
}
