// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"diary/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for answer persistence.
var (
	// ErrAnswerNotFound is returned when an answer is not found within the
	// caller's scope. A row owned by another user surfaces as this error,
	// never as a permission error.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrDuplicateAnswer is returned when the (user, question, day) unique
	// constraint is violated.
	ErrDuplicateAnswer = errors.New("answer already submitted for this question today")
)

// AnswerRepository defines the operations for answer persistence. Every
// method is scoped to an owning user: there is no way to reach another
// user's rows through this interface.
type AnswerRepository interface {
	// Create persists a new answer. The storage-level unique constraint over
	// (user, question, day) is the daily-uniqueness guard; a violation is
	// reported as ErrDuplicateAnswer. This holds under concurrent submissions
	// without any pre-check.
	Create(ctx context.Context, answer *entity.Answer) error

	// ListByUser retrieves the user's answers of one family, newest id first.
	ListByUser(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*entity.Answer, error)

	// FindByID retrieves one of the user's answers by id.
	FindByID(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, id uint) (*entity.Answer, error)

	// ListByDay retrieves the user's answers of one family submitted on the
	// given calendar day.
	ListByDay(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, day entity.Day) ([]*entity.Answer, error)

	// ListByRangeAndCategory retrieves the user's answers of one family
	// submitted within [from, to] whose question carries the given category.
	ListByRangeAndCategory(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, from, to entity.Day, category entity.QuestionCategory) ([]*entity.Answer, error)

	// Update persists changes to the payload fields of one of the user's
	// answers. Owner and question identity are never written.
	Update(ctx context.Context, answer *entity.Answer) error

	// Delete removes one of the user's answers by id.
	Delete(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, id uint) error
}
