// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"diary/internal/domain/entity"
)

// ErrQuestionNotFound is returned when a question is not found.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository defines read access to the question catalogs.
// Catalogs are reference data: users never filter them by owner.
type QuestionRepository interface {
	// ListByFamily retrieves every question of one questionnaire family,
	// newest id first.
	ListByFamily(ctx context.Context, family entity.QuestionFamily) ([]*entity.Question, error)

	// FindByID retrieves a single question by its id.
	FindByID(ctx context.Context, id uint) (*entity.Question, error)

	// Create persists a new question. Reserved for administrative seeding.
	Create(ctx context.Context, question *entity.Question) error
}

// ErrVegetableNotFound is returned when a vegetable is not found.
var ErrVegetableNotFound = errors.New("vegetable not found")

// VegetableRepository defines read access to the vegetable lookup table.
type VegetableRepository interface {
	// List retrieves every vegetable row.
	List(ctx context.Context) ([]*entity.Vegetable, error)

	// FindByID retrieves a single vegetable by its id.
	FindByID(ctx context.Context, id uint) (*entity.Vegetable, error)

	// Create persists a new vegetable. Reserved for administrative seeding.
	Create(ctx context.Context, vegetable *entity.Vegetable) error
}
