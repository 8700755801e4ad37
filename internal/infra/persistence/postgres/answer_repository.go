// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"diary/internal/domain/entity"
	domainerrors "diary/internal/domain/errors"
	"diary/internal/domain/repository"
	"diary/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// answerRepository implements the repository.AnswerRepository interface.
// Every query is scoped by the owning user's id; rows belonging to other
// users are unreachable through this type.
type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository is the constructor for answerRepository.
func NewAnswerRepository(db *gorm.DB) repository.AnswerRepository {
	return &answerRepository{db: db}
}

// Create persists a new answer. The unique index over
// (user_id, question_id, answered_on) enforces the one-answer-per-day rule;
// its violation is surfaced as ErrDuplicateAnswer.
func (repo *answerRepository) Create(ctx context.Context, answer *entity.Answer) error {
	answerM := fromAnswerDomain(answer)

	if err := repo.db.WithContext(ctx).Create(answerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateAnswer
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrQuestionNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create answer")
	}

	answer.ID = answerM.ID
	answer.CreatedAt = answerM.CreatedAt

	return nil
}

// ListByUser retrieves the user's answers of one family, newest id first.
func (repo *answerRepository) ListByUser(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*entity.Answer, error) {
	var answerModels []*model.AnswerModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND family = ?", userID, string(family)).
		Order("id DESC").
		Find(&answerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list answers by user")
	}

	return toAnswerDomainList(answerModels), nil
}

// FindByID retrieves one of the user's answers by id. An answer owned by a
// different user is reported as not found.
func (repo *answerRepository) FindByID(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, id uint) (*entity.Answer, error) {
	var answerM model.AnswerModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND family = ?", id, userID, string(family)).
		First(&answerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAnswerNotFound
		}

		return nil, errors.Wrap(err, "failed to find answer by id")
	}

	return toAnswerDomain(&answerM), nil
}

// ListByDay retrieves the user's answers of one family submitted on the given calendar day.
func (repo *answerRepository) ListByDay(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, day entity.Day) ([]*entity.Answer, error) {
	var answerModels []*model.AnswerModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND family = ? AND answered_on = ?", userID, string(family), string(day)).
		Order("id DESC").
		Find(&answerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list answers by day")
	}

	return toAnswerDomainList(answerModels), nil
}

// ListByRangeAndCategory retrieves the user's answers of one family submitted
// within [from, to] whose question carries the given category.
func (repo *answerRepository) ListByRangeAndCategory(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, from, to entity.Day, category entity.QuestionCategory) ([]*entity.Answer, error) {
	var answerModels []*model.AnswerModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.user_id = ? AND answers.family = ?", userID, string(family)).
		Where("answers.answered_on BETWEEN ? AND ?", string(from), string(to)).
		Where("questions.category = ?", string(category)).
		Order("answers.id DESC").
		Find(&answerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list answers by range and category")
	}

	return toAnswerDomainList(answerModels), nil
}

// Update persists the payload fields of one of the user's answers. Owner,
// question and submission day are never part of the update set, so they stay
// immutable no matter what the caller passes in.
func (repo *answerRepository) Update(ctx context.Context, answer *entity.Answer) error {
	answerM := fromAnswerDomain(answer)

	result := repo.db.WithContext(ctx).
		Model(&model.AnswerModel{}).
		Where("id = ? AND user_id = ? AND family = ?", answer.ID, answer.UserID, string(answer.Family)).
		Updates(map[string]any{
			"answer_type":    answerM.AnswerKind,
			"answer_choice":  answerM.AnswerChoice,
			"answer_int":     answerM.AnswerInt,
			"answer_bool":    answerM.AnswerBool,
			"vegetable_id":   answerM.VegetableID,
			"is_allergy":     answerM.IsAllergy,
			"is_unnecessary": answerM.IsUnnecessary,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update answer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAnswerNotFound
	}

	return nil
}

// Delete removes one of the user's answers by id.
func (repo *answerRepository) Delete(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, id uint) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND family = ?", id, userID, string(family)).
		Delete(&model.AnswerModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete answer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAnswerNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAnswerDomain converts a GORM AnswerModel to a domain Answer entity.
func toAnswerDomain(data *model.AnswerModel) *entity.Answer {
	if data == nil {
		return nil
	}

	value := entity.AnswerValue{Kind: entity.AnswerKind(data.AnswerKind)}
	switch value.Kind {
	case entity.AnswerKindChoice:
		if data.AnswerChoice != nil {
			value.Choice = *data.AnswerChoice
		}
	case entity.AnswerKindInteger:
		if data.AnswerInt != nil {
			value.Int = *data.AnswerInt
		}
	case entity.AnswerKindBoolean:
		if data.AnswerBool != nil {
			value.Bool = *data.AnswerBool
		}
	}

	return &entity.Answer{
		ID:            data.ID,
		UserID:        data.UserID,
		Family:        entity.QuestionFamily(data.Family),
		QuestionID:    data.QuestionID,
		VegetableID:   data.VegetableID,
		Value:         value,
		IsAllergy:     data.IsAllergy,
		IsUnnecessary: data.IsUnnecessary,
		AnsweredOn:    entity.Day(data.AnsweredOn),
		CreatedAt:     data.CreatedAt,
	}
}

func toAnswerDomainList(models []*model.AnswerModel) []*entity.Answer {
	answers := make([]*entity.Answer, 0, len(models))
	for _, answerM := range models {
		answers = append(answers, toAnswerDomain(answerM))
	}

	return answers
}

// fromAnswerDomain converts a domain Answer entity to a GORM AnswerModel.
// Only the payload column matching the value's kind is populated; the
// sibling columns stay NULL.
func fromAnswerDomain(data *entity.Answer) *model.AnswerModel {
	if data == nil {
		return nil
	}

	answerM := &model.AnswerModel{
		ID:            data.ID,
		UserID:        data.UserID,
		Family:        string(data.Family),
		QuestionID:    data.QuestionID,
		VegetableID:   data.VegetableID,
		AnswerKind:    string(data.Value.Kind),
		IsAllergy:     data.IsAllergy,
		IsUnnecessary: data.IsUnnecessary,
		AnsweredOn:    string(data.AnsweredOn),
		CreatedAt:     data.CreatedAt,
	}

	switch data.Value.Kind {
	case entity.AnswerKindChoice:
		choice := data.Value.Choice
		answerM.AnswerChoice = &choice
	case entity.AnswerKindInteger:
		n := data.Value.Int
		answerM.AnswerInt = &n
	case entity.AnswerKindBoolean:
		b := data.Value.Bool
		answerM.AnswerBool = &b
	}

	return answerM
}
