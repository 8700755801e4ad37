// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"diary/internal/domain/entity"
	domainerrors "diary/internal/domain/errors"
	"diary/internal/domain/repository"
	"diary/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// questionRepository implements the repository.QuestionRepository interface.
type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository is the constructor for questionRepository.
func NewQuestionRepository(db *gorm.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

// ListByFamily retrieves every question of one questionnaire family, newest id first.
func (repo *questionRepository) ListByFamily(ctx context.Context, family entity.QuestionFamily) ([]*entity.Question, error) {
	var questionModels []*model.QuestionModel

	if err := repo.db.WithContext(ctx).
		Where("family = ?", string(family)).
		Order("id DESC").
		Find(&questionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list questions")
	}

	questions := make([]*entity.Question, 0, len(questionModels))
	for _, questionM := range questionModels {
		questions = append(questions, toQuestionDomain(questionM))
	}

	return questions, nil
}

// FindByID retrieves a single question by its id.
func (repo *questionRepository) FindByID(ctx context.Context, id uint) (*entity.Question, error) {
	var questionM model.QuestionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&questionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrQuestionNotFound
		}

		return nil, errors.Wrap(err, "failed to find question by id")
	}

	return toQuestionDomain(&questionM), nil
}

// Create persists a new question row.
func (repo *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	questionM := fromQuestionDomain(question)

	if err := repo.db.WithContext(ctx).Create(questionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create question")
	}

	question.ID = questionM.ID
	question.CreatedAt = questionM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toQuestionDomain converts a GORM QuestionModel to a domain Question entity.
func toQuestionDomain(data *model.QuestionModel) *entity.Question {
	if data == nil {
		return nil
	}

	return &entity.Question{
		ID:         data.ID,
		Family:     entity.QuestionFamily(data.Family),
		Prompt:     data.Prompt,
		Category:   entity.QuestionCategory(data.Category),
		AnswerKind: entity.AnswerKind(data.AnswerKind),
		Choice1:    data.Choice1,
		Choice2:    data.Choice2,
		Choice3:    data.Choice3,
		Choice4:    data.Choice4,
		IsRequired: data.IsRequired,
		CreatedAt:  data.CreatedAt,
	}
}

// fromQuestionDomain converts a domain Question entity to a GORM QuestionModel.
func fromQuestionDomain(data *entity.Question) *model.QuestionModel {
	if data == nil {
		return nil
	}

	return &model.QuestionModel{
		ID:         data.ID,
		Family:     string(data.Family),
		Prompt:     data.Prompt,
		Category:   string(data.Category),
		AnswerKind: string(data.AnswerKind),
		Choice1:    data.Choice1,
		Choice2:    data.Choice2,
		Choice3:    data.Choice3,
		Choice4:    data.Choice4,
		IsRequired: data.IsRequired,
		CreatedAt:  data.CreatedAt,
	}
}
