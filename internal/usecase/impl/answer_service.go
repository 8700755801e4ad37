package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "diary/internal/delivery/context"
	"diary/internal/domain/entity"
	domainerrors "diary/internal/domain/errors"
	"diary/internal/domain/repository"
	"diary/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// weekWindowDays is the span of the weekly answer view, counted back from today.
const weekWindowDays = 7

// weekCategory is the question category the weekly view reports on.
const weekCategory = entity.CategoryMeal

// answerService implements the AnswerUsecase interface.
type answerService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	// now is swappable so tests can pin the calendar day.
	now func() time.Time
}

// AnswerServiceParams holds dependencies for answerService, injected by Fx.
type AnswerServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewAnswerService is the constructor for answerService.
func NewAnswerService(params AnswerServiceParams) usecase.AnswerUsecase {
	return &answerService{
		txManager: params.TxManager,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *answerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// buildValue assembles the tagged answer value from the wire fields. The
// field matching the declared type must be present.
func buildValue(answerType string, choice *string, n *int64, b *bool) (entity.AnswerValue, error) {
	kind := entity.AnswerKind(answerType)
	switch kind {
	case entity.AnswerKindChoice:
		if choice == nil {
			return entity.AnswerValue{}, errors.New("answer_choice is required for choice answers")
		}

		return entity.ChoiceValue(*choice), nil
	case entity.AnswerKindInteger:
		if n == nil {
			return entity.AnswerValue{}, errors.New("answer_int is required for integer answers")
		}

		return entity.IntValue(*n), nil
	case entity.AnswerKindBoolean:
		if b == nil {
			return entity.AnswerValue{}, errors.New("answer_bool is required for boolean answers")
		}

		return entity.BoolValue(*b), nil
	}

	return entity.AnswerValue{}, errors.Errorf("unknown answer type %q", answerType)
}

// patchValue merges a partial update into an existing answer value. With an
// explicit answer_type the value is rebuilt from scratch; without one, a
// provided payload field is applied against the stored kind and a field of
// the wrong shape is rejected.
func patchValue(current entity.AnswerValue, answerType *string, choice *string, n *int64, b *bool) (entity.AnswerValue, error) {
	if answerType != nil {
		return buildValue(*answerType, choice, n, b)
	}
	if choice == nil && n == nil && b == nil {
		return current, nil
	}

	return buildValue(string(current.Kind), choice, n, b)
}

// Submit records a new answer for the calling user. The owner and the
// submission day come from the server, never from the payload, and the
// storage-level unique constraint enforces one answer per question per day.
func (srv *answerService) Submit(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, input *usecase.SubmitAnswerInput) (*usecase.AnswerOutput, error) {
	srv.log(ctx).Info("Submitting answer", slog.Any("userID", userID), slog.String("family", string(family)))

	if input.QuestionID == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("question is required")
	}

	value, err := buildValue(input.AnswerType, input.AnswerChoice, input.AnswerInt, input.AnswerBool)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}
	if err := value.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	answer := &entity.Answer{
		UserID:        userID,
		Family:        family,
		QuestionID:    input.QuestionID,
		VegetableID:   input.VegetableID,
		Value:         value,
		IsAllergy:     input.IsAllergy,
		IsUnnecessary: input.IsUnnecessary,
		AnsweredOn:    entity.DayOf(srv.now()),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		question, err := repoFactory.QuestionRepo().FindByID(ctx, *input.QuestionID)
		if err != nil {
			if errors.Is(err, repository.ErrQuestionNotFound) {
				return domainerrors.ErrQuestionNotFound.WrapMessage("no such question")
			}

			return errors.Wrap(err, "failed to find question")
		}
		if question.Family != family {
			return domainerrors.ErrQuestionNotFound.WrapMessage("question belongs to another catalog")
		}

		if input.VegetableID != nil {
			if _, err := repoFactory.VegetableRepo().FindByID(ctx, *input.VegetableID); err != nil {
				if errors.Is(err, repository.ErrVegetableNotFound) {
					return domainerrors.ErrVegetableNotFound.WrapMessage("no such vegetable")
				}

				return errors.Wrap(err, "failed to find vegetable")
			}
		}

		if err := repoFactory.AnswerRepo().Create(ctx, answer); err != nil {
			if errors.Is(err, repository.ErrDuplicateAnswer) {
				return domainerrors.ErrAnswerAlreadySubmitted.WrapMessage("question already answered on this day")
			}
			if errors.Is(err, repository.ErrQuestionNotFound) {
				return domainerrors.ErrQuestionNotFound.WrapMessage("no such question")
			}

			return errors.Wrap(err, "failed to create answer")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to submit answer", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Answer submitted", slog.Any("userID", userID), slog.Any("answerID", answer.ID))

	return usecase.NewAnswerOutput(answer), nil
}

// List returns all of the user's answers in one family, newest first.
func (srv *answerService) List(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*usecase.AnswerOutput, error) {
	var answers []*entity.Answer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AnswerRepo().ListByUser(ctx, userID, family)
		if err != nil {
			return errors.Wrap(err, "failed to list answers")
		}
		answers = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list answers", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return usecase.NewAnswerOutputs(answers), nil
}

// Update patches one of the user's answers. The owner, the question and the
// submission day are immutable; only the payload fields change.
func (srv *answerService) Update(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, answerID uint, input *usecase.UpdateAnswerInput) (*usecase.AnswerOutput, error) {
	srv.log(ctx).Info("Updating answer", slog.Any("userID", userID), slog.Any("answerID", answerID))

	var answer *entity.Answer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		answerRepo := repoFactory.AnswerRepo()

		found, err := answerRepo.FindByID(ctx, userID, family, answerID)
		if err != nil {
			if errors.Is(err, repository.ErrAnswerNotFound) {
				return domainerrors.ErrAnswerNotFound.WrapMessage("no such answer in caller's scope")
			}

			return errors.Wrap(err, "failed to find answer")
		}

		value, err := patchValue(found.Value, input.AnswerType, input.AnswerChoice, input.AnswerInt, input.AnswerBool)
		if err != nil {
			return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
		}
		if err := value.Validate(); err != nil {
			return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
		}
		found.Value = value
		if input.VegetableID != nil {
			if _, err := repoFactory.VegetableRepo().FindByID(ctx, *input.VegetableID); err != nil {
				if errors.Is(err, repository.ErrVegetableNotFound) {
					return domainerrors.ErrVegetableNotFound.WrapMessage("no such vegetable")
				}

				return errors.Wrap(err, "failed to find vegetable")
			}
			found.VegetableID = input.VegetableID
		}
		if input.IsAllergy != nil {
			found.IsAllergy = *input.IsAllergy
		}
		if input.IsUnnecessary != nil {
			found.IsUnnecessary = *input.IsUnnecessary
		}

		if err := answerRepo.Update(ctx, found); err != nil {
			if errors.Is(err, repository.ErrAnswerNotFound) {
				return domainerrors.ErrAnswerNotFound.WrapMessage("no such answer in caller's scope")
			}

			return errors.Wrap(err, "failed to update answer")
		}
		answer = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update answer", slog.Any("userID", userID), slog.Any("answerID", answerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Answer updated", slog.Any("userID", userID), slog.Any("answerID", answerID))

	return usecase.NewAnswerOutput(answer), nil
}

// Delete removes one of the user's answers.
func (srv *answerService) Delete(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily, answerID uint) error {
	srv.log(ctx).Info("Deleting answer", slog.Any("userID", userID), slog.Any("answerID", answerID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AnswerRepo().Delete(ctx, userID, family, answerID); err != nil {
			if errors.Is(err, repository.ErrAnswerNotFound) {
				return domainerrors.ErrAnswerNotFound.WrapMessage("no such answer in caller's scope")
			}

			return errors.Wrap(err, "failed to delete answer")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete answer", slog.Any("userID", userID), slog.Any("answerID", answerID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Answer deleted", slog.Any("userID", userID), slog.Any("answerID", answerID))

	return nil
}

// ListYesterday returns the user's answers submitted on the previous
// calendar day.
func (srv *answerService) ListYesterday(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*usecase.AnswerOutput, error) {
	yesterday := entity.DayOf(srv.now()).AddDays(-1)

	var answers []*entity.Answer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AnswerRepo().ListByDay(ctx, userID, family, yesterday)
		if err != nil {
			return errors.Wrap(err, "failed to list answers by day")
		}
		answers = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list yesterday's answers", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return usecase.NewAnswerOutputs(answers), nil
}

// ListWeek returns the user's meal-category answers of the trailing week,
// today included.
func (srv *answerService) ListWeek(ctx context.Context, userID uuid.UUID, family entity.QuestionFamily) ([]*usecase.AnswerOutput, error) {
	today := entity.DayOf(srv.now())
	from := today.AddDays(-weekWindowDays)

	var answers []*entity.Answer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AnswerRepo().ListByRangeAndCategory(ctx, userID, family, from, today, weekCategory)
		if err != nil {
			return errors.Wrap(err, "failed to list answers by range")
		}
		answers = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list weekly answers", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return usecase.NewAnswerOutputs(answers), nil
}
