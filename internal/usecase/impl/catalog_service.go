package impl

import (
	"context"
	"log/slog"

	deliverycontext "diary/internal/delivery/context"
	"diary/internal/domain/entity"
	"diary/internal/domain/repository"
	"diary/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListQuestions returns the question catalog of one family, newest first.
func (srv *catalogService) ListQuestions(ctx context.Context, family entity.QuestionFamily) ([]*usecase.QuestionOutput, error) {
	var questions []*entity.Question
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.QuestionRepo().ListByFamily(ctx, family)
		if err != nil {
			return errors.Wrap(err, "failed to list questions")
		}
		questions = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list questions", slog.String("family", string(family)), slog.Any("error", err))

		return nil, err
	}

	outputs := make([]*usecase.QuestionOutput, 0, len(questions))
	for _, q := range questions {
		outputs = append(outputs, usecase.NewQuestionOutput(q))
	}

	return outputs, nil
}

// ListVegetables returns the full vegetable lookup table.
func (srv *catalogService) ListVegetables(ctx context.Context) ([]*usecase.VegetableOutput, error) {
	var vegetables []*entity.Vegetable
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.VegetableRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list vegetables")
		}
		vegetables = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list vegetables", slog.Any("error", err))

		return nil, err
	}

	outputs := make([]*usecase.VegetableOutput, 0, len(vegetables))
	for _, v := range vegetables {
		outputs = append(outputs, usecase.NewVegetableOutput(v))
	}

	return outputs, nil
}
