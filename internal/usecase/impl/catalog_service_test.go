package impl

import (
	"context"
	"testing"

	"diary/internal/domain/entity"
	"diary/internal/infra/persistence/postgres"
	"diary/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(deps *testDeps) usecase.CatalogUsecase {
	return &catalogService{
		txManager: deps.txManager,
		logger:    newDiscardLogger(),
	}
}

func TestCatalogServiceListQuestionsByFamily(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestCatalogService(deps)
	ctx := context.Background()

	first := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)
	second := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryExercise, entity.AnswerKindChoice)
	deps.seedQuestion(t, entity.FamilySleep, entity.CategorySleep, entity.AnswerKindBoolean)

	out, err := svc.ListQuestions(ctx, entity.FamilyGeneral)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Newest id first.
	assert.Equal(t, second.ID, out[0].ID)
	assert.Equal(t, first.ID, out[1].ID)

	sleepOut, err := svc.ListQuestions(ctx, entity.FamilySleep)
	require.NoError(t, err)
	assert.Len(t, sleepOut, 1)
}

func TestCatalogServiceQuestionChoiceLabels(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestCatalogService(deps)
	ctx := context.Background()

	question := &entity.Question{
		Family:     entity.FamilyMeal,
		Prompt:     "how was the portion size",
		Category:   entity.CategoryMeal,
		AnswerKind: entity.AnswerKindChoice,
		Choice1:    "too small",
		Choice2:    "just right",
		Choice3:    "too large",
	}
	require.NoError(t, postgres.NewQuestionRepository(deps.db).Create(ctx, question))

	out, err := svc.ListQuestions(ctx, entity.FamilyMeal)
	require.NoError(t, err)
	require.Len(t, out, 1)
	// Unused labels are dropped from the collected list but the raw
	// columns stay addressable.
	assert.Equal(t, []string{"too small", "just right", "too large"}, out[0].Choices)
	assert.Equal(t, "too small", out[0].Choice1)
	assert.Empty(t, out[0].Choice4)
}

func TestCatalogServiceListVegetables(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestCatalogService(deps)
	ctx := context.Background()

	deps.seedVegetable(t, "spinach")
	deps.seedVegetable(t, "carrot")

	out, err := svc.ListVegetables(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Alphabetical by name.
	assert.Equal(t, "carrot", out[0].Name)
	assert.Equal(t, "spinach", out[1].Name)
}
