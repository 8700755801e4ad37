package impl

import (
	"context"
	"testing"
	"time"

	"diary/internal/domain/entity"
	domainerrors "diary/internal/domain/errors"
	"diary/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnswerService(deps *testDeps, now time.Time) *answerService {
	return &answerService{
		txManager: deps.txManager,
		logger:    newDiscardLogger(),
		now:       func() time.Time { return now },
	}
}

func boolPtr(b bool) *bool { return &b }

func int64Ptr(n int64) *int64 { return &n }

func submitBool(questionID uint, value bool) *usecase.SubmitAnswerInput {
	return &usecase.SubmitAnswerInput{
		QuestionID: &questionID,
		AnswerType: "boolean",
		AnswerBool: boolPtr(value),
	}
}

func TestAnswerServiceSubmit(t *testing.T) {
	deps := newTestDeps(t)
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	svc := newTestAnswerService(deps, now)
	ctx := context.Background()

	user := deps.seedUser(t, "submit@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	out, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "2024-03-15", out.AnsweredOn)
	assert.Equal(t, "boolean", out.AnswerType)
	require.NotNil(t, out.AnswerBool)
	assert.True(t, *out.AnswerBool)
	require.NotNil(t, out.QuestionID)
	assert.Equal(t, question.ID, *out.QuestionID)
}

func TestAnswerServiceSubmitMissingQuestion(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	user := deps.seedUser(t, "noq@example.com")

	input := &usecase.SubmitAnswerInput{
		AnswerType: "boolean",
		AnswerBool: boolPtr(true),
	}
	_, err := svc.Submit(context.Background(), user.ID, entity.FamilyGeneral, input)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAnswerServiceSubmitUnknownQuestion(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	user := deps.seedUser(t, "unknownq@example.com")

	_, err := svc.Submit(context.Background(), user.ID, entity.FamilyGeneral, submitBool(9999, true))
	assert.ErrorIs(t, err, domainerrors.ErrQuestionNotFound)
}

func TestAnswerServiceSubmitWrongFamilyQuestion(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	user := deps.seedUser(t, "wrongfam@example.com")

	sleepQuestion := deps.seedQuestion(t, entity.FamilySleep, entity.CategorySleep, entity.AnswerKindBoolean)

	// A sleep question is invisible to the general catalog.
	_, err := svc.Submit(context.Background(), user.ID, entity.FamilyGeneral, submitBool(sleepQuestion.ID, true))
	assert.ErrorIs(t, err, domainerrors.ErrQuestionNotFound)
}

func TestAnswerServiceSubmitValueFieldMismatch(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	user := deps.seedUser(t, "mismatch@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindInteger)

	questionID := question.ID
	input := &usecase.SubmitAnswerInput{
		QuestionID: &questionID,
		AnswerType: "integer",
		// answer_int missing
		AnswerBool: boolPtr(true),
	}
	_, err := svc.Submit(context.Background(), user.ID, entity.FamilyGeneral, input)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAnswerServiceDailyGuard(t *testing.T) {
	deps := newTestDeps(t)
	today := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	svc := newTestAnswerService(deps, today)
	ctx := context.Background()

	user := deps.seedUser(t, "guard@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	_, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	// Second submission for the same question on the same day is refused.
	_, err = svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, false))
	assert.ErrorIs(t, err, domainerrors.ErrAnswerAlreadySubmitted)

	// The next calendar day opens a fresh slot.
	svc.now = func() time.Time { return today.AddDate(0, 0, 1) }
	_, err = svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, false))
	assert.NoError(t, err)
}

func TestAnswerServiceSubmitUnknownVegetable(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	user := deps.seedUser(t, "noveg@example.com")
	question := deps.seedQuestion(t, entity.FamilyMeal, entity.CategoryMeal, entity.AnswerKindBoolean)

	questionID := question.ID
	missingVeg := uint(555)
	input := &usecase.SubmitAnswerInput{
		QuestionID:  &questionID,
		AnswerType:  "boolean",
		AnswerBool:  boolPtr(true),
		VegetableID: &missingVeg,
	}
	_, err := svc.Submit(context.Background(), user.ID, entity.FamilyMeal, input)
	assert.ErrorIs(t, err, domainerrors.ErrVegetableNotFound)
}

func TestAnswerServiceUpdate(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	user := deps.seedUser(t, "update@example.com")
	question := deps.seedQuestion(t, entity.FamilyMeal, entity.CategoryMeal, entity.AnswerKindBoolean)
	vegetable := deps.seedVegetable(t, "spinach")

	created, err := svc.Submit(ctx, user.ID, entity.FamilyMeal, submitBool(question.ID, true))
	require.NoError(t, err)

	vegID := vegetable.ID
	patched, err := svc.Update(ctx, user.ID, entity.FamilyMeal, created.ID, &usecase.UpdateAnswerInput{
		IsAllergy:   boolPtr(true),
		VegetableID: &vegID,
	})
	require.NoError(t, err)
	assert.True(t, patched.IsAllergy)
	require.NotNil(t, patched.VegetableID)
	assert.Equal(t, vegetable.ID, *patched.VegetableID)
	// Untouched fields survive.
	require.NotNil(t, patched.AnswerBool)
	assert.True(t, *patched.AnswerBool)
	assert.Equal(t, created.AnsweredOn, patched.AnsweredOn)
}

func TestAnswerServiceUpdateValueWithoutType(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	ctx := context.Background()

	user := deps.seedUser(t, "patchvalue@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	created, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	// A payload field alone flips the stored value against the existing kind.
	patched, err := svc.Update(ctx, user.ID, entity.FamilyGeneral, created.ID, &usecase.UpdateAnswerInput{
		AnswerBool: boolPtr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, patched.AnswerBool)
	assert.False(t, *patched.AnswerBool)

	rows, err := svc.List(ctx, user.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].AnswerBool)
	assert.False(t, *rows[0].AnswerBool)

	// A field of the wrong shape is rejected when no new type is declared.
	_, err = svc.Update(ctx, user.ID, entity.FamilyGeneral, created.ID, &usecase.UpdateAnswerInput{
		AnswerInt: int64Ptr(3),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAnswerServiceUpdateValueWithType(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	ctx := context.Background()

	user := deps.seedUser(t, "retype@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	created, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	answerType := "integer"
	patched, err := svc.Update(ctx, user.ID, entity.FamilyGeneral, created.ID, &usecase.UpdateAnswerInput{
		AnswerType: &answerType,
		AnswerInt:  int64Ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "integer", patched.AnswerType)
	require.NotNil(t, patched.AnswerInt)
	assert.Equal(t, int64(7), *patched.AnswerInt)
	assert.Nil(t, patched.AnswerBool)
}

func TestAnswerServiceUpdateEmptyChoiceRejected(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	ctx := context.Background()

	user := deps.seedUser(t, "emptychoice@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	created, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	answerType := "choice"
	empty := ""
	_, err = svc.Update(ctx, user.ID, entity.FamilyGeneral, created.ID, &usecase.UpdateAnswerInput{
		AnswerType:   &answerType,
		AnswerChoice: &empty,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	// The original value survives the rejected patch.
	rows, err := svc.List(ctx, user.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].AnswerBool)
	assert.True(t, *rows[0].AnswerBool)
}

func TestAnswerServiceUpdateForeignAnswerInvisible(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	ctx := context.Background()

	owner := deps.seedUser(t, "owner@example.com")
	stranger := deps.seedUser(t, "stranger@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	created, err := svc.Submit(ctx, owner.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	// Another user patching the row gets a plain not-found, not a 403.
	_, err = svc.Update(ctx, stranger.ID, entity.FamilyGeneral, created.ID, &usecase.UpdateAnswerInput{
		IsAllergy: boolPtr(true),
	})
	assert.ErrorIs(t, err, domainerrors.ErrAnswerNotFound)

	// And the owner's row is untouched.
	rows, err := svc.List(ctx, owner.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsAllergy)
}

func TestAnswerServiceListIsolatesUsers(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	ctx := context.Background()

	answering := deps.seedUser(t, "answering@example.com")
	empty := deps.seedUser(t, "empty@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	_, err := svc.Submit(ctx, answering.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	rows, err := svc.List(ctx, empty.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAnswerServiceListYesterday(t *testing.T) {
	deps := newTestDeps(t)
	today := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	svc := newTestAnswerService(deps, today)
	ctx := context.Background()

	user := deps.seedUser(t, "yesterday@example.com")
	question := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	// Submit one answer yesterday and one today.
	svc.now = func() time.Time { return today.AddDate(0, 0, -1) }
	yesterdayOut, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, true))
	require.NoError(t, err)

	svc.now = func() time.Time { return today }
	_, err = svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(question.ID, false))
	require.NoError(t, err)

	rows, err := svc.ListYesterday(ctx, user.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, yesterdayOut.ID, rows[0].ID)
	assert.Equal(t, "2024-03-14", rows[0].AnsweredOn)
}

func TestAnswerServiceListWeek(t *testing.T) {
	deps := newTestDeps(t)
	today := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	svc := newTestAnswerService(deps, today)
	ctx := context.Background()

	user := deps.seedUser(t, "week@example.com")
	mealQ := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)
	exerciseQ := deps.seedQuestion(t, entity.FamilyGeneral, entity.CategoryExercise, entity.AnswerKindBoolean)

	// Inside the window.
	svc.now = func() time.Time { return today.AddDate(0, 0, -3) }
	inWindow, err := svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(mealQ.ID, true))
	require.NoError(t, err)

	// Wrong category, inside the window.
	_, err = svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(exerciseQ.ID, true))
	require.NoError(t, err)

	// Right category, outside the window.
	svc.now = func() time.Time { return today.AddDate(0, 0, -10) }
	_, err = svc.Submit(ctx, user.ID, entity.FamilyGeneral, submitBool(mealQ.ID, true))
	require.NoError(t, err)

	svc.now = func() time.Time { return today }
	rows, err := svc.ListWeek(ctx, user.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, inWindow.ID, rows[0].ID)
}

func TestAnswerServiceDelete(t *testing.T) {
	deps := newTestDeps(t)
	svc := newTestAnswerService(deps, time.Now())
	ctx := context.Background()

	user := deps.seedUser(t, "delete@example.com")
	stranger := deps.seedUser(t, "del-stranger@example.com")
	question := deps.seedQuestion(t, entity.FamilySleep, entity.CategorySleep, entity.AnswerKindBoolean)

	created, err := svc.Submit(ctx, user.ID, entity.FamilySleep, submitBool(question.ID, true))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, stranger.ID, entity.FamilySleep, created.ID), domainerrors.ErrAnswerNotFound)
	require.NoError(t, svc.Delete(ctx, user.ID, entity.FamilySleep, created.ID))

	rows, err := svc.List(ctx, user.ID, entity.FamilySleep)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
