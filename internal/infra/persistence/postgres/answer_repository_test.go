package postgres

import (
	"context"
	"testing"

	"diary/internal/domain/entity"
	"diary/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnswer(user *entity.User, question *entity.Question, day entity.Day, value entity.AnswerValue) *entity.Answer {
	questionID := question.ID

	return &entity.Answer{
		UserID:     user.ID,
		Family:     question.Family,
		QuestionID: &questionID,
		Value:      value,
		AnsweredOn: day,
	}
}

func TestAnswerRepositoryDailyUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "daily@example.com")
	question := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)

	first := newAnswer(user, question, "2024-03-15", entity.BoolValue(true))
	require.NoError(t, repo.Create(ctx, first))
	require.NotZero(t, first.ID)

	// Same user, question and day again must hit the unique index.
	duplicate := newAnswer(user, question, "2024-03-15", entity.BoolValue(false))
	err := repo.Create(ctx, duplicate)
	assert.ErrorIs(t, err, repository.ErrDuplicateAnswer)

	// Next day is a fresh slot.
	nextDay := newAnswer(user, question, "2024-03-16", entity.BoolValue(false))
	assert.NoError(t, repo.Create(ctx, nextDay))

	// Another user answering the same question on the same day is fine too.
	other := seedUser(t, db, "other@example.com")
	otherAnswer := newAnswer(other, question, "2024-03-15", entity.BoolValue(true))
	assert.NoError(t, repo.Create(ctx, otherAnswer))
}

func TestAnswerRepositoryUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "fk@example.com")

	missingQuestion := uint(9999)
	answer := &entity.Answer{
		UserID:     user.ID,
		Family:     entity.FamilyGeneral,
		QuestionID: &missingQuestion,
		Value:      entity.BoolValue(true),
		AnsweredOn: "2024-03-15",
	}

	err := repo.Create(ctx, answer)
	assert.ErrorIs(t, err, repository.ErrQuestionNotFound)
}

func TestAnswerRepositoryOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	question := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindInteger)

	answer := newAnswer(owner, question, "2024-03-15", entity.IntValue(3))
	require.NoError(t, repo.Create(ctx, answer))

	// The owner sees the row.
	found, err := repo.FindByID(ctx, owner.ID, entity.FamilyGeneral, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), found.Value.Int)

	// Anyone else gets not-found, never a permission error.
	_, err = repo.FindByID(ctx, stranger.ID, entity.FamilyGeneral, answer.ID)
	assert.ErrorIs(t, err, repository.ErrAnswerNotFound)

	// Listing is scoped the same way.
	rows, err := repo.ListByUser(ctx, stranger.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.ListByUser(ctx, owner.ID, entity.FamilyGeneral)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// A foreign update attempt touches zero rows.
	foreign := *answer
	foreign.UserID = stranger.ID
	foreign.Value = entity.IntValue(99)
	assert.ErrorIs(t, repo.Update(ctx, &foreign), repository.ErrAnswerNotFound)

	// The row is unchanged.
	found, err = repo.FindByID(ctx, owner.ID, entity.FamilyGeneral, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), found.Value.Int)

	// Same for delete.
	assert.ErrorIs(t, repo.Delete(ctx, stranger.ID, entity.FamilyGeneral, answer.ID), repository.ErrAnswerNotFound)
	assert.NoError(t, repo.Delete(ctx, owner.ID, entity.FamilyGeneral, answer.ID))
}

func TestAnswerRepositoryFamilyScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "family@example.com")
	mealQuestion := seedQuestion(t, db, entity.FamilyMeal, entity.CategoryMeal, entity.AnswerKindBoolean)
	sleepQuestion := seedQuestion(t, db, entity.FamilySleep, entity.CategorySleep, entity.AnswerKindBoolean)

	require.NoError(t, repo.Create(ctx, newAnswer(user, mealQuestion, "2024-03-15", entity.BoolValue(true))))
	require.NoError(t, repo.Create(ctx, newAnswer(user, sleepQuestion, "2024-03-15", entity.BoolValue(false))))

	mealRows, err := repo.ListByUser(ctx, user.ID, entity.FamilyMeal)
	require.NoError(t, err)
	require.Len(t, mealRows, 1)
	assert.Equal(t, entity.FamilyMeal, mealRows[0].Family)

	sleepRows, err := repo.ListByUser(ctx, user.ID, entity.FamilySleep)
	require.NoError(t, err)
	require.Len(t, sleepRows, 1)
	assert.Equal(t, entity.FamilySleep, sleepRows[0].Family)
}

func TestAnswerRepositoryListByDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "byday@example.com")
	q1 := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)
	q2 := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryExercise, entity.AnswerKindBoolean)

	require.NoError(t, repo.Create(ctx, newAnswer(user, q1, "2024-03-14", entity.BoolValue(true))))
	require.NoError(t, repo.Create(ctx, newAnswer(user, q2, "2024-03-14", entity.BoolValue(true))))
	require.NoError(t, repo.Create(ctx, newAnswer(user, q1, "2024-03-15", entity.BoolValue(true))))

	rows, err := repo.ListByDay(ctx, user.ID, entity.FamilyGeneral, "2024-03-14")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.ListByDay(ctx, user.ID, entity.FamilyGeneral, "2024-03-13")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAnswerRepositoryListByRangeAndCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "range@example.com")
	mealQ := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindBoolean)
	exerciseQ := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryExercise, entity.AnswerKindBoolean)

	require.NoError(t, repo.Create(ctx, newAnswer(user, mealQ, "2024-03-10", entity.BoolValue(true))))
	require.NoError(t, repo.Create(ctx, newAnswer(user, mealQ, "2024-03-15", entity.BoolValue(true))))
	require.NoError(t, repo.Create(ctx, newAnswer(user, mealQ, "2024-03-01", entity.BoolValue(true)))) // before window
	require.NoError(t, repo.Create(ctx, newAnswer(user, exerciseQ, "2024-03-12", entity.BoolValue(true))))

	rows, err := repo.ListByRangeAndCategory(ctx, user.ID, entity.FamilyGeneral, "2024-03-08", "2024-03-15", entity.CategoryMeal)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Newest id first.
	assert.Equal(t, entity.Day("2024-03-15"), rows[0].AnsweredOn)
	assert.Equal(t, entity.Day("2024-03-10"), rows[1].AnsweredOn)
}

func TestAnswerRepositoryUpdatePayloadOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "patch@example.com")
	question := seedQuestion(t, db, entity.FamilyGeneral, entity.CategoryMeal, entity.AnswerKindChoice)

	answer := newAnswer(user, question, "2024-03-15", entity.ChoiceValue("sometimes"))
	answer.IsAllergy = false
	require.NoError(t, repo.Create(ctx, answer))

	answer.Value = entity.ChoiceValue("always")
	answer.IsAllergy = true
	require.NoError(t, repo.Update(ctx, answer))

	found, err := repo.FindByID(ctx, user.ID, entity.FamilyGeneral, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, "always", found.Value.Choice)
	assert.True(t, found.IsAllergy)
	assert.Equal(t, entity.Day("2024-03-15"), found.AnsweredOn)
	require.NotNil(t, found.QuestionID)
	assert.Equal(t, question.ID, *found.QuestionID)

	// Switching the value kind clears the stale sibling column.
	answer.Value = entity.IntValue(4)
	require.NoError(t, repo.Update(ctx, answer))

	found, err = repo.FindByID(ctx, user.ID, entity.FamilyGeneral, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AnswerKindInteger, found.Value.Kind)
	assert.Equal(t, int64(4), found.Value.Int)
	assert.Empty(t, found.Value.Choice)
}
