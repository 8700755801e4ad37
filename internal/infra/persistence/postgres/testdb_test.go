package postgres

import (
	"context"
	"path/filepath"
	"testing"

	"diary/internal/domain/entity"
	"diary/internal/infra/persistence/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a file-backed sqlite database with the full schema
// migrated. The repositories only issue portable SQL, so the sqlite schema
// exercises the same constraints as postgres, including the daily-uniqueness
// index on answers.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "diary_test.db") +
		"?_busy_timeout=5000&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.QuestionModel{},
		&model.VegetableModel{},
		&model.AnswerModel{},
		&model.RefreshTokenModel{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        email,
		FirstName:    "Test",
		Gender:       entity.GenderOther,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func seedQuestion(t *testing.T, db *gorm.DB, family entity.QuestionFamily, category entity.QuestionCategory, kind entity.AnswerKind) *entity.Question {
	t.Helper()

	question := &entity.Question{
		Family:     family,
		Prompt:     "test prompt",
		Category:   category,
		AnswerKind: kind,
		IsRequired: true,
	}
	require.NoError(t, NewQuestionRepository(db).Create(context.Background(), question))

	return question
}
