package impl

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"diary/config"
	"diary/internal/domain/entity"
	"diary/internal/domain/repository"
	"diary/internal/domain/service"
	"diary/internal/infra/auth"
	"diary/internal/infra/persistence/model"
	"diary/internal/infra/persistence/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4},
	}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	return cfg
}

// testDeps wires the services against a real sqlite-backed persistence
// layer so the daily-uniqueness constraint and the owner scoping behave
// exactly as in production.
type testDeps struct {
	db        *gorm.DB
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	policy    service.PasswordPolicy
	tokenSvc  service.TokenService
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "impl_test.db") +
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

	cfg := newTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &testDeps{
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		hasher:    auth.NewBcryptHasher(cfg),
		policy:    auth.NewPasswordPolicy(cfg),
		tokenSvc:  tokenSvc,
	}
}

func (d *testDeps) seedUser(t *testing.T, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        email,
		FirstName:    "Test",
		Gender:       entity.GenderOther,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, postgres.NewUserRepository(d.db).Create(context.Background(), user))

	return user
}

func (d *testDeps) seedQuestion(t *testing.T, family entity.QuestionFamily, category entity.QuestionCategory, kind entity.AnswerKind) *entity.Question {
	t.Helper()

	question := &entity.Question{
		Family:     family,
		Prompt:     "test prompt",
		Category:   category,
		AnswerKind: kind,
		IsRequired: true,
	}
	require.NoError(t, postgres.NewQuestionRepository(d.db).Create(context.Background(), question))

	return question
}

func (d *testDeps) seedVegetable(t *testing.T, name string) *entity.Vegetable {
	t.Helper()

	vegetable := &entity.Vegetable{Name: name, Color: "green", Variety: "leafy"}
	require.NoError(t, postgres.NewVegetableRepository(d.db).Create(context.Background(), vegetable))

	return vegetable
}
