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

// vegetableRepository implements the repository.VegetableRepository interface.
type vegetableRepository struct {
	db *gorm.DB
}

// NewVegetableRepository is the constructor for vegetableRepository.
func NewVegetableRepository(db *gorm.DB) repository.VegetableRepository {
	return &vegetableRepository{db: db}
}

// List retrieves every vegetable row, alphabetically by name.
func (repo *vegetableRepository) List(ctx context.Context) ([]*entity.Vegetable, error) {
	var vegetableModels []*model.VegetableModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&vegetableModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vegetables")
	}

	vegetables := make([]*entity.Vegetable, 0, len(vegetableModels))
	for _, vegetableM := range vegetableModels {
		vegetables = append(vegetables, toVegetableDomain(vegetableM))
	}

	return vegetables, nil
}

// FindByID retrieves a single vegetable by its id.
func (repo *vegetableRepository) FindByID(ctx context.Context, id uint) (*entity.Vegetable, error) {
	var vegetableM model.VegetableModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vegetableM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVegetableNotFound
		}

		return nil, errors.Wrap(err, "failed to find vegetable by id")
	}

	return toVegetableDomain(&vegetableM), nil
}

// Create persists a new vegetable row.
func (repo *vegetableRepository) Create(ctx context.Context, vegetable *entity.Vegetable) error {
	vegetableM := fromVegetableDomain(vegetable)

	if err := repo.db.WithContext(ctx).Create(vegetableM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create vegetable")
	}

	vegetable.ID = vegetableM.ID

	return nil
}

// --- Mapper Functions ---

// toVegetableDomain converts a GORM VegetableModel to a domain Vegetable entity.
func toVegetableDomain(data *model.VegetableModel) *entity.Vegetable {
	if data == nil {
		return nil
	}

	return &entity.Vegetable{
		ID:      data.ID,
		Name:    data.Name,
		Color:   data.Color,
		Variety: data.Variety,
	}
}

// fromVegetableDomain converts a domain Vegetable entity to a GORM VegetableModel.
func fromVegetableDomain(data *entity.Vegetable) *model.VegetableModel {
	if data == nil {
		return nil
	}

	return &model.VegetableModel{
		ID:      data.ID,
		Name:    data.Name,
		Color:   data.Color,
		Variety: data.Variety,
	}
}
