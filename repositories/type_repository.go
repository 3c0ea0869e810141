package repositories

import (
	"portfolio-blog-api/models"

	"gorm.io/gorm"
)

type TypeRepository interface {
	Create(t *models.Type) error
	GetByID(id uint) (*models.Type, error)
	GetByName(name string) (*models.Type, error)
	GetAll() ([]models.Type, error)
	Update(t *models.Type) error
	Delete(id uint) error
}

type typeRepository struct {
	db *gorm.DB
}

func NewTypeRepository(db *gorm.DB) TypeRepository {
	return &typeRepository{db: db}
}

func (r *typeRepository) Create(t *models.Type) error {
	return r.db.Create(t).Error
}

func (r *typeRepository) GetByID(id uint) (*models.Type, error) {
	var t models.Type
	err := r.db.First(&t, id).Error
	return &t, err
}

func (r *typeRepository) GetByName(name string) (*models.Type, error) {
	var t models.Type
	err := r.db.Where("name = ?", name).First(&t).Error
	return &t, err
}

func (r *typeRepository) GetAll() ([]models.Type, error) {
	var types []models.Type
	err := r.db.Order("name").Find(&types).Error
	return types, err
}

func (r *typeRepository) Update(t *models.Type) error {
	return r.db.Save(t).Error
}

func (r *typeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Type{}, id).Error
}
