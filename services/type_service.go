package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"portfolio-blog-api/models"
	"portfolio-blog-api/repositories"
)

type TypeService interface {
	CreateType(req models.CreateTypeRequest) (*models.Type, error)
	GetTypes() ([]models.Type, error)
	GetType(id uint) (*models.Type, error)
	UpdateType(id uint, req models.CreateTypeRequest) (*models.Type, error)
	DeleteType(id uint) error
	// EnsureTypes creates any of the given labels that do not exist yet.
	// Used by boot-time seeding; idempotent.
	EnsureTypes(names []string) error
}

type typeService struct {
	typeRepo repositories.TypeRepository
}

func NewTypeService(typeRepo repositories.TypeRepository) TypeService {
	return &typeService{typeRepo: typeRepo}
}

func (s *typeService) CreateType(req models.CreateTypeRequest) (*models.Type, error) {
	t := &models.Type{Name: strings.TrimSpace(req.Name)}
	if t.Name == "" {
		return nil, models.ErrorValidation{Message: "Type name is required"}
	}

	if err := s.typeRepo.Create(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Type already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error creating type", Err: err}
	}

	return t, nil
}

func (s *typeService) GetTypes() ([]models.Type, error) {
	types, err := s.typeRepo.GetAll()
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Error fetching types", Err: err}
	}
	return types, nil
}

func (s *typeService) GetType(id uint) (*models.Type, error) {
	t, err := s.typeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Type not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching type", Err: err}
	}
	return t, nil
}

func (s *typeService) UpdateType(id uint, req models.CreateTypeRequest) (*models.Type, error) {
	t, err := s.typeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Type not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching type", Err: err}
	}

	t.Name = strings.TrimSpace(req.Name)
	if t.Name == "" {
		return nil, models.ErrorValidation{Message: "Type name is required"}
	}

	if err := s.typeRepo.Update(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Type already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error updating type", Err: err}
	}

	return t, nil
}

func (s *typeService) DeleteType(id uint) error {
	if _, err := s.typeRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "Type not found"}
		}
		return models.ErrorInternalServer{Message: "Error fetching type", Err: err}
	}

	if err := s.typeRepo.Delete(id); err != nil {
		return models.ErrorInternalServer{Message: "Error deleting type", Err: err}
	}
	return nil
}

func (s *typeService) EnsureTypes(names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		_, err := s.typeRepo.GetByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := s.typeRepo.Create(&models.Type{Name: name}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return err
		}
	}
	return nil
}
