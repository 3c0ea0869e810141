package services

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"portfolio-blog-api/models"
	"portfolio-blog-api/repositories"
)

type TagService interface {
	// ResolveTags turns tag tokens (ids or names) into tag records, in input
	// order with duplicates preserved. With createMissing, unknown names are
	// created; without it they are dropped.
	ResolveTags(tokens []string, createMissing bool) ([]models.Tag, error)
	CreateTag(req models.CreateTagRequest) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
	UpdateTag(id uint, req models.CreateTagRequest) (*models.Tag, error)
	DeleteTag(id uint) error
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ResolveTags(tokens []string, createMissing bool) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if id, parseErr := strconv.ParseUint(token, 10, 32); parseErr == nil {
			tag, err := s.tagRepo.GetByID(uint(id))
			if err == nil {
				tags = append(tags, *tag)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorInternalServer{Message: "Error resolving tags", Err: err}
			}
			// No tag with that id; treat the token as a name below.
		}

		tag, err := s.lookupOrCreate(token, createMissing)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			tags = append(tags, *tag)
		}
	}

	return tags, nil
}

func (s *tagService) lookupOrCreate(name string, createMissing bool) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByName(name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorInternalServer{Message: "Error resolving tags", Err: err}
	}
	if !createMissing {
		return nil, nil
	}

	newTag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(newTag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the create race; fetch what the winner wrote.
			existing, lookupErr := s.tagRepo.GetByName(name)
			if lookupErr == nil {
				return existing, nil
			}
			return nil, models.ErrorConflict{Message: "Tag already exists: " + name}
		}
		return nil, models.ErrorInternalServer{Message: "Error creating tag", Err: err}
	}

	return newTag, nil
}

func (s *tagService) CreateTag(req models.CreateTagRequest) (*models.Tag, error) {
	tag := &models.Tag{Name: strings.TrimSpace(req.Name)}
	if tag.Name == "" {
		return nil, models.ErrorValidation{Message: "Tag name is required"}
	}

	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Tag already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error creating tag", Err: err}
	}

	return tag, nil
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.GetAll()
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Error fetching tags", Err: err}
	}
	return tags, nil
}

func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Tag not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching tag", Err: err}
	}
	return tag, nil
}

func (s *tagService) UpdateTag(id uint, req models.CreateTagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Tag not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching tag", Err: err}
	}

	tag.Name = strings.TrimSpace(req.Name)
	if tag.Name == "" {
		return nil, models.ErrorValidation{Message: "Tag name is required"}
	}

	if err := s.tagRepo.Update(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Tag already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error updating tag", Err: err}
	}

	return tag, nil
}

func (s *tagService) DeleteTag(id uint) error {
	if _, err := s.tagRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "Tag not found"}
		}
		return models.ErrorInternalServer{Message: "Error fetching tag", Err: err}
	}

	if err := s.tagRepo.Delete(id); err != nil {
		return models.ErrorInternalServer{Message: "Error deleting tag", Err: err}
	}
	return nil
}
