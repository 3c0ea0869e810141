package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio-blog-api/models"
	"portfolio-blog-api/repositories"
)

type UserService interface {
	CreateUser(req models.CreateUserRequest) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id uint, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(id uint, requesterID uint) error
	// EnsureAdmin creates an admin account when no user with that username
	// exists. Used by boot-time seeding; idempotent.
	EnsureAdmin(username, password string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, models.ErrorValidation{Message: "Role must be admin or editor"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Error creating user", Err: err}
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Password: string(hashed),
		Role:     req.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Username already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error creating user", Err: err}
	}

	return user, nil
}

func (s *userService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Error fetching users", Err: err}
	}
	return users, nil
}

func (s *userService) UpdateUser(id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "User not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching user", Err: err}
	}

	if !req.Role.Valid() {
		return nil, models.ErrorValidation{Message: "Role must be admin or editor"}
	}

	user.Username = strings.TrimSpace(req.Username)
	user.Role = req.Role

	// Password only changes when one was supplied.
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: "Error updating user", Err: err}
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Username already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error updating user", Err: err}
	}

	return user, nil
}

func (s *userService) DeleteUser(id uint, requesterID uint) error {
	if id == requesterID {
		return models.ErrorValidation{Message: "Cannot delete your own account"}
	}

	if _, err := s.userRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "User not found"}
		}
		return models.ErrorInternalServer{Message: "Error fetching user", Err: err}
	}

	if err := s.userRepo.Delete(id); err != nil {
		return models.ErrorInternalServer{Message: "Error deleting user", Err: err}
	}
	return nil
}

func (s *userService) EnsureAdmin(username, password string) error {
	_, err := s.userRepo.GetByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.userRepo.Create(&models.User{
		Username: username,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
