package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validator"

	"gorm.io/gorm"
)

var ErrUserExists = errors.New("username or email already in use")

type UserService interface {
	List(search string, limit, offset int) ([]models.User, int64, error)
	Create(req *dto.CreateUserRequest) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UpdateByUsername(username string, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteByUsername(username string) error
	UpdateSelf(userID string, req *dto.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(search string, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.List(search, limit, offset)
}

func (s *userService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	if err := validator.ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateByUsername(username string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.apply(user, req, true)
}

func (s *userService) DeleteByUsername(username string) error {
	user, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(user)
}

// UpdateSelf handles the "me" endpoint: a partial update that keeps the
// caller's existing role no matter what the payload says.
func (s *userService) UpdateSelf(userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.apply(user, req, false)
}

func (s *userService) apply(user *models.User, req *dto.UpdateUserRequest, allowRole bool) (*models.User, error) {
	if req.Username != nil {
		if err := validator.ValidateUsername(*req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRole {
		user.Role = *req.Role
	}

	if err := s.userRepo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}
