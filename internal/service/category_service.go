package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugInUse        = errors.New("name or slug already in use")
)

type CategoryService interface {
	List(search string, page, pageSize int) ([]models.Category, int64, error)
	Create(req *dto.CreateCategoryRequest) (*models.Category, error)
	Delete(slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(search, page, pageSize)
}

func (s *categoryService) Create(req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(slug string) error {
	if err := s.categoryRepo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
