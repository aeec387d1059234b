package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validator"

	"gorm.io/gorm"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreService interface {
	List(search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(req *dto.CreateCategoryRequest) (*models.Genre, error)
	Delete(slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(search, page, pageSize)
}

func (s *genreService) Create(req *dto.CreateCategoryRequest) (*models.Genre, error) {
	if err := validator.ValidateGenre(req.Slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(slug string) error {
	if err := s.genreRepo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
