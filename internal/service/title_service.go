package service

import (
	"context"
	"errors"

	"reviewhub/internal/cache"
	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validator"

	"gorm.io/gorm"
)

var ErrTitleNotFound = errors.New("title not found")

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]dto.TitleResponse, int64, error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req *dto.CreateTitleRequest) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
	ratingCache  *cache.RatingCache
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
	ratingCache *cache.RatingCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
		ratingCache:  ratingCache,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]dto.TitleResponse, int64, error) {
	titles, total, err := s.titleRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		rating, err := s.rating(ctx, titles[i].ID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return responses, total, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	rating, err := s.rating(ctx, title.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, rating), nil
}

func (s *titleService) Create(ctx context.Context, req *dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	if err := validator.ValidateYear(*req.Year); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
		Genres:      genres,
	}

	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title, 0), nil
}

func (s *titleService) Update(ctx context.Context, id int64, req *dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validator.ValidateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Save(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	rating, err := s.rating(ctx, title.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, rating), nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	// reviews and their comments go with the title via FK cascade
	if err := s.titleRepo.Delete(title); err != nil {
		return err
	}
	s.ratingCache.Invalidate(ctx, id)
	return nil
}

func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// resolveGenres validates and resolves slug references. Repeated slugs
// count once so the length comparison only catches unknown ones.
func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	seen := make(map[string]struct{}, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if err := validator.ValidateGenre(slug); err != nil {
			return nil, err
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.FindBySlugs(unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

// rating reads the computed average from the cache, falling back to the
// review aggregate on a miss.
func (s *titleService) rating(ctx context.Context, titleID int64) (float64, error) {
	if rating, ok := s.ratingCache.Get(ctx, titleID); ok {
		return rating, nil
	}

	rating, err := s.reviewRepo.AverageScore(titleID)
	if err != nil {
		return 0, err
	}
	s.ratingCache.Set(ctx, titleID, rating)
	return rating, nil
}
