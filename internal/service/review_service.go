package service

import (
	"context"
	"errors"

	"reviewhub/internal/cache"
	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists")
)

type ReviewService interface {
	ListByTitle(titleID int64, page, pageSize int) ([]dto.ReviewResponse, int64, error)
	Get(titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, authorID string, titleID int64, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, review *models.Review, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, review *models.Review) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
	ratingCache *cache.RatingCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	ratingCache *cache.RatingCache,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
		ratingCache: ratingCache,
	}
}

func (s *reviewService) checkTitle(titleID int64) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) ([]dto.ReviewResponse, int64, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return responses, total, nil
}

func (s *reviewService) Get(titleID, reviewID int64) (*models.Review, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create adds a review authored by the requesting user. At most one
// review per (author, title) pair: both a pre-check and the unique
// index enforce it, the index catching concurrent racers.
func (s *reviewService) Create(ctx context.Context, authorID string, titleID int64, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(titleID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		Text:     req.Text,
		TitleID:  titleID,
		AuthorID: authorID,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	s.ratingCache.Invalidate(ctx, titleID)

	// reload with the author preloaded for the response shape
	review, err = s.reviewRepo.GetByID(titleID, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, review *models.Review, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Save(review); err != nil {
		return nil, err
	}

	s.ratingCache.Invalidate(ctx, review.TitleID)
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, review *models.Review) error {
	if err := s.reviewRepo.Delete(review); err != nil {
		return err
	}
	s.ratingCache.Invalidate(ctx, review.TitleID)
	return nil
}
