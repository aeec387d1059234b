package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Save(review *models.Review) error
	Delete(review *models.Review) error
	GetByID(titleID, reviewID int64) (*models.Review, error)
	ExistsByTitleAndAuthor(titleID int64, authorID string) (bool, error)
	ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
	AverageScore(titleID int64) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Save(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Delete(review).Error
}

// GetByID scopes the lookup to the parent title so a review id from a
// different title resolves to not-found.
func (r *reviewRepository) GetByID(titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsByTitleAndAuthor(titleID int64, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}

// ListByTitle retrieves a title's reviews newest-first with pagination.
func (r *reviewRepository) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageScore computes the mean review score for a title, 0 when the
// title has no reviews.
func (r *reviewRepository) AverageScore(titleID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(score), 0) as average").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}
