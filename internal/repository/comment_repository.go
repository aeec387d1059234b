package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Save(comment *models.Comment) error
	Delete(comment *models.Comment) error
	GetByID(reviewID, commentID int64) (*models.Comment, error)
	ListByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Save(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}

func (r *commentRepository) GetByID(reviewID, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("review_id = ?", reviewID).
		Preload("Author").
		First(&comment, commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByReview retrieves a review's comments newest-first with pagination.
func (r *commentRepository) ListByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.Model(&models.Comment{}).Where("review_id = ?", reviewID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("review_id = ?", reviewID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
