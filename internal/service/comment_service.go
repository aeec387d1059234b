package service

import (
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	ListByReview(titleID, reviewID int64, page, pageSize int) ([]dto.CommentResponse, int64, error)
	Get(titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(authorID string, titleID, reviewID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(comment *models.Comment, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(comment *models.Comment) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

// checkReview verifies the whole path: the title must exist and the
// review must belong to it.
func (s *commentService) checkReview(titleID, reviewID int64) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) ([]dto.CommentResponse, int64, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.ListByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(authorID string, titleID, reviewID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		ReviewID: reviewID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// reload with the author preloaded for the response shape
	comment, err := s.commentRepo.GetByID(reviewID, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(comment *models.Comment, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(comment *models.Comment) error {
	return s.commentRepo.Delete(comment)
}
