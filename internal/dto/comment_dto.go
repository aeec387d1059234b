package dto

import (
	"time"

	"reviewhub/internal/models"
)

// CreateCommentRequest carries the single writable comment field; author
// and parent review are set by the controller.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest allows editing the text only.
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

// CommentResponse exposes the author by username.
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  comment.Author.Username,
		PubDate: comment.PubDate,
	}
}
