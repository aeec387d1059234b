package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/permissions"
	"reviewhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// pathIDs parses the title/review path segments shared by every route.
func (h *CommentHandler) pathIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return 0, 0, false
	}
	reviewID, err = strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return 0, false
	}
	return id, true
}

// List retrieves a review's comments newest-first.
// GET /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c)

	comments, total, err := h.commentService.ListByReview(titleID, reviewID, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse[dto.CommentResponse](comments, int(total), page, pageSize))
}

// Get retrieves one comment of a review.
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.commentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

// Create adds a comment authored by the requester.
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := h.commentService.Create(user.ID, titleID, reviewID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update modifies a comment; only the author, moderators and admins may.
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.commentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Get(titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !permissions.CanMutateOwned(middleware.CurrentUser(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this comment"})
		return
	}

	updated, err := h.commentService.Update(comment, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a comment; only the author, moderators and admins may.
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.commentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !permissions.CanMutateOwned(middleware.CurrentUser(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to delete this comment"})
		return
	}

	if err := h.commentService.Delete(comment); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
