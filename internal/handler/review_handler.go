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

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) titleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return 0, false
	}
	return id, true
}

func (h *ReviewHandler) reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return 0, false
	}
	return id, true
}

// List retrieves a title's reviews newest-first.
// GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := h.titleID(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c)

	reviews, total, err := h.reviewService.ListByTitle(titleID, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse[dto.ReviewResponse](reviews, int(total), page, pageSize))
}

// Get retrieves one review of a title.
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := h.titleID(c)
	if !ok {
		return
	}
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(titleID, reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// Create adds a review authored by the requester; a second review on the
// same title by the same author fails.
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := h.titleID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	review, err := h.reviewService.Create(c.Request.Context(), user.ID, titleID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update modifies a review; only the author, moderators and admins may.
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := h.titleID(c)
	if !ok {
		return
	}
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Get(titleID, reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !permissions.CanMutateOwned(middleware.CurrentUser(c), review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this review"})
		return
	}

	updated, err := h.reviewService.Update(c.Request.Context(), review, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a review; only the author, moderators and admins may.
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := h.titleID(c)
	if !ok {
		return
	}
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(titleID, reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !permissions.CanMutateOwned(middleware.CurrentUser(c), review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to delete this review"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), review); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
