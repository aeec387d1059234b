package dto

import "reviewhub/internal/models"

// CreateTitleRequest is the write shape: category and genre arrive as
// slug references and are resolved against existing records. Year is a
// pointer so the presence check does not reject year 0.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre" binding:"required,min=1"`
}

// UpdateTitleRequest is a partial write; nil fields are left untouched.
type UpdateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleResponse is the read shape: category and genres expanded to
// nested objects, rating computed from review scores.
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      float64          `json:"rating"`
	Description *string          `json:"description"`
	Category    *models.Category `json:"category"`
	Genre       []models.Genre   `json:"genre"`
}

// FromModelToTitleResponse converts a Title model plus its computed
// rating into the read shape.
func FromModelToTitleResponse(title *models.Title, rating float64) *TitleResponse {
	genres := title.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Category:    title.Category,
		Genre:       genres,
	}
}
