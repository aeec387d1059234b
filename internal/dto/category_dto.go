package dto

// CreateCategoryRequest doubles for genres; both expose name and slug only.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}
