package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(genre *models.Genre) error
	FindBySlug(slug string) (*models.Genre, error)
	FindBySlugs(slugs []string) ([]models.Genre, error)
	DeleteBySlug(slug string) error
	List(search string, page, pageSize int) ([]models.Genre, int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *genreRepository) FindBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindBySlugs resolves a batch of slug references. Callers compare the
// result length against the request to detect unknown slugs.
func (r *genreRepository) FindBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) DeleteBySlug(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *genreRepository) List(search string, page, pageSize int) ([]models.Genre, int64, error) {
	var genres []models.Genre
	var total int64

	query := r.db.Model(&models.Genre{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("slug").Limit(pageSize).Offset(offset).Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}
