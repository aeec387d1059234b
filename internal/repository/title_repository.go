package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// TitleFilter narrows the title listing; zero values mean "no filter".
// Multiple filters combine with AND.
type TitleFilter struct {
	Name         string
	Year         *int
	CategorySlug string
	GenreSlug    string
}

type TitleRepository interface {
	Create(title *models.Title) error
	Save(title *models.Title) error
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	Delete(title *models.Title) error
	GetByID(id int64) (*models.Title, error)
	List(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

// Save persists scalar fields without touching the genre association;
// genre changes go through ReplaceGenres.
func (r *titleRepository) Save(title *models.Title) error {
	return r.db.Omit("Genres").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(title *models.Title) error {
	return r.db.Select("Genres").Delete(title).Error
}

func (r *titleRepository) GetByID(id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.Model(&models.Title{})
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}

	// Count on its own session so the DISTINCT id select does not leak
	// into the row query below.
	if err := query.Session(&gorm.Session{}).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Distinct("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.name").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}
