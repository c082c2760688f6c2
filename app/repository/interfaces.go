package repository

import (
	"github.com/amritamcare/amritam-cms/app/models"
	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog-related database operations
type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id string) (*models.Blog, error)
	GetAll() ([]models.Blog, error)
	Update(blog *models.Blog) error
	Delete(id string) error
	Exists(id string) (bool, error)
	Count() (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Blog BlogRepository
}

// NewRepositories creates all repository instances with the given database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Blog: NewBlogRepository(db),
	}
}
