package repository

import (
	"github.com/amritamcare/amritam-cms/app/models"
	"gorm.io/gorm"
)

// blogRepository implements the BlogRepository interface
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository instance
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts a new blog post
func (r *blogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// GetByID retrieves a blog post by its ID
func (r *blogRepository) GetByID(id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Where("id = ?", id).First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// GetAll retrieves all blog posts, newest first
func (r *blogRepository) GetAll() ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

// Update replaces all mutable fields of an existing blog post
func (r *blogRepository) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// Delete removes a blog post permanently
func (r *blogRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Blog{}).Error
}

// Exists checks whether a blog post with the given ID is present
func (r *blogRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Count returns the total number of blog posts
func (r *blogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Count(&count).Error
	return count, err
}
