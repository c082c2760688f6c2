package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Blog represents a blog post in the system. The two title parts carry the
// color-split headline the front end renders; they are accepted as given and
// have no enforced relationship to Title.
type Blog struct {
	ID          string    `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Title       string    `gorm:"type:varchar(500);not null" json:"title"`
	TitlePart1  string    `gorm:"column:title_part1;type:varchar(255);not null" json:"titlePart1"`
	TitlePart2  string    `gorm:"column:title_part2;type:varchar(255);not null" json:"titlePart2"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	ReadTime    string    `gorm:"column:read_time;type:varchar(50);not null" json:"readTime"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"type:varchar(500);not null" json:"image"`
	Color       string    `gorm:"type:varchar(20);not null;check:color IN ('blue','pink','green')" json:"color" validate:"required,oneof=blue pink green"`
	Content     *string   `gorm:"type:text" json:"content"`
	PDFPath     *string   `gorm:"column:pdf_path;type:varchar(500)" json:"pdfPath"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for the Blog model
func (Blog) TableName() string {
	return "blogs"
}

// BlogInput is the request payload for create and update. Updates are full
// replacements: every field is written as provided. Text fields are free
// text and may be empty; only the color enum is validated.
type BlogInput struct {
	Title       string  `json:"title"`
	TitlePart1  string  `json:"titlePart1"`
	TitlePart2  string  `json:"titlePart2"`
	Category    string  `json:"category"`
	ReadTime    string  `json:"readTime"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Color       string  `json:"color" validate:"required,oneof=blue pink green"`
	Content     *string `json:"content"`
	PDFPath     *string `json:"pdfPath"`
}

func (in *BlogInput) Validate() error {
	v := validator.New()
	return v.Struct(in)
}

// Apply copies the input onto a blog record. Empty optional fields are
// stored as NULL, matching the persisted schema.
func (in *BlogInput) Apply(blog *Blog) {
	blog.Title = in.Title
	blog.TitlePart1 = in.TitlePart1
	blog.TitlePart2 = in.TitlePart2
	blog.Category = in.Category
	blog.ReadTime = in.ReadTime
	blog.Description = in.Description
	blog.Image = in.Image
	blog.Color = in.Color
	blog.Content = normalizeOptional(in.Content)
	blog.PDFPath = normalizeOptional(in.PDFPath)
}

func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
