package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *BlogInput {
	return &BlogInput{
		Title:       "Understanding Arrhythmia",
		TitlePart1:  "Understanding",
		TitlePart2:  "Arrhythmia",
		Category:    "Cardiology",
		ReadTime:    "5 min read",
		Description: "A short primer on irregular heartbeats.",
		Image:       "https://example.com/cover.png",
		Color:       "blue",
	}
}

func TestBlogInputValidate_Colors(t *testing.T) {
	t.Parallel()

	for _, color := range []string{"blue", "pink", "green"} {
		in := validInput()
		in.Color = color
		assert.NoError(t, in.Validate(), color)
	}

	for _, color := range []string{"", "red", "BLUE", "teal"} {
		in := validInput()
		in.Color = color
		assert.Error(t, in.Validate(), color)
	}
}

func TestBlogInputValidate_EmptyTextFieldsAccepted(t *testing.T) {
	t.Parallel()

	// Text fields are free text; only the color enum is enforced.
	in := validInput()
	in.TitlePart2 = ""
	in.Description = ""
	assert.NoError(t, in.Validate())
}

func TestBlogInputApply(t *testing.T) {
	t.Parallel()

	empty := ""
	pdf := "https://example.com/source.pdf"

	in := validInput()
	in.Content = &empty
	in.PDFPath = &pdf

	var blog Blog
	blog.ID = "blog-1700000000000-abc123def"
	in.Apply(&blog)

	assert.Equal(t, "blog-1700000000000-abc123def", blog.ID)
	assert.Equal(t, in.Title, blog.Title)
	assert.Equal(t, in.Color, blog.Color)
	// Empty content collapses to NULL so draft posts fall back to the description.
	assert.Nil(t, blog.Content)
	require.NotNil(t, blog.PDFPath)
	assert.Equal(t, pdf, *blog.PDFPath)
}
