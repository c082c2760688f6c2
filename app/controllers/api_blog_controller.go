package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/amritamcare/amritam-cms/app/models"
	"github.com/amritamcare/amritam-cms/app/repository"
	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
	"github.com/amritamcare/amritam-cms/internal/pkg/database"
	"github.com/amritamcare/amritam-cms/internal/pkg/postid"
)

// BlogController handles the blog CRUD surface using the repository pattern
type BlogController struct {
	blogRepo repository.BlogRepository
}

// NewBlogController creates a new blog controller with repository
func NewBlogController(blogRepo repository.BlogRepository) *BlogController {
	return &BlogController{blogRepo: blogRepo}
}

var blogController *BlogController

// InitializeBlogController wires the global blog controller
func InitializeBlogController() {
	blogController = NewBlogController(repository.GetGlobalFactory().GetBlogRepository())
}

// GetBlogController returns the global blog controller instance
func GetBlogController() *BlogController {
	if blogController == nil {
		panic("Blog controller not initialized. Call InitializeBlogController first.")
	}
	return blogController
}

// HandleList returns all blog posts, newest first.
func (bc *BlogController) HandleList(c *fiber.Ctx) error {
	blogs, err := bc.blogRepo.GetAll()
	if err != nil {
		fiberlog.Errorf("failed to fetch blogs: %v", err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to fetch blogs", err))
	}
	if blogs == nil {
		// An empty store is an empty list, not an error.
		blogs = []models.Blog{}
	}
	return c.JSON(blogs)
}

// HandleGet returns a single blog post by ID.
func (bc *BlogController) HandleGet(c *fiber.Ctx) error {
	blog, err := bc.blogRepo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Respond(c, apierror.NotFound("Blog not found"))
		}
		fiberlog.Errorf("failed to fetch blog %s: %v", c.Params("id"), err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to fetch blog", err))
	}
	return c.JSON(blog)
}

// HandleCreate mints a fresh ID and inserts a new blog post.
func (bc *BlogController) HandleCreate(c *fiber.Ctx) error {
	input, err := parseBlogInput(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	id, err := postid.New()
	if err != nil {
		fiberlog.Errorf("failed to mint blog id: %v", err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to create blog", err))
	}

	blog := &models.Blog{ID: id}
	input.Apply(blog)

	if err := bc.blogRepo.Create(blog); err != nil {
		fiberlog.Errorf("failed to create blog: %v", err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to create blog", err))
	}
	return c.Status(fiber.StatusCreated).JSON(blog)
}

// HandleUpdate replaces all mutable fields of an existing post. Updates are
// full replacements; the existence check and the write are two statements
// (known TOCTOU gap, last write wins under contention).
func (bc *BlogController) HandleUpdate(c *fiber.Ctx) error {
	blog, err := bc.blogRepo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Respond(c, apierror.NotFound("Blog not found"))
		}
		fiberlog.Errorf("failed to load blog %s for update: %v", c.Params("id"), err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to update blog", err))
	}

	input, err := parseBlogInput(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	input.Apply(blog)
	if err := bc.blogRepo.Update(blog); err != nil {
		fiberlog.Errorf("failed to update blog %s: %v", blog.ID, err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to update blog", err))
	}
	return c.JSON(blog)
}

// HandleDelete removes a post permanently. A second delete of the same ID
// reports not-found, which callers treat as "already gone".
func (bc *BlogController) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	exists, err := bc.blogRepo.Exists(id)
	if err != nil {
		fiberlog.Errorf("failed to check blog %s: %v", id, err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to delete blog", err))
	}
	if !exists {
		return apierror.Respond(c, apierror.NotFound("Blog not found"))
	}

	if err := bc.blogRepo.Delete(id); err != nil {
		fiberlog.Errorf("failed to delete blog %s: %v", id, err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to delete blog", err))
	}
	return c.JSON(fiber.Map{"success": true})
}

func parseBlogInput(c *fiber.Ctx) (*models.BlogInput, error) {
	var input models.BlogInput
	if err := c.BodyParser(&input); err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "Invalid request body", err)
	}
	if err := input.Validate(); err != nil {
		return nil, &apierror.Error{
			Kind:    apierror.KindValidation,
			Message: "Color must be one of: blue, pink, green",
			Err:     err,
		}
	}
	return &input, nil
}

// HandleInitSchema bootstraps the blogs table on a fresh database.
func HandleInitSchema(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return apierror.Respond(c, apierror.New(apierror.KindUpstream, "Database unavailable"))
	}
	if err := database.InitSchema(db); err != nil {
		fiberlog.Errorf("failed to initialize schema: %v", err)
		return apierror.Respond(c, apierror.Wrap(apierror.KindUpstream, "Failed to initialize database", err))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Database schema initialized successfully",
	})
}

// Package-level adapters used by the router.

func HandleListBlogs(c *fiber.Ctx) error   { return GetBlogController().HandleList(c) }
func HandleGetBlog(c *fiber.Ctx) error     { return GetBlogController().HandleGet(c) }
func HandleCreateBlog(c *fiber.Ctx) error  { return GetBlogController().HandleCreate(c) }
func HandleUpdateBlog(c *fiber.Ctx) error  { return GetBlogController().HandleUpdate(c) }
func HandleDeleteBlog(c *fiber.Ctx) error  { return GetBlogController().HandleDelete(c) }
