package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/amritamcare/amritam-cms/app/controllers"
	"github.com/amritamcare/amritam-cms/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Amritam content API",
		})
	})

	api.Post("/admin/login", controllers.HandleAdminLogin)

	adminOnly := middleware.AdminKeyMiddleware()

	blogs := api.Group("/blogs")
	// Register the static paths before the /:id wildcard.
	blogs.Get("/init", controllers.HandleInitSchema)
	blogs.Post("/upload-image", adminOnly, controllers.HandleUploadImageAPI)
	blogs.Post("/docx-to-html", adminOnly, controllers.HandleDocxToHTML)
	blogs.Post("/pdf-to-html", adminOnly, controllers.HandlePDFToHTML)

	blogs.Get("/", controllers.HandleListBlogs)
	blogs.Post("/", adminOnly, controllers.HandleCreateBlog)
	blogs.Get("/:id", controllers.HandleGetBlog)
	blogs.Put("/:id", adminOnly, controllers.HandleUpdateBlog)
	blogs.Delete("/:id", adminOnly, controllers.HandleDeleteBlog)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
