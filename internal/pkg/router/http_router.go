package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amritamcare/amritam-cms/app/controllers"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Initialize controllers with their repositories and clients
	controllers.InitializeBlogController()
	controllers.InitializeUploadController()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
