package uploads

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/routes/auth"
	"github.com/NicholasSynovic/tool-course-scheduling/app/services"
)

var registry *services.UploadRegistry

func SetupUploadRoutes(app *fiber.App, r *services.UploadRegistry) {
	registry = r

	group := app.Group("/uploads")
	group.Use(auth.AuthMiddleware)
	group.Get("/", ShowUploadsPage)
	group.Post("/", UploadAPI)
	group.Post("/:id/delete", DeleteUploadAPI)

	api := app.Group("/api/uploads")
	api.Use(auth.AuthMiddleware)
	api.Get("/", ListUploadsAPI)
	api.Get("/:id", GetUploadAPI)
}

func ShowUploadsPage(c *fiber.Ctx) error {
	uploads, err := listUploads()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list uploads")
	}

	return c.Render("uploads/index", fiber.Map{
		"Title":       "Uploads - Course Lens",
		"CurrentPage": "uploads",
		"user":        c.Locals("user"),
		"Uploads":     uploads,
	})
}
