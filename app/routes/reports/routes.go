package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/routes/auth"
	"github.com/NicholasSynovic/tool-course-scheduling/app/services"
)

var registry *services.UploadRegistry

func SetupReportRoutes(app *fiber.App, r *services.UploadRegistry) {
	registry = r

	group := app.Group("/uploads/:id/reports")
	group.Use(auth.AuthMiddleware)
	group.Get("/", ShowReportsIndexPage)
	group.Get("/:name", ShowReportPage)

	api := app.Group("/api/uploads/:id")
	api.Use(auth.AuthMiddleware)
	api.Get("/reports/:name", ReportAPI)
	api.Get("/density", DensityAPI)
}
