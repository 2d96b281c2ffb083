package main

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/config"
	"github.com/NicholasSynovic/tool-course-scheduling/app/routes/auth"
	"github.com/NicholasSynovic/tool-course-scheduling/app/routes/reports"
	"github.com/NicholasSynovic/tool-course-scheduling/app/routes/uploads"
	"github.com/NicholasSynovic/tool-course-scheduling/app/services"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// API requests always get JSON
	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - Course Lens",
			"CurrentPage": "",
		})
	case 401:
		return c.Redirect("/auth/login")
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - Course Lens",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	// Load configuration and open the application database
	config.Load()
	defer config.GetDB().Close()

	// Upload registry owns the per-upload schedule databases
	registry := services.NewUploadRegistry(
		config.GetDB(),
		config.AppConfig.DataDir,
		config.AppConfig.UploadTTL,
	)
	defer registry.Close()
	registry.StartJanitor(config.AppConfig.JanitorInterval)

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
		BodyLimit:         32 * 1024 * 1024,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/uploads")
	})

	auth.SetupAuthRoutes(app)
	uploads.SetupUploadRoutes(app, registry)
	reports.SetupReportRoutes(app, registry)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	log.Println("Server starting on " + config.AppConfig.HTTPAddr)
	log.Fatal(app.Listen(config.AppConfig.HTTPAddr))
}
