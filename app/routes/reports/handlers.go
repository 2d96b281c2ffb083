package reports

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/analytics"
	"github.com/NicholasSynovic/tool-course-scheduling/app/config"
	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

// reportOptions builds report options from the configured grid plus any
// per-request query overrides.
func reportOptions(c *fiber.Ctx) analytics.Options {
	options := analytics.DefaultOptions()
	options.Grid = config.AppConfig.Grid

	options.Grid.StartHour = c.QueryInt("start_hour", options.Grid.StartHour)
	options.Grid.EndHour = c.QueryInt("end_hour", options.Grid.EndHour)
	options.Grid.StepMinutes = c.QueryInt("step", options.Grid.StepMinutes)
	options.Grid.OverlapThreshold = c.QueryInt("threshold", options.Grid.OverlapThreshold)
	options.Grid = options.Grid.Sanitize()
	options.FilterZeroEnrollment = c.QueryBool("hide_empty", false)

	return options
}

// openUpload resolves the upload record and its schedule database.
func openUpload(c *fiber.Ctx) (*models.Upload, *sql.DB, error) {
	id := c.Params("id")

	upload, err := database.GetUpload(config.GetDB(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Upload not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}

	db, err := registry.Open(id)
	if err != nil {
		log.Printf("Opening schedule database for %s failed: %v", id, err)
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Schedule data for this upload is gone")
	}
	return upload, db, nil
}

func ShowReportsIndexPage(c *fiber.Ctx) error {
	upload, _, err := openUpload(c)
	if err != nil {
		return err
	}

	type reportLink struct {
		Name     string
		Title    string
		Subtitle string
	}

	var links []reportLink
	for _, report := range analytics.Registry() {
		links = append(links, reportLink{
			Name:     report.Name(),
			Title:    report.Title(),
			Subtitle: report.Subtitle(),
		})
	}

	return c.Render("reports/index", fiber.Map{
		"Title":       "Reports - Course Lens",
		"CurrentPage": "reports",
		"user":        c.Locals("user"),
		"Upload":      upload,
		"Reports":     links,
	})
}

func ShowReportPage(c *fiber.Ctx) error {
	upload, db, err := openUpload(c)
	if err != nil {
		return err
	}

	report, ok := analytics.Lookup(c.Params("name"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "No such report")
	}

	result, err := report.Run(db, reportOptions(c))
	if err != nil {
		log.Printf("Report %s on upload %s failed: %v", report.Name(), upload.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Report failed")
	}

	return c.Render("reports/show", fiber.Map{
		"Title":       result.Title + " - Course Lens",
		"CurrentPage": "reports",
		"user":        c.Locals("user"),
		"Upload":      upload,
		"Result":      result,
	})
}
