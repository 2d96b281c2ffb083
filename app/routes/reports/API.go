package reports

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/analytics"
	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

// ReportAPI returns one report result as JSON. Chart HTML is page furniture
// and stays out of the payload; the density endpoint serves raw markers.
func ReportAPI(c *fiber.Ctx) error {
	upload, db, err := openUpload(c)
	if err != nil {
		return err
	}

	report, ok := analytics.Lookup(c.Params("name"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "No such report"})
	}

	result, err := report.Run(db, reportOptions(c))
	if err != nil {
		log.Printf("Report %s on upload %s failed: %v", report.Name(), upload.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Report failed"})
	}

	return c.JSON(fiber.Map{
		"upload": upload,
		"result": result,
	})
}

// DensityAPI returns the raw density grid: every classified marker plus the
// axis metadata a client needs to draw it.
func DensityAPI(c *fiber.Ctx) error {
	upload, db, err := openUpload(c)
	if err != nil {
		return err
	}

	options := reportOptions(c)

	meetings, err := database.GetCourseSchedule(db, options.Filters)
	if err != nil {
		log.Printf("Density query on upload %s failed: %v", upload.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	markers, issues := analytics.ComputeDensity(meetings, options.Grid)
	ticks, labels := options.Grid.HourTicks()

	skipped := make([]string, 0, len(issues))
	for _, issue := range issues {
		skipped = append(skipped, issue.String())
	}

	return c.JSON(fiber.Map{
		"upload":  upload,
		"markers": markers,
		"axes": fiber.Map{
			"days":        schedule.Days,
			"hour_ticks":  ticks,
			"hour_labels": labels,
			"timeslots":   options.Grid.Timeslots(),
		},
		"threshold": options.Grid.OverlapThreshold,
		"skipped":   skipped,
	})
}
