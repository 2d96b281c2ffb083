package uploads

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NicholasSynovic/tool-course-scheduling/app/config"
	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/models"
)

func listUploads() ([]*models.Upload, error) {
	return database.ListUploads(config.GetDB())
}

// UploadAPI ingests one schedule workbook and redirects to its reports.
func UploadAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("workbook")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No workbook file in request"})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		return c.Status(400).JSON(fiber.Map{"error": "Only .xlsx workbooks are supported"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read upload"})
	}
	defer file.Close()

	upload, result, err := registry.Ingest(fileHeader.Filename, file)
	if err != nil {
		log.Printf("Ingest of %s failed: %v", fileHeader.Filename, err)
		return c.Status(422).JSON(fiber.Map{"error": "Workbook could not be ingested: " + err.Error()})
	}

	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.JSON(fiber.Map{
			"upload": upload,
			"issues": result.Issues,
		})
	}
	return c.Redirect("/uploads/" + upload.ID + "/reports")
}

func DeleteUploadAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := database.GetUpload(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Upload not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if err := registry.Evict(id); err != nil {
		log.Printf("Evicting upload %s failed: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete upload"})
	}
	return c.Redirect("/uploads")
}

func ListUploadsAPI(c *fiber.Ctx) error {
	uploads, err := listUploads()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"uploads": uploads})
}

func GetUploadAPI(c *fiber.Ctx) error {
	upload, err := database.GetUpload(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Upload not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"upload": upload})
}
