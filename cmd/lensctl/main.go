package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NicholasSynovic/tool-course-scheduling/app/analytics"
	"github.com/NicholasSynovic/tool-course-scheduling/app/database"
	"github.com/NicholasSynovic/tool-course-scheduling/app/schedule"
)

var dataDir string

func main() {
	rootCmd := &cobra.Command{
		Use:   "lensctl",
		Short: "Course schedule analytics toolbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "data directory")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(densityCmd())
	rootCmd.AddCommand(addUserCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func ingestCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "ingest [workbook.xlsx]",
		Short: "Load a schedule workbook into a sqlite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				base := filepath.Base(args[0])
				out = base[:len(base)-len(filepath.Ext(base))] + ".db"
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := database.IngestWorkbook(f, out)
			if err != nil {
				os.Remove(out)
				return err
			}

			fmt.Printf("Ingested %d rows into %s (%d skipped)\n", result.RowCount, out, result.SkippedRows)
			for _, issue := range result.Issues {
				fmt.Printf("  skipped: %s\n", issue)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output database path (default: workbook name with .db)")
	return cmd
}

func densityCmd() *cobra.Command {
	var out string
	var threshold int

	cmd := &cobra.Command{
		Use:   "density [schedule.db]",
		Short: "Render the schedule density chart as a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.OpenScheduleDB(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			meetings, err := database.GetCourseSchedule(db, database.DefaultDepartmentFilters())
			if err != nil {
				return err
			}

			cfg := schedule.DefaultGridConfig()
			if threshold > 0 {
				cfg.OverlapThreshold = threshold
			}

			markers, issues := analytics.ComputeDensity(meetings, cfg)
			for _, issue := range issues {
				fmt.Printf("skipped: %s\n", issue)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := analytics.RenderDensityPage(f, markers, cfg); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d markers)\n", out, len(markers))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "density.html", "output HTML path")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "overlap threshold override")
	return cmd
}

func addUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-user [email] [password] [first-name] [last-name]",
		Short: "Create a web UI user in the application database",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return err
			}

			db, err := database.OpenAppDB(filepath.Join(dataDir, "app.db"))
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}

			user, err := database.CreateUser(db, args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}

			fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
}
