package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noodahq/nooda/config"
	"github.com/noodahq/nooda/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the send/publish journal",
	Long: `List what nooda has sent or published.

Examples:
  nooda journal today
  nooda journal day 2026-08-15`,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List activity from today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listJournal(time.Now().UTC())
	},
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List activity from a specific day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("parse day: %w", err)
		}
		return listJournal(day)
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.Path)
	default:
		return journal.NewSQLite(cfg.Journal.Path)
	}
}

// recordEntry writes one journal entry using the configured backend.
func recordEntry(cfg *config.Config, e journal.Entry) error {
	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	return j.Record(e)
}

func listJournal(day time.Time) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	entries, err := j.List(day)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("no activity on %s\n", day.Format("2006-01-02"))
		return nil
	}

	bold := color.New(color.Bold)
	for _, e := range entries {
		bold.Printf("%s  %-7s  %s\n", e.CreatedAt.Format("15:04:05"), e.Kind, e.Target)
		if e.Title != "" {
			fmt.Printf("          title:  %s\n", e.Title)
		}
		if e.Points > 0 {
			fmt.Printf("          points: %d\n", e.Points)
		}
	}
	return nil
}
