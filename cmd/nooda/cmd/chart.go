package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noodahq/nooda/chart"
	"github.com/noodahq/nooda/frame"
)

var chartCmd = &cobra.Command{
	Use:   "chart <data.csv>",
	Short: "Render a date-indexed CSV as a chart PNG",
	Long: `Render a CSV with a date column and one or more numeric columns as a
line chart. The panels (daily, weekly, monthly) are picked from the
data's span unless the data fits a single daily panel.

Example:
  nooda chart signups.csv -o signups.png --title "Signups" --date-column day`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

var (
	chartOut        string
	chartTitle      string
	chartDateColumn string
	chartPercent    int
)

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "chart.png", "output PNG path")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "chart title")
	chartCmd.Flags().StringVar(&chartDateColumn, "date-column", "date", "name of the date column")
	chartCmd.Flags().IntVar(&chartPercent, "percent", -1, "format values as percentages with this many decimals")
}

// renderCSV is shared by the chart and slack commands.
func renderCSV(path, title, dateColumn string, percent int) (*chart.Figure, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	f, err := frame.LoadCSV(path, dateColumn)
	if err != nil {
		return nil, err
	}

	c := &chart.Chart{
		Title:          title,
		Height:         cfg.Chart.Height,
		WidthIncrement: cfg.Chart.WidthIncrement,
	}
	if percent >= 0 {
		c.Format = chart.Percent(percent)
	}

	return c.Plot(f)
}

func runChart(cmd *cobra.Command, args []string) error {
	fig, err := renderCSV(args[0], chartTitle, chartDateColumn, chartPercent)
	if err != nil {
		return err
	}

	out, err := os.Create(chartOut)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := fig.PNG(out); err != nil {
		return err
	}

	color.Green("wrote %s", chartOut)
	for _, panel := range fig.Panels() {
		for label, n := range panel.Points {
			fmt.Printf("  %s: %s, %d points\n", panel.Kind, label, n)
		}
	}
	return nil
}
