package cmd

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noodahq/nooda/id"
	"github.com/noodahq/nooda/journal"
	"github.com/noodahq/nooda/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish <notebook.ipynb|->",
	Short: "Publish a Jupyter notebook as a standalone HTML report",
	Long: `Render a notebook (nbformat 4) to a single HTML page: markdown cells
and rich outputs become sections, headers get numbered self-links, and
a cell tagged "toc" turns into a table of contents.

Pass - to read the notebook from stdin. HTML goes to stdout unless -o
is given.

Examples:
  nooda publish weekly.ipynb -o weekly.html
  jupyter nbconvert --to notebook --execute weekly.ipynb --stdout | nooda publish -`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

var publishOut string

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVarP(&publishOut, "out", "o", "", "output HTML path (default stdout)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if publishOut != "" {
		f, err := os.Create(publishOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := publish.Publish(in, out); err != nil {
		return err
	}

	// Journal only named outputs; stdout runs are usually pipelines.
	if publishOut != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		entry := journal.Entry{
			ID:        id.New(),
			Kind:      journal.KindPublish,
			Target:    publishOut,
			Title:     args[0],
			CreatedAt: time.Now().UTC(),
		}
		if err := recordEntry(cfg, entry); err != nil {
			return err
		}
		color.Green("wrote %s", publishOut)
	}
	return nil
}
