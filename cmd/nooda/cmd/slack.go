package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noodahq/nooda/id"
	"github.com/noodahq/nooda/journal"
	"github.com/noodahq/nooda/slack"
)

var slackCmd = &cobra.Command{
	Use:   "slack <channel> <data.csv|message>",
	Short: "Send a chart or message to a Slack channel",
	Long: `Send to Slack. An argument ending in .csv is rendered as a chart and
uploaded; anything else is posted as a plain message. Every send is
recorded in the journal.

Requires a token in NOODA_SLACK_TOKEN or SLACK_TOKEN (or slack.token in
the config file).

Examples:
  nooda slack '#growth' signups.csv --title "Signups"
  nooda slack '#growth' "report is out"`,
	Args: cobra.ExactArgs(2),
	RunE: runSlack,
}

var (
	slackTitle      string
	slackDateColumn string
	slackPercent    int
	slackBackURL    string
)

func init() {
	rootCmd.AddCommand(slackCmd)

	slackCmd.Flags().StringVar(&slackTitle, "title", "", "chart title")
	slackCmd.Flags().StringVar(&slackDateColumn, "date-column", "date", "name of the date column")
	slackCmd.Flags().IntVar(&slackPercent, "percent", -1, "format values as percentages with this many decimals")
	slackCmd.Flags().StringVarP(&slackBackURL, "url", "u", "", "URL to reference the producing notebook")
}

func runSlack(cmd *cobra.Command, args []string) error {
	channel, payload := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backURL := slackBackURL
	if backURL == "" {
		backURL = cfg.Slack.BackURL
	}

	var sender *slack.Sender
	if cfg.Slack.Token != "" {
		sender = slack.New(cfg.Slack.Token, slack.WithBackURL(backURL))
	} else {
		sender, err = slack.NewFromEnv(slack.WithBackURL(backURL))
		if err != nil {
			return err
		}
	}

	entry := journal.Entry{
		ID:        id.New(),
		Kind:      journal.KindSlack,
		Target:    channel,
		Title:     slackTitle,
		CreatedAt: time.Now().UTC(),
	}

	var receipt *slack.Receipt
	if strings.HasSuffix(payload, ".csv") {
		fig, err := renderCSV(payload, slackTitle, slackDateColumn, slackPercent)
		if err != nil {
			return err
		}
		for _, panel := range fig.Panels() {
			for _, n := range panel.Points {
				entry.Points += n
			}
		}
		receipt, err = sender.Send(cmd.Context(), channel, fig)
		if err != nil {
			return err
		}
	} else {
		receipt, err = sender.Send(cmd.Context(), channel, payload)
		if err != nil {
			return err
		}
	}

	if err := recordEntry(cfg, entry); err != nil {
		return err
	}

	color.Green("sent to %s (ts %s)", receipt.Channel, receipt.Timestamp)
	if receipt.BackURL != "" {
		fmt.Printf("  back url: %s\n", receipt.BackURL)
	}
	return nil
}
