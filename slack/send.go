package slack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/slack-go/slack"
)

// ErrNoToken is returned when no Slack token is configured. Callers in
// notebook flows usually treat this as "skip the send" rather than a
// hard failure.
var ErrNoToken = errors.New("slack token not set")

// PNGer is anything that can write itself as a PNG — a rendered
// chart.Figure satisfies it.
type PNGer interface {
	PNG(w io.Writer) error
}

// Receipt identifies where a send landed so later messages can thread
// off it.
type Receipt struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
	BackURL   string `json:"back_url,omitempty"`
}

// api is the slice of the Slack client Sender uses; a fake stands in for
// it in tests.
type api interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
	GetFileInfoContext(ctx context.Context, fileID string, count, page int) (*slack.File, []slack.Comment, *slack.Paging, error)
}

// Sender posts messages and figures to Slack channels.
type Sender struct {
	client  api
	backURL string

	// pollInterval paces the wait for a file upload's message timestamp,
	// which is eventually consistent on Slack's side.
	pollInterval time.Duration
	pollAttempts int
}

// Option configures a Sender.
type Option func(*Sender)

// WithBackURL attaches a link back to the producing notebook; it rides
// along on every Receipt.
func WithBackURL(url string) Option {
	return func(s *Sender) { s.backURL = url }
}

// New builds a Sender from an API token.
func New(token string, opts ...Option) *Sender {
	return newSender(slack.New(token), opts...)
}

func newSender(client api, opts ...Option) *Sender {
	s := &Sender{
		client:       client,
		pollInterval: 2 * time.Second,
		pollAttempts: 15,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromEnv builds a Sender from NOODA_SLACK_TOKEN, falling back to
// SLACK_TOKEN. Returns ErrNoToken when neither is set.
func NewFromEnv(opts ...Option) (*Sender, error) {
	token := os.Getenv("NOODA_SLACK_TOKEN")
	if token == "" {
		token = os.Getenv("SLACK_TOKEN")
	}
	if token == "" {
		return nil, ErrNoToken
	}
	return New(token, opts...), nil
}

// Send posts v to the channel. Strings post as chat messages; anything
// that renders to PNG uploads as an image. The receipt carries the
// message timestamp, fetched after upload for files since Slack fills
// it in asynchronously.
func (s *Sender) Send(ctx context.Context, channel string, v any) (*Receipt, error) {
	switch val := v.(type) {
	case string:
		return s.sendText(ctx, channel, val)
	case PNGer:
		return s.sendFigure(ctx, channel, val)
	default:
		return nil, fmt.Errorf("unsupported type %T: want string or a PNG-renderable value", v)
	}
}

func (s *Sender) sendText(ctx context.Context, channel, text string) (*Receipt, error) {
	_, ts, err := s.client.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	return &Receipt{Channel: channel, Timestamp: ts, BackURL: s.backURL}, nil
}

func (s *Sender) sendFigure(ctx context.Context, channel string, fig PNGer) (*Receipt, error) {
	var buf bytes.Buffer
	if err := fig.PNG(&buf); err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}

	summary, err := s.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:  channel,
		Filename: "chart.png",
		FileSize: buf.Len(),
		Reader:   &buf,
	})
	if err != nil {
		return nil, fmt.Errorf("upload figure: %w", err)
	}

	ts, err := s.waitForShare(ctx, summary.ID, channel)
	if err != nil {
		return nil, err
	}
	return &Receipt{Channel: channel, Timestamp: ts, BackURL: s.backURL}, nil
}

// waitForShare polls file info until the upload's channel share shows
// up and returns its message timestamp.
func (s *Sender) waitForShare(ctx context.Context, fileID, channel string) (string, error) {
	for attempt := 0; attempt < s.pollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.pollInterval):
			}
		}

		file, _, _, err := s.client.GetFileInfoContext(ctx, fileID, 0, 0)
		if err != nil {
			return "", fmt.Errorf("file info: %w", err)
		}
		if ts := shareTimestamp(file, channel); ts != "" {
			return ts, nil
		}
	}
	return "", fmt.Errorf("file %s never shared to %s", fileID, channel)
}

func shareTimestamp(file *slack.File, channel string) string {
	if shares, ok := file.Shares.Private[channel]; ok && len(shares) > 0 {
		return shares[0].Ts
	}
	if shares, ok := file.Shares.Public[channel]; ok && len(shares) > 0 {
		return shares[0].Ts
	}
	return ""
}
