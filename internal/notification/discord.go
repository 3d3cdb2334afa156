package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/shotsort/internal/domain"
)

// DiscordService implements NotificationService for Discord webhooks
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	httpClient *http.Client
}

// NewDiscordService creates a new Discord notification service
func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

const (
	colorSuccess = 0x00ff00
	colorFailure = 0xff0000

	// Discord rejects embeds whose description exceeds 4096 characters.
	maxDescription = 4096
)

// SendSuccess sends a success notification with statistics
func (s *DiscordService) SendSuccess(ctx context.Context, stats domain.Statistics) error {
	if s.webhookURL == "" {
		return nil
	}

	return s.sendEmbed(ctx, discordEmbed{
		Title:       "shotsort Run Completed",
		Description: fmt.Sprintf("Screenshots sorted (%s)", runMode(stats)),
		Color:       colorSuccess,
		Fields: []discordField{
			inlineField("App IDs", strconv.Itoa(stats.Identifiers)),
			inlineField("Names", fmt.Sprintf("%d verified, %d fallback", stats.Verified, stats.Fallback)),
			inlineField("Files Moved", strconv.Itoa(stats.FilesMoved)),
			inlineField("Folders Created", strconv.Itoa(stats.FoldersCreated)),
			inlineField("Cache Entries", strconv.Itoa(stats.CacheEntries)),
		},
	})
}

// SendError sends an error notification with error details
func (s *DiscordService) SendError(ctx context.Context, err error) error {
	if s.webhookURL == "" {
		return nil
	}

	msg := err.Error()
	const frame = "Sorting failed with error:\n``````"
	if limit := maxDescription - len(frame); len(msg) > limit {
		msg = msg[:limit-3] + "..."
	}

	return s.sendEmbed(ctx, discordEmbed{
		Title:       "shotsort Run Failed",
		Description: "Sorting failed with error:\n```" + msg + "```",
		Color:       colorFailure,
	})
}

func runMode(stats domain.Statistics) string {
	switch {
	case stats.JSONOnly:
		return "cache only"
	case stats.Offline:
		return "offline"
	default:
		return "grouped"
	}
}

func inlineField(name, value string) discordField {
	return discordField{Name: name, Value: value, Inline: true}
}

func (s *DiscordService) sendEmbed(ctx context.Context, embed discordEmbed) error {
	embed.Timestamp = time.Now().Format(time.RFC3339)
	return s.sendWebhook(ctx, discordWebhook{
		Username: "shotsort",
		Embeds:   []discordEmbed{embed},
	})
}

// sendWebhook sends a webhook payload to Discord
func (s *DiscordService) sendWebhook(ctx context.Context, payload discordWebhook) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	s.log.Debug().Msg("Discord notification sent successfully")
	return nil
}

// discordWebhook represents a Discord webhook payload
type discordWebhook struct {
	Username string         `json:"username,omitempty"`
	Embeds   []discordEmbed `json:"embeds"`
}

// discordEmbed represents a Discord embed
type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

// discordField represents a Discord embed field
type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

