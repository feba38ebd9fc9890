// Package slack posts staff notifications to an incoming webhook.
package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	slackapi "github.com/slack-go/slack"

	"garage/internal/shared/config"
)

const maxRetries = 2

// Field is a short key/value line rendered inside the attachment.
type Field struct {
	Name  string
	Value string
}

// Notice is one message for the staff channel.
type Notice struct {
	Text   string
	Title  string
	Color  string
	Fields []Field
}

type WebhookNotifier struct {
	url        string
	channel    string
	httpClient *http.Client
}

func NewWebhookNotifier(cfg config.SlackConfig) *WebhookNotifier {
	return &WebhookNotifier{
		url:        cfg.WebhookURL,
		channel:    cfg.Channel,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, notice Notice) error {
	msg := buildWebhookMessage(n.channel, notice)
	err := retryOnRateLimit(ctx, func() error {
		return slackapi.PostWebhookCustomHTTPContext(ctx, n.url, n.httpClient, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}

func buildWebhookMessage(channel string, notice Notice) *slackapi.WebhookMessage {
	msg := &slackapi.WebhookMessage{
		Channel: channel,
		Text:    notice.Text,
	}
	if notice.Title == "" && len(notice.Fields) == 0 {
		return msg
	}

	att := slackapi.Attachment{
		Title:    notice.Title,
		Color:    notice.Color,
		Fallback: notice.Text,
	}
	for _, f := range notice.Fields {
		att.Fields = append(att.Fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: true,
		})
	}
	msg.Attachments = []slackapi.Attachment{att}
	return msg
}

func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) || attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(1<<attempt) * time.Second
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
