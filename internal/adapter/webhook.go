// Package adapter holds outbound integrations. The only one today is
// the webhook notifier that pushes failed sync reports to an external
// endpoint (an alerting relay or a paste service).
package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/models"
)

const defaultWebhookTimeout = 15 * time.Second

// WebhookNotifier implements the services' Notifier contract by POSTing
// the report as JSON to the configured URL.
type WebhookNotifier struct {
	client *resty.Client
	logger *logger.Logger
}

func NewWebhookNotifier(cfg config.Webhook, log *logger.Logger) *WebhookNotifier {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout.Or(defaultWebhookTimeout))

	return &WebhookNotifier{client: cli, logger: log}
}

// Notify delivers one report. A non-2xx response is an error; the
// caller treats delivery as best effort and only logs it.
func (w *WebhookNotifier) Notify(ctx context.Context, report models.SyncReport) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(report).
		Post("")
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("webhook http %d: %s", resp.StatusCode(), body)
	}

	w.logger.Debug().Str("run_id", report.Run.ID).Str("channel", report.Run.Channel).Msg("sync report delivered to webhook")
	return nil
}
