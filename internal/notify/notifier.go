// Package notify posts best-effort audit messages to a chat webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/config"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/rs/zerolog"
)

type Notifier struct {
	client      *http.Client
	url         string
	hostname    string
	footer      string
	hookEnabled bool
	logger      zerolog.Logger
	now         func() time.Time
}

func NewNotifier(cfg config.NotifierConfig, hostname string, hookEnabled bool, logger zerolog.Logger) *Notifier {
	return &Notifier{
		client:      &http.Client{Timeout: time.Duration(cfg.Timeout * float64(time.Second))},
		url:         cfg.WebhookURL,
		hostname:    hostname,
		footer:      cfg.Footer,
		hookEnabled: hookEnabled,
		logger:      logger,
		now:         time.Now,
	}
}

// Notify sends one message describing ev. Delivery failures are logged and dropped.
func (n *Notifier) Notify(ctx context.Context, ev domain.ActionEvent) {
	if n.url == "" {
		n.logger.Warn().Msg("Webhook URL not set, skipping notification.")
		return
	}

	if err := n.post(ctx, buildPayload(ev, n.hostname, n.footer, n.hookEnabled, n.now())); err != nil {
		n.logger.Error().Err(err).Str("action", string(ev.Action)).Str("container", ev.ContainerName).Msg("Failed to send webhook")
		return
	}
	n.logger.Info().Msgf("Sent webhook: %s on %s by %s", ev.Action, ev.ContainerName, ev.Actor)
}

func (n *Notifier) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with %s", resp.Status)
	}
	return nil
}
