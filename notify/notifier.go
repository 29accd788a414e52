// Package notify publishes best-effort admin notifications when a public
// submission arrives. Publishing is fire-and-forget: a notification failure
// never fails the submission itself.
package notify

import (
	"context"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go"

	"club-portal/config"
	"club-portal/utils"
)

type Notifier struct {
	pn      *pubnub.PubNub
	channel string
	breaker *utils.CircuitBreaker
}

// NewNotifier returns nil when no publish key is configured; a nil Notifier
// is safe to call and does nothing.
func NewNotifier(cfg *config.Config) *Notifier {
	if cfg.PubNubPublishKey == "" {
		slog.Info("submission notifications disabled, no publish key configured")
		return nil
	}

	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	return &Notifier{
		pn:      pubnub.NewPubNub(pnConfig),
		channel: cfg.NotifyChannel,
		breaker: utils.NewCircuitBreaker("notify"),
	}
}

// SubmissionReceived announces a new registration or contact message on the
// admin channel.
func (n *Notifier) SubmissionReceived(ctx context.Context, kind, id string) {
	if n == nil {
		return
	}

	err := n.breaker.Execute(ctx, func() error {
		_, _, err := n.pn.Publish().
			Channel(n.channel).
			Message(map[string]any{
				"type":        "submission",
				"kind":        kind,
				"id":          id,
				"received_at": time.Now().UTC().Format(time.RFC3339),
			}).
			Execute()
		return err
	})
	if err != nil {
		slog.Warn("submission notification dropped", "kind", kind, "id", id, "error", err)
	}
}
