package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"github.com/pronosport/tips-platform/internal/shared/metrics"
	"github.com/pronosport/tips-platform/internal/store"
)

// ErrNoSubscription indica usuário sem inscrição push ativa.
var ErrNoSubscription = errors.New("no active push subscription")

// Subscriptions são as operações de store que o sender usa.
type Subscriptions interface {
	PushSubscription(ctx context.Context, email string) (*store.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, email string) error
}

// Notification é o payload entregue ao service worker do navegador.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	BetID string `json:"betId,omitempty"`
}

// Sender entrega notificações Web Push (VAPID). Endpoint que responde
// 410 Gone tem a inscrição purgada na hora.
type Sender struct {
	vapidPublic  string
	vapidPrivate string
	subject      string
	subs         Subscriptions
	log          *zap.Logger
}

func NewSender(vapidPublic, vapidPrivate, subject string, subs Subscriptions, log *zap.Logger) *Sender {
	return &Sender{
		vapidPublic:  vapidPublic,
		vapidPrivate: vapidPrivate,
		subject:      subject,
		subs:         subs,
		log:          log,
	}
}

// Send entrega uma notificação para o usuário. Erros são devolvidos para o
// chamador logar; nenhuma falha de push deve bloquear liquidação.
func (s *Sender) Send(ctx context.Context, email string, n Notification) error {
	if s.vapidPublic == "" || s.vapidPrivate == "" {
		return errors.New("vapid keys not configured")
	}

	sub, err := s.subs.PushSubscription(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoSubscription
	}
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return ErrNoSubscription
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	target := &webpush.Subscription{
		Endpoint: sub.Subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Subscription.Keys.P256dh,
			Auth:   sub.Subscription.Keys.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.vapidPublic,
		VAPIDPrivateKey: s.vapidPrivate,
		TTL:             3600,
	})
	if err != nil {
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		return fmt.Errorf("webpush send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		// Inscrição morta: esquece para não insistir num endpoint defunto.
		metrics.PushDeliveries.WithLabelValues("expired").Inc()
		s.log.Info("push subscription expired, purging", zap.String("email", email))
		if derr := s.subs.DeletePushSubscription(ctx, email); derr != nil {
			s.log.Warn("purge push subscription", zap.Error(derr))
		}
		return ErrNoSubscription
	}
	if resp.StatusCode >= 300 {
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		return fmt.Errorf("webpush http %s", resp.Status)
	}

	metrics.PushDeliveries.WithLabelValues("sent").Inc()
	return nil
}
