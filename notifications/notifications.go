package notifications

import (
	"context"
	"fmt"
	"io"

	"classchime/state"
	"classchime/types"

	"github.com/SherClockHolmes/webpush-go"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PushToClient sends a raw payload to one stored push subscription. Gone
// subscriptions (404/410) are pruned from the store.
func PushToClient(ctx context.Context, notifID string, message []byte) error {
	var auth string
	var endpoint string
	var p256dh string

	err := state.Pool.QueryRow(ctx, "SELECT auth, endpoint, p256dh FROM push_subscriptions WHERE notif_id = $1", notifID).Scan(&auth, &endpoint, &p256dh)

	if err != nil {
		return fmt.Errorf("error finding subscription: %w", err)
	}

	sub := webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			Auth:   auth,
			P256dh: p256dh,
		},
	}

	resp, err := webpush.SendNotification(message, &sub, &webpush.Options{
		Subscriber:      state.Config.Notifications.Subscriber,
		VAPIDPublicKey:  state.Config.Notifications.VapidPublicKey,
		VAPIDPrivateKey: state.Config.Notifications.VapidPrivateKey,
		TTL:             30,
	})

	if err != nil {
		return fmt.Errorf("error sending notification: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == 404 || resp.StatusCode == 410 {
		// Subscription is gone, drop it
		state.Pool.Exec(ctx, "DELETE FROM push_subscriptions WHERE notif_id = $1", notifID)
	}

	body, _ := io.ReadAll(resp.Body)
	state.Logger.Info("Pushed notification", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))

	return nil
}

// PushNotification fans an alert out to every stored push subscription. A
// failure on one subscription never blocks the others.
func PushNotification(ctx context.Context, alert types.Alert) error {
	payload, err := json.Marshal(alert)

	if err != nil {
		return fmt.Errorf("error marshalling alert: %w", err)
	}

	rows, err := state.Pool.Query(ctx, "SELECT notif_id FROM push_subscriptions")

	if err != nil {
		return fmt.Errorf("error finding subscriptions: %w", err)
	}

	defer rows.Close()

	var notifIDs []string

	for rows.Next() {
		var notifID string

		err = rows.Scan(&notifID)

		if err != nil {
			state.Logger.Error("Error decoding subscription", zap.Error(err))
			continue
		}

		notifIDs = append(notifIDs, notifID)
	}

	for _, notifID := range notifIDs {
		err := PushToClient(ctx, notifID, payload)

		if err != nil {
			state.Logger.Error("Error pushing to client", zap.Error(err), zap.String("notifId", notifID))
			continue
		}
	}

	return nil
}

// WebPusher adapts PushNotification to the alert dispatcher's Pusher
// interface.
type WebPusher struct{}

func (WebPusher) Push(ctx context.Context, alert types.Alert) error {
	return PushNotification(ctx, alert)
}
