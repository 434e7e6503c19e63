package fcm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging. A client constructed without
// credentials is disabled: sends become no-op errors and IsEnabled
// reports false, so the scanner runs fine without push alerts.
type Client struct {
	client *messaging.Client
	log    *slog.Logger
}

// NewClient reads credentials from FIREBASE_CREDENTIALS_PATH or, as a
// fallback, a raw JSON blob in FIREBASE_CREDENTIALS_JSON.
func NewClient(ctx context.Context, log *slog.Logger) (*Client, error) {
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		if credJSON == "" {
			log.Warn("no firebase credentials found, push alerts disabled")
			return &Client{log: log}, nil
		}

		tmpFile, err := os.CreateTemp("", "firebase-credentials-*.json")
		if err != nil {
			return nil, fmt.Errorf("create temp credentials file: %w", err)
		}
		defer tmpFile.Close()

		if _, err := tmpFile.Write([]byte(credJSON)); err != nil {
			return nil, fmt.Errorf("write credentials: %w", err)
		}
		credPath = tmpFile.Name()
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	log.Info("firebase cloud messaging initialized")
	return &Client{client: client, log: log}, nil
}

// SendMulticast pushes one notification to a set of device tokens.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("fcm client not initialized")
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "scanner_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	resp, err := c.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("send multicast: %w", err)
	}

	c.log.Info("sent push alerts", "success", resp.SuccessCount, "failures", resp.FailureCount)
	return nil
}

// IsEnabled reports whether the client holds real credentials.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}
