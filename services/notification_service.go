package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

// PushProvider delivers one push message to a device token.
type PushProvider interface {
	SendPush(ctx context.Context, token, title, body string) error
}

// NotificationService keeps one registered device per profile and sends
// best-effort pushes for badge unlocks. Delivery failures are logged, never
// surfaced; notifications are cosmetic to the engine.
type NotificationService struct {
	store        record.Store
	pushProvider PushProvider
}

func NewNotificationService(store record.Store) *NotificationService {
	return &NotificationService{store: store}
}

// SetPushProvider injects the provider after construction; the service works
// without one (pushes are simply skipped).
func (s *NotificationService) SetPushProvider(provider PushProvider) {
	s.pushProvider = provider
}

func (s *NotificationService) RegisterDevice(ctx context.Context, profileID, token string) error {
	if token == "" {
		return validation.Errorf("token", "is required")
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode device token: %w", err)
	}
	return s.store.Put(ctx, profileID, record.KeyDeviceToken, data)
}

func (s *NotificationService) NotifyBadgesUnlocked(ctx context.Context, profileID string, count, totalBadges int) {
	if s.pushProvider == nil {
		return
	}

	data, err := s.store.Get(ctx, profileID, record.KeyDeviceToken)
	if err != nil {
		if err != record.ErrNotFound {
			log.Printf("Notification: failed to read device token for %s: %v", profileID, err)
		}
		return
	}

	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		log.Printf("Notification: failed to decode device token for %s: %v", profileID, err)
		return
	}

	body := fmt.Sprintf("Congratulations! You earned a new badge! (%d total)", totalBadges)
	if count > 1 {
		body = fmt.Sprintf("Congratulations! You earned %d new badges! (%d total)", count, totalBadges)
	}

	if err := s.pushProvider.SendPush(ctx, token, "New badge earned", body); err != nil {
		log.Printf("Notification: badge push failed for %s: %v", profileID, err)
	}
}
