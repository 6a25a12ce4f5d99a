package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calPalAPI/internal/record"
	"calPalAPI/internal/validation"
)

type capturingProvider struct {
	mu     sync.Mutex
	pushes []string
}

func (p *capturingProvider) SendPush(_ context.Context, token, title, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, token+": "+body)
	return nil
}

func (p *capturingProvider) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.pushes...)
}

func TestRegisterDeviceRequiresToken(t *testing.T) {
	svc := NewNotificationService(record.NewMemoryStore())
	err := svc.RegisterDevice(context.Background(), testProfile, "")
	assert.True(t, validation.IsValidation(err))
}

func TestNotifyBadgesUnlockedSendsToRegisteredDevice(t *testing.T) {
	svc := NewNotificationService(record.NewMemoryStore())
	provider := &capturingProvider{}
	svc.SetPushProvider(provider)
	ctx := context.Background()

	// No device registered: nothing sent, nothing fails
	svc.NotifyBadgesUnlocked(ctx, testProfile, 1, 1)
	assert.Empty(t, provider.all())

	require.NoError(t, svc.RegisterDevice(ctx, testProfile, "device-token-1"))

	svc.NotifyBadgesUnlocked(ctx, testProfile, 1, 3)
	svc.NotifyBadgesUnlocked(ctx, testProfile, 2, 5)

	pushes := provider.all()
	require.Len(t, pushes, 2)
	assert.Equal(t, "device-token-1: Congratulations! You earned a new badge! (3 total)", pushes[0])
	assert.Equal(t, "device-token-1: Congratulations! You earned 2 new badges! (5 total)", pushes[1])
}

func TestPushDispatcherDeliversAsynchronously(t *testing.T) {
	provider := &capturingProvider{}
	dispatcher := NewPushDispatcher(provider, 2)

	for i := 0; i < 5; i++ {
		require.NoError(t, dispatcher.SendPush(context.Background(), "token", "title", "body"))
	}

	assert.Eventually(t, func() bool {
		return len(provider.all()) == 5
	}, 2*time.Second, 10*time.Millisecond)

	dispatcher.Stop()
}
