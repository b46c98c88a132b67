package factory

import (
	"context"
	"time"

	"github.com/mcoot/mixplugin-go/internal/dependencies/mocks"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
	"github.com/mcoot/mixplugin-go/internal/storage/memory"
	"github.com/mcoot/mixplugin-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockHost  *mocks.MockHost

	// Backends, for inspecting what was saved
	BanBackend   *memory.Backend
	SpawnBackend *memory.Backend
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithAuth(auth.DefaultConfig())
}

// NewTestAppWithAuth is NewTestApp with API key checking configured
func NewTestAppWithAuth(authCfg auth.Config) *TestApp {
	banBackend := memory.New()
	spawnBackend := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockHost := mocks.NewMockHost()
	logger := testutil.NopLogger()

	authService, err := auth.New(mockClock, authCfg, logger)
	if err != nil {
		panic(err)
	}

	app, err := newWithDependencies(context.Background(), banBackend, spawnBackend, mockClock, mockHost, mockHost, authService, logger)
	if err != nil {
		// memory backends do not fail to load
		panic(err)
	}

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockHost:     mockHost,
		BanBackend:   banBackend,
		SpawnBackend: spawnBackend,
	}
}
