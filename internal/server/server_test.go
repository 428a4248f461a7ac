package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/burnoutberni/constellate-realtime/internal/config"
	"github.com/burnoutberni/constellate-realtime/internal/realtime"
)

const testBroadcastToken = "test-broadcast-token"

type fakeUserStore struct {
	users map[uuid.UUID]bool
	err   error
}

func (f *fakeUserStore) Exists(_ context.Context, userID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.users[userID], nil
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:              "test",
		Port:                "0",
		SessionSecret:       "test-session-secret",
		BroadcastToken:      testBroadcastToken,
		HeartbeatInterval:   time.Hour,
		WriteTimeout:        time.Second,
		MaxConnections:      100,
		MaxConnectionsPerIP: 100,
		ConnectionRate:      10000,
		ConnectionBurst:     10000,
	}
}

type testEnv struct {
	srv        *Server
	dispatcher *realtime.Dispatcher
	users      *fakeUserStore
	pinger     *fakePinger
}

func newTestEnv(cfg *config.Config) *testEnv {
	if cfg == nil {
		cfg = testConfig()
	}
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry, clockwork.NewRealClock(), cfg.HeartbeatInterval)
	users := &fakeUserStore{users: make(map[uuid.UUID]bool)}
	pinger := &fakePinger{}
	return &testEnv{
		srv:        NewServer(cfg, dispatcher, users, pinger),
		dispatcher: dispatcher,
		users:      users,
		pinger:     pinger,
	}
}
