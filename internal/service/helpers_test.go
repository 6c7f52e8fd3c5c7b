package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"voiceunheard/internal/config"
	"voiceunheard/internal/localstore"
	"voiceunheard/internal/models"
	"voiceunheard/internal/state"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:         "test_secret",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		LikeMode:             config.LikeModeAtomic,
	}
}

func newTestKV(t *testing.T) *localstore.FileKV {
	kv, err := localstore.NewFileKV(filepath.Join(t.TempDir(), "device.json"))
	require.NoError(t, err)
	return kv
}

func newTestStore(stories ...models.Story) *state.Store {
	st := state.Initial()
	st.Feed = stories
	return state.NewStore(st)
}

func signIn(store *state.Store, userID, email string, role models.Role) {
	store.Update(func(st state.State) state.State {
		return state.SetSession(st, &models.Session{UserID: userID, Email: email}, role)
	})
}

func withDevice(store *state.Store, deviceID string) {
	store.Update(func(st state.State) state.State {
		return state.SetDevice(st, deviceID, true)
	})
}

type countingPending struct {
	calls atomic.Int32
}

func (c *countingPending) RefreshPendingCount(context.Context) int {
	c.calls.Add(1)
	return 0
}

func strPtr(s string) *string {
	return &s
}
