// Package localstore keeps the small amount of state that belongs to this
// installation rather than to the remote service.
package localstore

import "context"

// KV is a durable string slot store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	KeyDeviceID   = "device_user_id"
	KeyIntroShown = "hasLaunched"
	KeyLikedPosts = "likedPosts"
)
