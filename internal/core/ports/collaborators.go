package ports

import (
	"context"
	"io"
)

// EventBus fans out live updates to subscribed views. Within a channel,
// delivery follows publish order; across channels there is no ordering
// guarantee.
type EventBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error

	// Subscribe returns a delivery channel and a release function. The
	// release function must be called exactly once when the consuming view
	// is torn down or its subscription key changes.
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Mailer sends fire-and-forget notification emails. Failures are logged by
// the caller, never propagated to the triggering write.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, text string) error
}

// Assistant is the text-generation collaborator behind the synthetic chat
// peer.
type Assistant interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ObjectStore holds binary uploads (avatars, voice clips, shared files).
type ObjectStore interface {
	Put(ctx context.Context, path string, data io.Reader) (url string, err error)
	URL(ctx context.Context, path string) (string, error)
}

// Presence tracks who is online via self-expiring markers.
type Presence interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
	IsOnline(ctx context.Context, userID string) (bool, error)
}
