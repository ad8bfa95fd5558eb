package ports

import "context"

// RoleService is the only server-trusted mutation path for privileges.
// Every method re-checks the actor's admin claim against the claims store,
// independent of whatever the client presented.
type RoleService interface {
	SetRole(ctx context.Context, actorID, targetID, role string) error
	Lock(ctx context.Context, actorID, targetID string, locked bool) error
	// Delete removes the target profile and cascades to its posts.
	Delete(ctx context.Context, actorID, targetID string) error
}
