package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// IdentityStore keeps the anonymous user id on this machine.
type IdentityStore interface {
	LoadUserID(ctx context.Context) (string, error)
	SaveUserID(ctx context.Context, id string) error
}

// AnonymousIdentity returns the stored user id, minting and saving a random
// one on first use. The id is the only key into the remote document, so it
// must stay stable across sessions.
func AnonymousIdentity(ctx context.Context, store IdentityStore) (string, error) {
	id, err := store.LoadUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("load anonymous identity: %w", err)
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := store.SaveUserID(ctx, id); err != nil {
		return "", fmt.Errorf("save anonymous identity: %w", err)
	}
	return id, nil
}
