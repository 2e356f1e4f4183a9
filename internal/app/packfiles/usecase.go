// Package packfiles exposes the content-pack files for download, so a
// client can render item names and recipes from the same definitions
// the server simulates with.
package packfiles

import (
	"context"

	"idleverse/internal/app/ports"
)

type UseCase struct {
	Provider ports.PackFilesProvider
}

func (u UseCase) Index(ctx context.Context) ([]byte, error) {
	return u.Provider.Index(ctx)
}

func (u UseCase) File(ctx context.Context, path string) ([]byte, error) {
	return u.Provider.File(ctx, path)
}
