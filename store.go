package imgextract

import "context"

// ImageStore persists extracted image files with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ImageStore interface {
	Save(ctx context.Context, img *Image) error
	Commit() error
	Abort() error
}
