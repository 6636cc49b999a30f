package mock

import (
	"context"

	"github.com/fwojciec/imgextract"
)

var _ imgextract.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of imgextract.ImageStore.
type ImageStore struct {
	SaveFn   func(ctx context.Context, img *imgextract.Image) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ImageStore) Save(ctx context.Context, img *imgextract.Image) error {
	return s.SaveFn(ctx, img)
}

func (s *ImageStore) Commit() error {
	return s.CommitFn()
}

func (s *ImageStore) Abort() error {
	return s.AbortFn()
}
