package notification

import (
	"context"
	"errors"

	"vaxremind/models"
)

// MultiSurface fans a notification out to several surfaces.
type MultiSurface []Surface

func (m MultiSurface) Show(ctx context.Context, n models.DisplayedNotification) error {
	var errs []error
	for _, s := range m {
		if err := s.Show(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSurface) Close(ctx context.Context, tag string) error {
	var errs []error
	for _, s := range m {
		if err := s.Close(ctx, tag); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
