//go:build !linux

package watch

import (
	"context"

	"github.com/cantara/locations/location"
)

func Directory(ctx context.Context, dir location.Location) (<-chan Event, error) {
	return nil, ErrUnsupported
}
