package bar

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// BarRepository represents the repository interface for closed bars.
type BarRepository interface {
	Store(ctx context.Context, b *Bar) error
	GetLatest(ctx context.Context, barType string) (*Bar, error)
}
