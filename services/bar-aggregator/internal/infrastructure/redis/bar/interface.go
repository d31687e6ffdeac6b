package bar

import (
	"context"

	barpublisherv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar-publisher/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/store_mock.go -package=mock

// LatestBarStore keeps the last closed bar of every bar type and fans it out to subscribers.
type LatestBarStore interface {
	Save(ctx context.Context, event *barpublisherv1.BarEvent) error
	Latest(ctx context.Context, barType string) (*barpublisherv1.BarEvent, error)
}
