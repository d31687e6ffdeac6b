package bar

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
)

const (
	insertBarQuery = `INSERT INTO bars (timestamp, bar_type, symbol, open, high, low, close, volume, average_spread) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	latestBarQuery = `SELECT timestamp, bar_type, symbol, open, high, low, close, volume, average_spread
			  FROM bars 
			  WHERE bar_type = $1 
			  ORDER BY timestamp DESC 
			  LIMIT 1`
)

// Repository represents the repository for closed bars.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new bar repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a closed bar.
func (r *Repository) Store(ctx context.Context, bar *Bar) error {
	err := r.client.Exec(ctx, insertBarQuery,
		bar.Timestamp, bar.BarType, bar.Symbol, bar.Open, bar.High,
		bar.Low, bar.Close, bar.Volume, bar.AverageSpread)

	if err != nil {
		return errors.NewTracer("failed to store bar").Wrap(errors.NewErrorDetails(err.Error(), string(errors.QuestDBStoreError), "bar"))
	}

	return nil
}

// GetLatest retrieves the most recent bar of a bar type, or nil when none is stored.
func (r *Repository) GetLatest(ctx context.Context, barType string) (*Bar, error) {
	bar := &Bar{}
	err := r.client.QueryRow(ctx, latestBarQuery, barType).Scan(
		&bar.Timestamp, &bar.BarType, &bar.Symbol, &bar.Open, &bar.High,
		&bar.Low, &bar.Close, &bar.Volume, &bar.AverageSpread)

	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.NewTracer("failed to get latest bar").Wrap(err)
	}

	return bar, nil
}
