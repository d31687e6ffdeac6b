package bootstrap

import (
	questdbbar "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/questdb/bar"
	redisbar "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/infrastructure/redis/bar"
)

// Repository is the storage of closed bars.
type Repository struct {
	BarRepository  questdbbar.BarRepository
	LatestBarStore redisbar.LatestBarStore
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	if b.QuestDB != nil && b.Config.Ingest.StoreBars {
		b.Repository.BarRepository = questdbbar.NewRepository(b.QuestDB)
	}
	if b.Redis != nil && b.Config.Ingest.CacheBars {
		b.Repository.LatestBarStore = redisbar.NewStore(b.Redis, &b.Config.Redis, b.Logger)
	}
}
