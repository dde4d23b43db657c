package market_rate

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CurrentRate(ctx context.Context) (Rate, error)
}

// CachedProvider serves the configured series through a Cache. A failing
// cache is logged and bypassed so lookups still reach the client.
type CachedProvider struct {
	client Client
	cache  Cache
	series string
}

func NewCachedProvider(client Client, cache Cache, series string) *CachedProvider {
	return &CachedProvider{client: client, cache: cache, series: series}
}

func (p *CachedProvider) CurrentRate(ctx context.Context) (Rate, error) {
	rate, ok, err := p.cache.Get(ctx, p.series)
	if err != nil {
		log.Warnf("market rate cache read failed: %v", err)
	}
	if ok {
		log.Tracef("market rate for series %s served from cache", p.series)
		return rate, nil
	}

	rate, err = p.client.LatestRate(ctx, p.series)
	if err != nil {
		return Rate{}, err
	}
	if err := p.cache.Set(ctx, p.series, rate); err != nil {
		log.Warnf("market rate cache write failed: %v", err)
	}
	log.Debugf("fetched market rate for series %s: %s%%", p.series, rate.AnnualPercent)
	return rate, nil
}
