package market_rate

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu    sync.Mutex
	Rate  Rate
	Err   error
	Calls int
}

func (c *ClientStub) LatestRate(ctx context.Context, series string) (Rate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	if c.Err != nil {
		return Rate{}, c.Err
	}
	rate := c.Rate
	rate.Series = series
	return rate, nil
}

func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Rate = Rate{}
	c.Err = nil
	c.Calls = 0
}
