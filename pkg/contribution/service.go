package contribution

import (
	"context"
	"fmt"

	"github.com/klokku/finpulse/internal/utils"
	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// List returns every wallet of the current account with suggestions as of today.
	List(ctx context.Context) ([]Wallet, error)
}

type ServiceImpl struct {
	reader ledger.Reader
	clock  utils.Clock
}

func NewService(reader ledger.Reader, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{reader: reader, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Wallet, error) {
	accountId, err := account.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current account: %w", err)
	}
	contributions, err := s.reader.ListRecurringContributions(ctx, accountId, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	today := s.clock.Now()
	wallets := make([]Wallet, 0, len(contributions))
	for _, c := range contributions {
		wallets = append(wallets, NewWallet(c, today))
	}
	log.Debugf("listed %d wallets for account %d", len(wallets), accountId)
	return wallets, nil
}
