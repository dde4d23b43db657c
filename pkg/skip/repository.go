package skip

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	ContributionExists(ctx context.Context, accountId int, contributionId int) (bool, error)
	IsSkipped(ctx context.Context, contributionId int, month period.MonthKey) (bool, error)
	// UpsertSkipException inserts the exception when skip is true and removes it
	// otherwise. Both directions are single statements keyed on
	// (contribution, month, year), so concurrent calls converge.
	UpsertSkipException(ctx context.Context, contributionId int, month period.MonthKey, skip bool) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ContributionExists(ctx context.Context, accountId int, contributionId int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM recurring_contribution WHERE id = $1 AND account_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, contributionId, accountId).Scan(&exists); err != nil {
		log.Errorf("failed to check contribution %d: %v", contributionId, err)
		return false, fmt.Errorf("%w: %w", ledger.ErrDataUnavailable, err)
	}
	return exists, nil
}

func (r *RepositoryImpl) IsSkipped(ctx context.Context, contributionId int, month period.MonthKey) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM contribution_skip WHERE contribution_id = $1 AND month = $2 AND year = $3)`
	var skipped bool
	if err := r.db.QueryRow(ctx, query, contributionId, month.Month, month.Year).Scan(&skipped); err != nil {
		log.Errorf("failed to read skip for contribution %d in %s: %v", contributionId, month, err)
		return false, fmt.Errorf("%w: %w", ledger.ErrDataUnavailable, err)
	}
	return skipped, nil
}

func (r *RepositoryImpl) UpsertSkipException(ctx context.Context, contributionId int, month period.MonthKey, skip bool) error {
	query := `DELETE FROM contribution_skip WHERE contribution_id = $1 AND month = $2 AND year = $3`
	if skip {
		query = `INSERT INTO contribution_skip (contribution_id, month, year) VALUES ($1, $2, $3)
				ON CONFLICT (contribution_id, month, year) DO NOTHING`
	}
	if _, err := r.db.Exec(ctx, query, contributionId, month.Month, month.Year); err != nil {
		log.Errorf("failed to store skip=%t for contribution %d in %s: %v", skip, contributionId, month, err)
		return fmt.Errorf("failed to store skip exception: %w", err)
	}
	return nil
}
