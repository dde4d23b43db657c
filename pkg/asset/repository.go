package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrAssetNotFound = errors.New("asset not found")

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	GetAsset(ctx context.Context, accountId int, id int) (ledger.Asset, error)
	CreateAsset(ctx context.Context, accountId int, asset ledger.Asset) (ledger.Asset, error)
	UpdateAsset(ctx context.Context, accountId int, asset ledger.Asset) (ledger.Asset, error)
	DeleteAsset(ctx context.Context, accountId int, id int) error
	CreateContribution(ctx context.Context, accountId int, contribution ledger.RecurringContribution) (ledger.RecurringContribution, error)
	SetContributionTarget(ctx context.Context, accountId int, id int, target decimal.Decimal) error
	// SetMonthlyContribution stores the committed amount; nil stops the schedule.
	SetMonthlyContribution(ctx context.Context, accountId int, id int, monthly *decimal.Decimal) error
	DeleteContribution(ctx context.Context, accountId int, id int) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

// getQueryer returns the transaction when one is open, the pool otherwise
func (r *repositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &repositoryImpl{db: r.db, tx: tx}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *repositoryImpl) GetAsset(ctx context.Context, accountId int, id int) (ledger.Asset, error) {
	query := `SELECT id, account_id, name, category, estimated_value, status, linked_contribution_id
			  FROM asset WHERE id = $1 AND account_id = $2`
	var asset ledger.Asset
	var status string
	err := r.getQueryer().QueryRow(ctx, query, id, accountId).Scan(
		&asset.Id, &asset.AccountId, &asset.Name, &asset.Category, &asset.EstimatedValue, &status, &asset.LinkedContributionId,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Asset{}, ErrAssetNotFound
		}
		log.Errorf("failed to get asset %d: %v", id, err)
		return ledger.Asset{}, fmt.Errorf("%w: %w", ledger.ErrDataUnavailable, err)
	}
	asset.Status = ledger.AssetStatus(status)
	return asset, nil
}

func (r *repositoryImpl) CreateAsset(ctx context.Context, accountId int, asset ledger.Asset) (ledger.Asset, error) {
	query := `INSERT INTO asset (account_id, name, category, estimated_value, status, linked_contribution_id)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.getQueryer().QueryRow(ctx, query,
		accountId, asset.Name, asset.Category, asset.EstimatedValue, string(asset.Status), asset.LinkedContributionId,
	).Scan(&asset.Id)
	if err != nil {
		log.Errorf("failed to create asset: %v", err)
		return ledger.Asset{}, fmt.Errorf("failed to create asset: %w", err)
	}
	asset.AccountId = accountId
	return asset, nil
}

func (r *repositoryImpl) UpdateAsset(ctx context.Context, accountId int, asset ledger.Asset) (ledger.Asset, error) {
	query := `UPDATE asset SET name = $1, category = $2, estimated_value = $3, status = $4, linked_contribution_id = $5
			  WHERE id = $6 AND account_id = $7`
	tag, err := r.getQueryer().Exec(ctx, query,
		asset.Name, asset.Category, asset.EstimatedValue, string(asset.Status), asset.LinkedContributionId, asset.Id, accountId,
	)
	if err != nil {
		log.Errorf("failed to update asset %d: %v", asset.Id, err)
		return ledger.Asset{}, fmt.Errorf("failed to update asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.Asset{}, ErrAssetNotFound
	}
	asset.AccountId = accountId
	return asset, nil
}

func (r *repositoryImpl) DeleteAsset(ctx context.Context, accountId int, id int) error {
	tag, err := r.getQueryer().Exec(ctx, `DELETE FROM asset WHERE id = $1 AND account_id = $2`, id, accountId)
	if err != nil {
		log.Errorf("failed to delete asset %d: %v", id, err)
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *repositoryImpl) CreateContribution(ctx context.Context, accountId int, c ledger.RecurringContribution) (ledger.RecurringContribution, error) {
	query := `INSERT INTO recurring_contribution
				(account_id, name, target_amount, current_amount, start_date, end_date, periods_total, monthly_contribution)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.getQueryer().QueryRow(ctx, query,
		accountId, c.Name, c.TargetAmount, c.CurrentAmount, c.StartDate, c.EndDate, c.PeriodsTotal, c.MonthlyContribution,
	).Scan(&c.Id)
	if err != nil {
		log.Errorf("failed to create contribution: %v", err)
		return ledger.RecurringContribution{}, fmt.Errorf("failed to create contribution: %w", err)
	}
	c.AccountId = accountId
	return c, nil
}

func (r *repositoryImpl) SetContributionTarget(ctx context.Context, accountId int, id int, target decimal.Decimal) error {
	query := `UPDATE recurring_contribution SET target_amount = $1 WHERE id = $2 AND account_id = $3`
	if _, err := r.getQueryer().Exec(ctx, query, target, id, accountId); err != nil {
		log.Errorf("failed to sync target of contribution %d: %v", id, err)
		return fmt.Errorf("failed to update contribution: %w", err)
	}
	return nil
}

func (r *repositoryImpl) SetMonthlyContribution(ctx context.Context, accountId int, id int, monthly *decimal.Decimal) error {
	query := `UPDATE recurring_contribution SET monthly_contribution = $1 WHERE id = $2 AND account_id = $3`
	if _, err := r.getQueryer().Exec(ctx, query, monthly, id, accountId); err != nil {
		log.Errorf("failed to set monthly amount of contribution %d: %v", id, err)
		return fmt.Errorf("failed to update contribution: %w", err)
	}
	return nil
}

func (r *repositoryImpl) DeleteContribution(ctx context.Context, accountId int, id int) error {
	query := `DELETE FROM recurring_contribution WHERE id = $1 AND account_id = $2`
	if _, err := r.getQueryer().Exec(ctx, query, id, accountId); err != nil {
		log.Errorf("failed to delete contribution %d: %v", id, err)
		return fmt.Errorf("failed to delete contribution: %w", err)
	}
	return nil
}
