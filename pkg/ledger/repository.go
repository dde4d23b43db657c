package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func unavailable(what string, err error) error {
	err = fmt.Errorf("%w: could not query %s: %w", ErrDataUnavailable, what, err)
	log.Error(err)
	return err
}

func (r *RepositoryImpl) ListFixedCommitments(ctx context.Context, accountId int, kind Kind) ([]FixedCommitment, error) {
	query := `SELECT id, account_id, kind, name, amount, start_date, end_date, category_id, due_day
			  FROM fixed_commitment
			  WHERE account_id = $1 AND kind = $2
			  ORDER BY id`
	rows, err := r.db.Query(ctx, query, accountId, kind)
	if err != nil {
		return nil, unavailable("fixed commitments", err)
	}
	defer rows.Close()

	var commitments []FixedCommitment
	for rows.Next() {
		var c FixedCommitment
		if err := rows.Scan(
			&c.Id,
			&c.AccountId,
			&c.Kind,
			&c.Name,
			&c.Amount,
			&c.StartDate,
			&c.EndDate,
			&c.CategoryId,
			&c.DueDay,
		); err != nil {
			return nil, unavailable("fixed commitments", err)
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("fixed commitments", err)
	}
	return commitments, nil
}

func (r *RepositoryImpl) ListAdHocEntries(ctx context.Context, accountId int, kind Kind, filter AdHocFilter) ([]AdHocEntry, error) {
	query := `SELECT id, account_id, kind, description, amount, entry_date, month, year, category_id
			  FROM ad_hoc_entry
			  WHERE account_id = $1 AND kind = $2`
	args := []any{accountId, kind}
	if filter.From != nil && filter.To != nil {
		query += ` AND entry_date BETWEEN $3 AND $4`
		args = append(args, filter.From.Format(time.DateOnly), filter.To.Format(time.DateOnly))
	} else if filter.Month != nil {
		query += ` AND month = $3 AND year = $4`
		args = append(args, filter.Month.Month, filter.Month.Year)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("ad hoc entries", err)
	}
	defer rows.Close()

	var entries []AdHocEntry
	for rows.Next() {
		var (
			e     AdHocEntry
			date  *time.Time
			month *int
			year  *int
		)
		if err := rows.Scan(
			&e.Id,
			&e.AccountId,
			&e.Kind,
			&e.Description,
			&e.Amount,
			&date,
			&month,
			&year,
			&e.CategoryId,
		); err != nil {
			return nil, unavailable("ad hoc entries", err)
		}
		if date != nil {
			e.Date = *date
		}
		if month != nil && year != nil {
			e.Period = period.NewMonthKey(*month, *year)
		} else if date != nil {
			e.Period = period.MonthKeyFromTime(*date)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("ad hoc entries", err)
	}
	return entries, nil
}

func (r *RepositoryImpl) ListRecurringContributions(ctx context.Context, accountId int, onlyWithSchedule bool) ([]RecurringContribution, error) {
	query := `SELECT c.id, c.account_id, c.name, c.target_amount, c.current_amount, c.start_date, c.end_date,
       			c.periods_total, c.monthly_contribution, s.month, s.year
			  FROM recurring_contribution c
			  LEFT JOIN contribution_skip s ON s.contribution_id = c.id
			  WHERE c.account_id = $1`
	if onlyWithSchedule {
		query += ` AND c.monthly_contribution IS NOT NULL`
	}
	query += ` ORDER BY c.id`

	rows, err := r.db.Query(ctx, query, accountId)
	if err != nil {
		return nil, unavailable("recurring contributions", err)
	}
	defer rows.Close()

	var contributions []RecurringContribution
	for rows.Next() {
		var (
			c         RecurringContribution
			monthly   decimal.NullDecimal
			skipMonth *int
			skipYear  *int
		)
		if err := rows.Scan(
			&c.Id,
			&c.AccountId,
			&c.Name,
			&c.TargetAmount,
			&c.CurrentAmount,
			&c.StartDate,
			&c.EndDate,
			&c.PeriodsTotal,
			&monthly,
			&skipMonth,
			&skipYear,
		); err != nil {
			return nil, unavailable("recurring contributions", err)
		}
		// rows are ordered by contribution, skips fold into the previous one
		if n := len(contributions); n == 0 || contributions[n-1].Id != c.Id {
			if monthly.Valid {
				c.MonthlyContribution = &monthly.Decimal
			}
			c.Skips = SkipSet{}
			contributions = append(contributions, c)
		}
		if skipMonth != nil && skipYear != nil {
			contributions[len(contributions)-1].Skips[period.NewMonthKey(*skipMonth, *skipYear)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("recurring contributions", err)
	}
	return contributions, nil
}

func (r *RepositoryImpl) ListCategoryBudgets(ctx context.Context, accountId int, month period.MonthKey) ([]CategoryBudget, error) {
	query := `SELECT category_id, account_id, month, year, amount
			  FROM category_budget
			  WHERE account_id = $1 AND month = $2 AND year = $3
			  ORDER BY category_id`
	rows, err := r.db.Query(ctx, query, accountId, month.Month, month.Year)
	if err != nil {
		return nil, unavailable("category budgets", err)
	}
	defer rows.Close()

	var budgets []CategoryBudget
	for rows.Next() {
		var b CategoryBudget
		if err := rows.Scan(&b.CategoryId, &b.AccountId, &b.Month.Month, &b.Month.Year, &b.Amount); err != nil {
			return nil, unavailable("category budgets", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("category budgets", err)
	}
	return budgets, nil
}

func (r *RepositoryImpl) ListAssets(ctx context.Context, accountId int, filter AssetFilter) ([]Asset, error) {
	query := `SELECT id, account_id, name, category, estimated_value, status, linked_contribution_id
			  FROM asset
			  WHERE account_id = $1`
	args := []any{accountId}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("assets", err)
	}
	assets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Asset, error) {
		var a Asset
		err := row.Scan(&a.Id, &a.AccountId, &a.Name, &a.Category, &a.EstimatedValue, &a.Status, &a.LinkedContributionId)
		return a, err
	})
	if err != nil {
		return nil, unavailable("assets", err)
	}
	return assets, nil
}
