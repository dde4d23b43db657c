package test_utils

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// InsertContribution stores a recurring contribution row and returns its id.
func InsertContribution(t *testing.T, db *pgxpool.Pool, accountId int, name string, monthly *decimal.Decimal, start time.Time) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO recurring_contribution (account_id, name, target_amount, current_amount, start_date, monthly_contribution)
		 VALUES ($1, $2, 1000, 0, $3, $4) RETURNING id`,
		accountId, name, start, monthly,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
