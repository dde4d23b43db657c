package aggregate

import (
	"context"
	"fmt"
	"testing"

	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var readerStub = ledger.NewReaderStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(readerStub)
	return func() {
		t.Log("Teardown after test")
		readerStub.Reset()
	}
}

func TestServiceImpl_ComputeMonth(t *testing.T) {
	t.Run("should aggregate only the account's rows", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		readerStub.Fixed = []ledger.FixedCommitment{
			{AccountId: 1, Kind: ledger.KindIncome, Amount: amount(3000)},
			{AccountId: 2, Kind: ledger.KindIncome, Amount: amount(7000)},
			{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(1000), StartDate: date(2025, 1, 1)},
		}
		readerStub.AdHoc = []ledger.AdHocEntry{
			{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(500), Date: date(2025, 3, 20)},
			{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(500), Date: date(2025, 4, 1)},
			{AccountId: 1, Kind: ledger.KindIncome, Amount: amount(150), Period: march},
		}

		// when
		agg, err := service.ComputeMonth(ctx, 1, march)

		// then
		require.NoError(t, err)
		assert.True(t, amount(3150).Equal(agg.TotalIncome))
		assert.True(t, amount(1500).Equal(agg.TotalExpense))
		assert.True(t, amount(1650).Equal(agg.Balance))
	})

	t.Run("should propagate read failures", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		readerStub.Err = fmt.Errorf("%w: connection refused", ledger.ErrDataUnavailable)

		// when
		_, err := service.ComputeMonth(ctx, 1, march)

		// then
		assert.ErrorIs(t, err, ledger.ErrDataUnavailable)
	})
}

func TestServiceImpl_TrailingVariableAverage(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	readerStub.AdHoc = []ledger.AdHocEntry{
		{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(300), Date: date(2024, 12, 1)},
		{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(600), Date: date(2025, 2, 10)},
		{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(999), Date: date(2025, 3, 10)},
	}

	// when
	avg, err := service.TrailingVariableAverage(ctx, 1, march, DefaultTrailingMonths)

	// then
	require.NoError(t, err)
	assert.True(t, amount(300).Equal(avg))
}
