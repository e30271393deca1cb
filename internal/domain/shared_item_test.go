package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSharedItem_Plain(t *testing.T) {
	item := SharedItem{ID: "i1", Title: "Sofa", TotalAmount: d("1000")}
	payments := []Payment{
		{Amount: d("300"), PaidAt: date(2025, 1, 2)},
		{Amount: d("200"), PaidAt: date(2025, 1, 1)},
	}

	s, err := SummarizeSharedItem(item, payments)
	require.NoError(t, err)

	assert.True(t, s.TotalPaid.Equal(d("500")))
	assert.True(t, s.Remaining.Equal(d("500")))
	assert.True(t, s.ProgressPercent.Equal(d("50")))
	assert.Equal(t, 2, s.PaymentCount)
	assert.Nil(t, s.Breakdown)
	assert.Nil(t, s.Schedule)
	assert.True(t, s.Active())

	require.Len(t, s.Transactions, 2)
	assert.True(t, s.Transactions[0].Amount.Equal(d("-200")), "transactions follow payment order")
	assert.Equal(t, "Payment for: Sofa", s.Transactions[0].Description)
	assert.Equal(t, SharedExpenseCategory, s.Transactions[1].Category)
}

func TestSummarizeSharedItem_WithObligation(t *testing.T) {
	o := Obligation{PrincipalTarget: d("900"), InterestTarget: d("100")}
	item := SharedItem{ID: "i2", Title: "Car", TotalAmount: o.Total(), Obligation: &o}
	payments := []Payment{
		{Amount: d("200"), PaidAt: date(2025, 2, 1)},
		{Amount: d("50"), PaidAt: date(2025, 1, 1)},
	}

	s, err := SummarizeSharedItem(item, payments)
	require.NoError(t, err)
	require.NotNil(t, s.Breakdown)

	assert.True(t, s.InterestLeft.IsZero())
	assert.True(t, s.PrincipalLeft.Equal(d("750")))
	assert.True(t, s.Remaining.Equal(d("750")))
	assert.True(t, s.Breakdown.Steps[0].Payment.Amount.Equal(d("50")), "oldest payment applied first")
}

func TestSummarizeSharedItem_WithSchedule(t *testing.T) {
	item, err := SharedItem{ID: "i3", Title: "Laptop"}.ApplySchedule(Schedule{
		period(1, "80", "20"),
		period(2, "90", "10"),
	})
	require.NoError(t, err)
	assert.True(t, item.TotalAmount.Equal(d("200")))
	require.NotNil(t, item.Obligation)
	assert.True(t, item.Obligation.InterestTarget.Equal(d("30")))

	s, err := SummarizeSharedItem(item, []Payment{tagged(1, "130", 1), tagged(2, "40", 2)})
	require.NoError(t, err)
	require.NotNil(t, s.Schedule)

	assert.True(t, s.TotalOverpayment.Equal(d("30")))
	assert.True(t, s.TotalPaid.Equal(d("170")))
	assert.True(t, s.Remaining.Equal(d("30")))
	assert.NotNil(t, s.Breakdown)
}

func TestSummarizeSharedItem_Errors(t *testing.T) {
	_, err := SummarizeSharedItem(SharedItem{TotalAmount: d("-1")}, nil)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	bad := Obligation{PrincipalTarget: d("-5"), InterestTarget: d("0")}
	_, err = SummarizeSharedItem(SharedItem{TotalAmount: d("10"), Obligation: &bad}, nil)
	if !errors.Is(err, ErrNegativeTarget) {
		t.Fatalf("expected ErrNegativeTarget, got %v", err)
	}

	_, err = SummarizeSharedItem(SharedItem{TotalAmount: d("10")}, []Payment{{Amount: d("-1"), PaidAt: time.Now()}})
	if !errors.Is(err, ErrNegativePayment) {
		t.Fatalf("expected ErrNegativePayment, got %v", err)
	}
}

func TestSummarizeSharedItem_ZeroTotal(t *testing.T) {
	s, err := SummarizeSharedItem(SharedItem{TotalAmount: d("0")}, []Payment{{Amount: d("5"), PaidAt: time.Now()}})
	require.NoError(t, err)
	assert.True(t, s.ProgressPercent.IsZero())
	assert.True(t, s.Remaining.IsZero())
	assert.False(t, s.Active())
}

func TestApplySchedule_Invalid(t *testing.T) {
	_, err := SharedItem{}.ApplySchedule(Schedule{period(1, "-10", "0")})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}
