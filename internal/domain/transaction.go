package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is income or expense.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// SharedExpenseCategory is the category recorded for payments toward shared items.
const SharedExpenseCategory = "Shared Expense"

// TopCategoryLimit is how many expense categories the dashboard keeps.
const TopCategoryLimit = 5

// ParseTransactionType validates a transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionIncome, TransactionExpense:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
	}
}

// Transaction is a single income or expense record. Expenses may be stored
// with either sign; aggregation always uses their absolute value.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Date        time.Time
}

// MonthKey formats the transaction's month as YYYY-MM.
func (t Transaction) MonthKey() string {
	return MonthKey(t.Date)
}

// MonthKey formats a time as YYYY-MM.
func MonthKey(at time.Time) string {
	return at.Format("2006-01")
}

// SharedPaymentTransaction is the expense recorded alongside a payment toward
// a shared item.
func SharedPaymentTransaction(itemTitle string, p Payment) Transaction {
	description := "Payment for: " + itemTitle
	if p.Description != "" {
		description = itemTitle + ": " + p.Description
	}
	return Transaction{
		ID:          p.ID,
		Amount:      p.Amount.Abs().Neg(),
		Type:        TransactionExpense,
		Category:    SharedExpenseCategory,
		Description: description,
		Date:        p.PaidAt,
	}
}

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthFlow is income and expense for one month.
type MonthFlow struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// CashFlow is income, expenses and their difference.
type CashFlow struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// DashboardSummary is the overview computed from a full transaction list.
type DashboardSummary struct {
	CashFlow
	Shared        SharedTotals
	TopCategories []CategoryAmount
	Monthly       []MonthFlow
	CurrentMonth  MonthFlow
}

// SumCashFlow totals income and absolute expenses.
func SumCashFlow(txs []Transaction) CashFlow {
	cf := CashFlow{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, t := range txs {
		switch t.Type {
		case TransactionIncome:
			cf.Income = cf.Income.Add(t.Amount)
		case TransactionExpense:
			cf.Expenses = cf.Expenses.Add(t.Amount.Abs())
		}
	}
	cf.Balance = cf.Income.Sub(cf.Expenses)
	return cf
}

// ExpensesByCategory sums absolute expenses per category, largest first.
// Ties are broken by category name.
func ExpensesByCategory(txs []Transaction) []CategoryAmount {
	byCategory := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != TransactionExpense {
			continue
		}
		current, ok := byCategory[t.Category]
		if !ok {
			current = decimal.Zero
		}
		byCategory[t.Category] = current.Add(t.Amount.Abs())
	}

	out := make([]CategoryAmount, 0, len(byCategory))
	for c, a := range byCategory {
		out = append(out, CategoryAmount{Category: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyFlows groups transactions by month, oldest month first.
func MonthlyFlows(txs []Transaction) []MonthFlow {
	byMonth := make(map[string][]Transaction)
	for _, t := range txs {
		byMonth[t.MonthKey()] = append(byMonth[t.MonthKey()], t)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthFlow, 0, len(months))
	for _, m := range months {
		out = append(out, monthFlow(m, byMonth[m]))
	}
	return out
}

// CurrentMonthFlow returns the flow for the month containing now.
func CurrentMonthFlow(txs []Transaction, now time.Time) MonthFlow {
	key := MonthKey(now)
	var inMonth []Transaction
	for _, t := range txs {
		if t.MonthKey() == key {
			inMonth = append(inMonth, t)
		}
	}
	return monthFlow(key, inMonth)
}

// Summarize builds the dashboard overview.
func Summarize(txs []Transaction, shared []SharedItemBalance, now time.Time) DashboardSummary {
	top := ExpensesByCategory(txs)
	if len(top) > TopCategoryLimit {
		top = top[:TopCategoryLimit]
	}
	return DashboardSummary{
		CashFlow:      SumCashFlow(txs),
		Shared:        SumSharedItems(shared),
		TopCategories: top,
		Monthly:       MonthlyFlows(txs),
		CurrentMonth:  CurrentMonthFlow(txs, now),
	}
}

func monthFlow(month string, txs []Transaction) MonthFlow {
	cf := SumCashFlow(txs)
	return MonthFlow{Month: month, Income: cf.Income, Expenses: cf.Expenses, Balance: cf.Balance}
}
