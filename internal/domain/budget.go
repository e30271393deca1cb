package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetWarningRatio is the share of a budget after which it is flagged.
var BudgetWarningRatio = decimal.RequireFromString("0.8")

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID       string
	Category string
	Month    time.Time
	Amount   decimal.Decimal
}

// BudgetStatus is the spending state of a budget.
type BudgetStatus struct {
	Budget     Budget
	Spent      decimal.Decimal
	Percent    decimal.Decimal
	Left       decimal.Decimal
	OverBy     decimal.Decimal
	OverBudget bool
	Warning    bool
}

// BudgetProgress computes spending against every budget. Spending is the
// absolute sum of expenses in the budget's month and category.
func BudgetProgress(budgets []Budget, txs []Transaction) []BudgetStatus {
	spending := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != TransactionExpense {
			continue
		}
		key := budgetKey(t.MonthKey(), t.Category)
		current, ok := spending[key]
		if !ok {
			current = decimal.Zero
		}
		spending[key] = current.Add(t.Amount.Abs())
	}

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent, ok := spending[budgetKey(MonthKey(b.Month), b.Category)]
		if !ok {
			spent = decimal.Zero
		}
		out = append(out, BudgetStatus{
			Budget:     b,
			Spent:      spent,
			Percent:    CappedPercent(spent, b.Amount),
			Left:       NonNegative(b.Amount.Sub(spent)),
			OverBy:     NonNegative(spent.Sub(b.Amount)),
			OverBudget: spent.GreaterThan(b.Amount),
			Warning:    spent.GreaterThanOrEqual(b.Amount.Mul(BudgetWarningRatio)),
		})
	}
	return out
}

func budgetKey(month, category string) string {
	return month + "_" + category
}

// SavingsGoal is a target amount being saved toward.
type SavingsGoal struct {
	ID            string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

// SavingsStatus is the progress toward a savings goal.
type SavingsStatus struct {
	Goal      SavingsGoal
	Percent   decimal.Decimal
	Remaining decimal.Decimal
	Achieved  bool
}

// SavingsProgress computes progress for a goal. A zero target reports 0%.
func SavingsProgress(goal SavingsGoal) SavingsStatus {
	return SavingsStatus{
		Goal:      goal,
		Percent:   CappedPercent(goal.CurrentAmount, goal.TargetAmount),
		Remaining: NonNegative(goal.TargetAmount.Sub(goal.CurrentAmount)),
		Achieved:  goal.TargetAmount.IsPositive() && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount),
	}
}
