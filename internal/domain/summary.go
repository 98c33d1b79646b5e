package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Snapshot is the full set of records an aggregation runs over. Every
// function in this file is a pure function of a snapshot: no hidden state,
// no memoization across mutations.
type Snapshot struct {
	Expenses    []*Expense
	Payments    []*Payment
	Exchanges   []*Exchange
	Budgets     []*Budget
	BudgetItems []*BudgetItem
}

// CategoryTotal is one row of the category rollup. Total is the converted sum
// for the category; the subtotals split it between raw expenses and purchased
// budget items.
type CategoryTotal struct {
	Category        string          `json:"category"`
	Total           decimal.Decimal `json:"total"`
	ExpenseSubtotal decimal.Decimal `json:"expenseSubtotal"`
	BudgetSubtotal  decimal.Decimal `json:"budgetSubtotal"`
}

// MonthTotal is one bucket of the monthly series, keyed "2006-01".
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ExchangeSums holds the independent USD and ARS sums across all exchanges.
type ExchangeSums struct {
	USDSum decimal.Decimal `json:"usdSum"`
	ARSSum decimal.Decimal `json:"arsSum"`
}

// MethodSplit partitions spending between cash and card. Expenses have no
// card flag, so they always count as cash.
type MethodSplit struct {
	Cash decimal.Decimal `json:"cash"`
	Card decimal.Decimal `json:"card"`
}

// PurchaseCounts partitions budget items by purchase flag.
type PurchaseCounts struct {
	Purchased int `json:"purchased"`
	Pending   int `json:"pending"`
}

// TotalByCurrency sums expense amounts for one currency tag. No conversion is
// applied; this is a raw same-currency total.
func TotalByCurrency(expenses []*Expense, currency Currency) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		if expense.Currency == currency {
			total = total.Add(expense.Amount)
		}
	}
	return total
}

// TotalPayments sums all worker payments.
func TotalPayments(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}
	return total
}

// ExchangeTotals sums the USD bought and the ARS spent across all exchanges.
func ExchangeTotals(exchanges []*Exchange) ExchangeSums {
	sums := ExchangeSums{USDSum: decimal.Zero, ARSSum: decimal.Zero}
	for _, exchange := range exchanges {
		sums.USDSum = sums.USDSum.Add(exchange.USDAmount)
		sums.ARSSum = sums.ARSSum.Add(exchange.ARSAmount)
	}
	return sums
}

// CategoryRollup groups converted expense amounts by category and folds
// priced budget items into the bucket named by their budget's category.
// Items whose budget no longer exists are skipped. Rows come back sorted by
// total descending; ties keep first-seen order.
func CategoryRollup(snapshot *Snapshot, rate decimal.Decimal) []CategoryTotal {
	var order []string
	buckets := make(map[string]*CategoryTotal)

	bucket := func(category string) *CategoryTotal {
		if entry, ok := buckets[category]; ok {
			return entry
		}
		entry := &CategoryTotal{
			Category:        category,
			Total:           decimal.Zero,
			ExpenseSubtotal: decimal.Zero,
			BudgetSubtotal:  decimal.Zero,
		}
		buckets[category] = entry
		order = append(order, category)
		return entry
	}

	for _, expense := range snapshot.Expenses {
		amount := ToLocalCurrency(expense.Amount, expense.Currency, rate)
		entry := bucket(expense.Category)
		entry.ExpenseSubtotal = entry.ExpenseSubtotal.Add(amount)
		entry.Total = entry.Total.Add(amount)
	}

	categories := make(map[string]string, len(snapshot.Budgets))
	for _, budget := range snapshot.Budgets {
		categories[budget.ID] = budget.Category.DisplayName()
	}
	for _, item := range snapshot.BudgetItems {
		if !item.Purchased || item.ActualValue == nil {
			continue
		}
		category, ok := categories[item.BudgetID]
		if !ok {
			continue
		}
		entry := bucket(category)
		entry.BudgetSubtotal = entry.BudgetSubtotal.Add(*item.ActualValue)
		entry.Total = entry.Total.Add(*item.ActualValue)
	}

	rollup := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		rollup = append(rollup, *buckets[category])
	}
	sort.SliceStable(rollup, func(a, b int) bool {
		return rollup[a].Total.GreaterThan(rollup[b].Total)
	})
	return rollup
}

// GrandTotal is the headline ARS figure: ARS expenses plus worker payments
// plus priced budget item actuals. USD expenses are deliberately excluded;
// they only reach the rollup through conversion.
func GrandTotal(snapshot *Snapshot) decimal.Decimal {
	total := TotalByCurrency(snapshot.Expenses, CurrencyARS)
	total = total.Add(TotalPayments(snapshot.Payments))
	for _, item := range snapshot.BudgetItems {
		if item.Purchased && item.ActualValue != nil {
			total = total.Add(*item.ActualValue)
		}
	}
	return total
}

// PercentageOfTotal returns part/total*100, or zero when the total is zero.
func PercentageOfTotal(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100))
}

// MonthlySeries buckets converted expense amounts by calendar month of their
// date and adds priced budget item actuals by purchase date when one is
// recorded. Buckets come back sorted ascending by month key.
func MonthlySeries(snapshot *Snapshot, rate decimal.Decimal) []MonthTotal {
	buckets := make(map[string]decimal.Decimal)
	for _, expense := range snapshot.Expenses {
		key := expense.Date.Format("2006-01")
		buckets[key] = buckets[key].Add(ToLocalCurrency(expense.Amount, expense.Currency, rate))
	}
	for _, item := range snapshot.BudgetItems {
		if !item.Purchased || item.ActualValue == nil || item.PurchasedAt == nil {
			continue
		}
		key := item.PurchasedAt.Format("2006-01")
		buckets[key] = buckets[key].Add(*item.ActualValue)
	}

	series := make([]MonthTotal, 0, len(buckets))
	for month, total := range buckets {
		series = append(series, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(series, func(a, b int) bool {
		return series[a].Month < series[b].Month
	})
	return series
}

// PaymentMethodSplit partitions spending between cash and card. All expenses
// count as cash after conversion; priced budget items follow their card flag.
func PaymentMethodSplit(snapshot *Snapshot, rate decimal.Decimal) MethodSplit {
	split := MethodSplit{Cash: decimal.Zero, Card: decimal.Zero}
	for _, expense := range snapshot.Expenses {
		split.Cash = split.Cash.Add(ToLocalCurrency(expense.Amount, expense.Currency, rate))
	}
	for _, item := range snapshot.BudgetItems {
		if !item.Purchased || item.ActualValue == nil {
			continue
		}
		if item.PaidByCard {
			split.Card = split.Card.Add(*item.ActualValue)
		} else {
			split.Cash = split.Cash.Add(*item.ActualValue)
		}
	}
	return split
}

// PurchaseStateCounts counts budget items by purchase flag.
func PurchaseStateCounts(items []*BudgetItem) PurchaseCounts {
	counts := PurchaseCounts{}
	for _, item := range items {
		if item.Purchased {
			counts.Purchased++
		} else {
			counts.Pending++
		}
	}
	return counts
}
