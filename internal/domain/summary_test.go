package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestTotalByCurrency(t *testing.T) {
	expenses := []*Expense{
		{Amount: dec(100), Currency: CurrencyARS},
		{Amount: dec(50), Currency: CurrencyUSD},
	}

	if got := TotalByCurrency(expenses, CurrencyARS); !got.Equal(dec(100)) {
		t.Errorf("expected ARS total 100, got %s", got.String())
	}
	if got := TotalByCurrency(expenses, CurrencyUSD); !got.Equal(dec(50)) {
		t.Errorf("expected USD total 50, got %s", got.String())
	}
}

func TestTotalByCurrency_Empty(t *testing.T) {
	if got := TotalByCurrency(nil, CurrencyARS); !got.IsZero() {
		t.Errorf("expected zero total, got %s", got.String())
	}
}

func TestTotalPayments(t *testing.T) {
	payments := []*Payment{
		{Amount: dec(15000)},
		{Amount: dec(25000)},
	}
	if got := TotalPayments(payments); !got.Equal(dec(40000)) {
		t.Errorf("expected 40000, got %s", got.String())
	}
}

func TestExchangeTotals(t *testing.T) {
	exchanges := []*Exchange{
		{USDAmount: dec(100), ARSAmount: dec(95000)},
		{USDAmount: dec(200), ARSAmount: dec(210000)},
	}
	sums := ExchangeTotals(exchanges)
	if !sums.USDSum.Equal(dec(300)) {
		t.Errorf("expected USD sum 300, got %s", sums.USDSum.String())
	}
	if !sums.ARSSum.Equal(dec(305000)) {
		t.Errorf("expected ARS sum 305000, got %s", sums.ARSSum.String())
	}
}

func TestCategoryRollup_SortedDescending(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Category: "A", Amount: dec(300), Currency: CurrencyARS},
			{Category: "B", Amount: dec(500), Currency: CurrencyARS},
			{Category: "C", Amount: dec(100), Currency: CurrencyARS},
		},
	}

	rollup := CategoryRollup(snapshot, dec(1000))
	if len(rollup) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rollup))
	}
	expected := []struct {
		category string
		total    int64
	}{{"B", 500}, {"A", 300}, {"C", 100}}
	for i, want := range expected {
		if rollup[i].Category != want.category {
			t.Errorf("row %d: expected category %s, got %s", i, want.category, rollup[i].Category)
		}
		if !rollup[i].Total.Equal(dec(want.total)) {
			t.Errorf("row %d: expected total %d, got %s", i, want.total, rollup[i].Total.String())
		}
	}
}

func TestCategoryRollup_ConvertsUSD(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Category: "Materials", Amount: dec(10), Currency: CurrencyUSD},
			{Category: "Materials", Amount: dec(500), Currency: CurrencyARS},
		},
	}

	rollup := CategoryRollup(snapshot, dec(1000))
	if len(rollup) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rollup))
	}
	if !rollup[0].Total.Equal(dec(10500)) {
		t.Errorf("expected converted total 10500, got %s", rollup[0].Total.String())
	}
	if !rollup[0].ExpenseSubtotal.Equal(dec(10500)) {
		t.Errorf("expected expense subtotal 10500, got %s", rollup[0].ExpenseSubtotal.String())
	}
}

func TestCategoryRollup_IncludesPricedBudgetItems(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Category: "Kitchen", Amount: dec(1000), Currency: CurrencyARS},
		},
		Budgets: []*Budget{
			{ID: "b1", Category: BudgetCategoryKitchen},
		},
		BudgetItems: []*BudgetItem{
			{BudgetID: "b1", Purchased: true, ActualValue: decPtr(2000)},
			{BudgetID: "b1", Purchased: true},             // pending price, excluded
			{BudgetID: "b1", Purchased: false},            // planned, excluded
			{BudgetID: "gone", Purchased: true, ActualValue: decPtr(999)}, // orphan, excluded
		},
	}

	rollup := CategoryRollup(snapshot, dec(1000))
	if len(rollup) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rollup))
	}
	row := rollup[0]
	if row.Category != "Kitchen" {
		t.Errorf("expected category Kitchen, got %s", row.Category)
	}
	if !row.Total.Equal(dec(3000)) {
		t.Errorf("expected total 3000, got %s", row.Total.String())
	}
	if !row.ExpenseSubtotal.Equal(dec(1000)) {
		t.Errorf("expected expense subtotal 1000, got %s", row.ExpenseSubtotal.String())
	}
	if !row.BudgetSubtotal.Equal(dec(2000)) {
		t.Errorf("expected budget subtotal 2000, got %s", row.BudgetSubtotal.String())
	}
}

func TestCategoryRollup_TiesKeepFirstSeenOrder(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Category: "First", Amount: dec(200), Currency: CurrencyARS},
			{Category: "Second", Amount: dec(200), Currency: CurrencyARS},
		},
	}

	rollup := CategoryRollup(snapshot, dec(1000))
	if rollup[0].Category != "First" || rollup[1].Category != "Second" {
		t.Errorf("expected stable tie order [First Second], got [%s %s]", rollup[0].Category, rollup[1].Category)
	}
}

func TestCategoryRollup_Empty(t *testing.T) {
	rollup := CategoryRollup(&Snapshot{}, dec(1000))
	if len(rollup) != 0 {
		t.Errorf("expected empty rollup, got %d rows", len(rollup))
	}
}

func TestGrandTotal_ExcludesUSDExpenses(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Amount: dec(1000), Currency: CurrencyARS},
			{Amount: dec(50), Currency: CurrencyUSD},
		},
		Payments: []*Payment{
			{Amount: dec(500)},
		},
		BudgetItems: []*BudgetItem{
			{Purchased: true, ActualValue: decPtr(300)},
			{Purchased: true},  // pending price, contributes nothing
			{Purchased: false}, // planned, contributes nothing
		},
	}

	// 1000 ARS + 500 payments + 300 priced actuals; the 50 USD stay out.
	if got := GrandTotal(snapshot); !got.Equal(dec(1800)) {
		t.Errorf("expected grand total 1800, got %s", got.String())
	}
}

func TestGrandTotal_Empty(t *testing.T) {
	if got := GrandTotal(&Snapshot{}); !got.IsZero() {
		t.Errorf("expected zero grand total, got %s", got.String())
	}
}

func TestPercentageOfTotal(t *testing.T) {
	got := PercentageOfTotal(dec(500), dec(2000))
	if !got.Equal(dec(25)) {
		t.Errorf("expected 25, got %s", got.String())
	}
}

func TestPercentageOfTotal_ZeroDenominator(t *testing.T) {
	got := PercentageOfTotal(dec(500), decimal.Zero)
	if !got.IsZero() {
		t.Errorf("expected 0 for zero denominator, got %s", got.String())
	}
}

func TestMonthlySeries(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), Amount: dec(100), Currency: CurrencyARS},
			{Date: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), Amount: dec(10), Currency: CurrencyUSD},
			{Date: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), Amount: dec(50), Currency: CurrencyARS},
		},
		BudgetItems: []*BudgetItem{
			{Purchased: true, ActualValue: decPtr(700), PurchasedAt: datePtr(2024, time.February, 1)},
			{Purchased: true, ActualValue: decPtr(900)}, // no purchase date, excluded
		},
	}

	series := MonthlySeries(snapshot, dec(1000))
	if len(series) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(series))
	}
	expected := []struct {
		month string
		total int64
	}{{"2024-01", 10000}, {"2024-02", 700}, {"2024-03", 150}}
	for i, want := range expected {
		if series[i].Month != want.month {
			t.Errorf("bucket %d: expected month %s, got %s", i, want.month, series[i].Month)
		}
		if !series[i].Total.Equal(dec(want.total)) {
			t.Errorf("bucket %d: expected total %d, got %s", i, want.total, series[i].Total.String())
		}
	}
}

func TestPaymentMethodSplit(t *testing.T) {
	snapshot := &Snapshot{
		Expenses: []*Expense{
			{Amount: dec(1000), Currency: CurrencyARS},
			{Amount: dec(10), Currency: CurrencyUSD},
		},
		BudgetItems: []*BudgetItem{
			{Purchased: true, ActualValue: decPtr(500), PaidByCard: true},
			{Purchased: true, ActualValue: decPtr(200), PaidByCard: false},
			{Purchased: true, PaidByCard: true}, // pending price, excluded
		},
	}

	split := PaymentMethodSplit(snapshot, dec(1000))
	if !split.Cash.Equal(dec(11200)) {
		t.Errorf("expected cash 11200, got %s", split.Cash.String())
	}
	if !split.Card.Equal(dec(500)) {
		t.Errorf("expected card 500, got %s", split.Card.String())
	}
}

func TestPurchaseStateCounts(t *testing.T) {
	items := []*BudgetItem{
		{Purchased: true},
		{Purchased: true},
		{Purchased: false},
	}
	counts := PurchaseStateCounts(items)
	if counts.Purchased != 2 || counts.Pending != 1 {
		t.Errorf("expected 2 purchased / 1 pending, got %d / %d", counts.Purchased, counts.Pending)
	}
}

func TestAggregations_EmptySnapshot(t *testing.T) {
	snapshot := &Snapshot{}
	rate := AverageRate(snapshot.Exchanges)

	if !TotalByCurrency(snapshot.Expenses, CurrencyARS).IsZero() {
		t.Error("expected zero ARS total")
	}
	if !TotalPayments(snapshot.Payments).IsZero() {
		t.Error("expected zero payment total")
	}
	sums := ExchangeTotals(snapshot.Exchanges)
	if !sums.USDSum.IsZero() || !sums.ARSSum.IsZero() {
		t.Error("expected zero exchange sums")
	}
	if rows := CategoryRollup(snapshot, rate); len(rows) != 0 {
		t.Error("expected empty rollup")
	}
	if series := MonthlySeries(snapshot, rate); len(series) != 0 {
		t.Error("expected empty series")
	}
	split := PaymentMethodSplit(snapshot, rate)
	if !split.Cash.IsZero() || !split.Card.IsZero() {
		t.Error("expected zero method split")
	}
	counts := PurchaseStateCounts(snapshot.BudgetItems)
	if counts.Purchased != 0 || counts.Pending != 0 {
		t.Error("expected zero purchase counts")
	}
}
