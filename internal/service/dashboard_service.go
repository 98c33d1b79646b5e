package service

import (
	"github.com/obra-tracker/obra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// DashboardService assembles the record snapshot and runs the aggregation
// engine over it. All derivation is pure; the service only fetches.
type DashboardService struct {
	expenseRepo  domain.ExpenseRepository
	paymentRepo  domain.PaymentRepository
	exchangeRepo domain.ExchangeRepository
	budgetRepo   domain.BudgetRepository
	itemRepo     domain.BudgetItemRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	expenseRepo domain.ExpenseRepository,
	paymentRepo domain.PaymentRepository,
	exchangeRepo domain.ExchangeRepository,
	budgetRepo domain.BudgetRepository,
	itemRepo domain.BudgetItemRepository,
) *DashboardService {
	return &DashboardService{
		expenseRepo:  expenseRepo,
		paymentRepo:  paymentRepo,
		exchangeRepo: exchangeRepo,
		budgetRepo:   budgetRepo,
		itemRepo:     itemRepo,
	}
}

// CategoryRow is one category rollup entry with its share of the grand total.
type CategoryRow struct {
	Category        string
	Total           decimal.Decimal
	ExpenseSubtotal decimal.Decimal
	BudgetSubtotal  decimal.Decimal
	Percentage      decimal.Decimal
}

// DashboardSummary contains every figure the dashboard renders.
type DashboardSummary struct {
	TotalExpensesARS decimal.Decimal
	TotalExpensesUSD decimal.Decimal
	TotalPayments    decimal.Decimal
	ExchangeTotals   domain.ExchangeSums
	AverageRate      decimal.Decimal
	GrandTotal       decimal.Decimal
	Categories       []CategoryRow
	MonthlySeries    []domain.MonthTotal
	MethodSplit      domain.MethodSplit
	PurchaseCounts   domain.PurchaseCounts
}

// LoadSnapshot fetches the current state of every collection.
func (s *DashboardService) LoadSnapshot() (*domain.Snapshot, error) {
	expenses, err := s.expenseRepo.GetAll("")
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.GetAll()
	if err != nil {
		return nil, err
	}
	exchanges, err := s.exchangeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.GetAll()
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Expenses:    expenses,
		Payments:    payments,
		Exchanges:   exchanges,
		Budgets:     budgets,
		BudgetItems: items,
	}, nil
}

// GetSummary computes the full dashboard summary from the current snapshot.
func (s *DashboardService) GetSummary() (*DashboardSummary, error) {
	snapshot, err := s.LoadSnapshot()
	if err != nil {
		return nil, err
	}
	return Summarize(snapshot), nil
}

// Summarize derives the dashboard figures from a snapshot. Split out from
// GetSummary so it can be exercised without repositories.
func Summarize(snapshot *domain.Snapshot) *DashboardSummary {
	rate := domain.AverageRate(snapshot.Exchanges)
	grandTotal := domain.GrandTotal(snapshot)

	rollup := domain.CategoryRollup(snapshot, rate)
	categories := make([]CategoryRow, len(rollup))
	for i, row := range rollup {
		categories[i] = CategoryRow{
			Category:        row.Category,
			Total:           row.Total,
			ExpenseSubtotal: row.ExpenseSubtotal,
			BudgetSubtotal:  row.BudgetSubtotal,
			Percentage:      domain.PercentageOfTotal(row.Total, grandTotal),
		}
	}

	return &DashboardSummary{
		TotalExpensesARS: domain.TotalByCurrency(snapshot.Expenses, domain.CurrencyARS),
		TotalExpensesUSD: domain.TotalByCurrency(snapshot.Expenses, domain.CurrencyUSD),
		TotalPayments:    domain.TotalPayments(snapshot.Payments),
		ExchangeTotals:   domain.ExchangeTotals(snapshot.Exchanges),
		AverageRate:      rate,
		GrandTotal:       grandTotal,
		Categories:       categories,
		MonthlySeries:    domain.MonthlySeries(snapshot, rate),
		MethodSplit:      domain.PaymentMethodSplit(snapshot, rate),
		PurchaseCounts:   domain.PurchaseStateCounts(snapshot.BudgetItems),
	}
}
