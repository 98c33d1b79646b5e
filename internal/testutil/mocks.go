package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/obra-tracker/obra-backend/internal/domain"
)

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[string]*domain.Expense
	CreateFn func(expense *domain.Expense) (*domain.Expense, error)
	DeleteFn func(id string) error
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{Expenses: make(map[string]*domain.Expense)}
}

// Create stores a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	expense.ID = uuid.New().String()
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id string) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves expenses, optionally filtered by category, date descending
func (m *MockExpenseRepository) GetAll(category string) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for _, expense := range m.Expenses {
		if category == "" || expense.Category == category {
			expenses = append(expenses, expense)
		}
	}
	sort.Slice(expenses, func(a, b int) bool {
		return expenses[a].Date.After(expenses[b].Date)
	})
	return expenses, nil
}

// Update replaces the mutable fields of an expense
func (m *MockExpenseRepository) Update(id string, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	expense, ok := m.Expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	expense.Date = data.Date
	expense.Description = data.Description
	expense.Category = data.Category
	expense.Amount = data.Amount
	expense.Currency = data.Currency
	expense.UpdatedAt = time.Now()
	return expense, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	m.Expenses[expense.ID] = expense
}

// MockPaymentRepository is a mock implementation of domain.PaymentRepository
type MockPaymentRepository struct {
	Payments map[string]*domain.Payment
	CreateFn func(payment *domain.Payment) (*domain.Payment, error)
}

// NewMockPaymentRepository creates a new MockPaymentRepository
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{Payments: make(map[string]*domain.Payment)}
}

// Create stores a new payment
func (m *MockPaymentRepository) Create(payment *domain.Payment) (*domain.Payment, error) {
	if m.CreateFn != nil {
		return m.CreateFn(payment)
	}
	payment.ID = uuid.New().String()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	m.Payments[payment.ID] = payment
	return payment, nil
}

// GetByID retrieves a payment by ID
func (m *MockPaymentRepository) GetByID(id string) (*domain.Payment, error) {
	if payment, ok := m.Payments[id]; ok {
		return payment, nil
	}
	return nil, domain.ErrPaymentNotFound
}

// GetAll retrieves payments ordered by week descending
func (m *MockPaymentRepository) GetAll() ([]*domain.Payment, error) {
	var payments []*domain.Payment
	for _, payment := range m.Payments {
		payments = append(payments, payment)
	}
	sort.Slice(payments, func(a, b int) bool {
		return payments[a].Week > payments[b].Week
	})
	return payments, nil
}

// Update replaces the mutable fields of a payment
func (m *MockPaymentRepository) Update(id string, data *domain.UpdatePaymentData) (*domain.Payment, error) {
	payment, ok := m.Payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	payment.Week = data.Week
	payment.WorkerName = data.WorkerName
	payment.Amount = data.Amount
	payment.Notes = data.Notes
	payment.UpdatedAt = time.Now()
	return payment, nil
}

// Delete removes a payment
func (m *MockPaymentRepository) Delete(id string) error {
	if _, ok := m.Payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(m.Payments, id)
	return nil
}

// AddPayment adds a payment to the mock repository (helper for tests)
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	m.Payments[payment.ID] = payment
}

// MockExchangeRepository is a mock implementation of domain.ExchangeRepository
type MockExchangeRepository struct {
	Exchanges map[string]*domain.Exchange
	CreateFn  func(exchange *domain.Exchange) (*domain.Exchange, error)
}

// NewMockExchangeRepository creates a new MockExchangeRepository
func NewMockExchangeRepository() *MockExchangeRepository {
	return &MockExchangeRepository{Exchanges: make(map[string]*domain.Exchange)}
}

// Create stores a new exchange
func (m *MockExchangeRepository) Create(exchange *domain.Exchange) (*domain.Exchange, error) {
	if m.CreateFn != nil {
		return m.CreateFn(exchange)
	}
	exchange.ID = uuid.New().String()
	exchange.CreatedAt = time.Now()
	exchange.UpdatedAt = exchange.CreatedAt
	m.Exchanges[exchange.ID] = exchange
	return exchange, nil
}

// GetByID retrieves an exchange by ID
func (m *MockExchangeRepository) GetByID(id string) (*domain.Exchange, error) {
	if exchange, ok := m.Exchanges[id]; ok {
		return exchange, nil
	}
	return nil, domain.ErrExchangeNotFound
}

// GetAll retrieves exchanges ordered by date descending
func (m *MockExchangeRepository) GetAll() ([]*domain.Exchange, error) {
	var exchanges []*domain.Exchange
	for _, exchange := range m.Exchanges {
		exchanges = append(exchanges, exchange)
	}
	sort.Slice(exchanges, func(a, b int) bool {
		return exchanges[a].Date.After(exchanges[b].Date)
	})
	return exchanges, nil
}

// Update replaces the mutable fields of an exchange
func (m *MockExchangeRepository) Update(id string, data *domain.UpdateExchangeData) (*domain.Exchange, error) {
	exchange, ok := m.Exchanges[id]
	if !ok {
		return nil, domain.ErrExchangeNotFound
	}
	exchange.Date = data.Date
	exchange.USDAmount = data.USDAmount
	exchange.Rate = data.Rate
	exchange.ARSAmount = data.ARSAmount
	exchange.UpdatedAt = time.Now()
	return exchange, nil
}

// Delete removes an exchange
func (m *MockExchangeRepository) Delete(id string) error {
	if _, ok := m.Exchanges[id]; !ok {
		return domain.ErrExchangeNotFound
	}
	delete(m.Exchanges, id)
	return nil
}

// AddExchange adds an exchange to the mock repository (helper for tests)
func (m *MockExchangeRepository) AddExchange(exchange *domain.Exchange) {
	if exchange.ID == "" {
		exchange.ID = uuid.New().String()
	}
	m.Exchanges[exchange.ID] = exchange
}

// MockProgressRepository is a mock implementation of domain.ProgressRepository
type MockProgressRepository struct {
	Entries  map[string]*domain.Progress
	CreateFn func(progress *domain.Progress) (*domain.Progress, error)
}

// NewMockProgressRepository creates a new MockProgressRepository
func NewMockProgressRepository() *MockProgressRepository {
	return &MockProgressRepository{Entries: make(map[string]*domain.Progress)}
}

// Create stores a new progress entry
func (m *MockProgressRepository) Create(progress *domain.Progress) (*domain.Progress, error) {
	if m.CreateFn != nil {
		return m.CreateFn(progress)
	}
	progress.ID = uuid.New().String()
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = progress.CreatedAt
	m.Entries[progress.ID] = progress
	return progress, nil
}

// GetByID retrieves a progress entry by ID
func (m *MockProgressRepository) GetByID(id string) (*domain.Progress, error) {
	if progress, ok := m.Entries[id]; ok {
		return progress, nil
	}
	return nil, domain.ErrProgressNotFound
}

// GetAll retrieves progress entries ordered by date descending
func (m *MockProgressRepository) GetAll() ([]*domain.Progress, error) {
	var entries []*domain.Progress
	for _, progress := range m.Entries {
		entries = append(entries, progress)
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Date.After(entries[b].Date)
	})
	return entries, nil
}

// Update replaces the mutable fields of a progress entry
func (m *MockProgressRepository) Update(id string, data *domain.UpdateProgressData) (*domain.Progress, error) {
	progress, ok := m.Entries[id]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	progress.Date = data.Date
	progress.Description = data.Description
	progress.Percentage = data.Percentage
	progress.UpdatedAt = time.Now()
	return progress, nil
}

// Delete removes a progress entry
func (m *MockProgressRepository) Delete(id string) error {
	if _, ok := m.Entries[id]; !ok {
		return domain.ErrProgressNotFound
	}
	delete(m.Entries, id)
	return nil
}

// AddProgress adds a progress entry to the mock repository (helper for tests)
func (m *MockProgressRepository) AddProgress(progress *domain.Progress) {
	if progress.ID == "" {
		progress.ID = uuid.New().String()
	}
	m.Entries[progress.ID] = progress
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets  map[string]*domain.Budget
	DeleteFn func(id string) error
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[string]*domain.Budget)}
}

// Create stores a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	budget.ID = uuid.New().String()
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(id string) (*domain.Budget, error) {
	if budget, ok := m.Budgets[id]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetAll retrieves all budgets ordered by name
func (m *MockBudgetRepository) GetAll() ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, budget := range m.Budgets {
		budgets = append(budgets, budget)
	}
	sort.Slice(budgets, func(a, b int) bool {
		return budgets[a].Name < budgets[b].Name
	})
	return budgets, nil
}

// Update replaces the mutable fields of a budget
func (m *MockBudgetRepository) Update(id string, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	budget.Name = data.Name
	budget.Category = data.Category
	budget.Description = data.Description
	budget.UpdatedAt = time.Now()
	return budget, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	m.Budgets[budget.ID] = budget
}

// MockBudgetItemRepository is a mock implementation of domain.BudgetItemRepository
type MockBudgetItemRepository struct {
	Items    map[string]*domain.BudgetItem
	DeleteFn func(id string) error
}

// NewMockBudgetItemRepository creates a new MockBudgetItemRepository
func NewMockBudgetItemRepository() *MockBudgetItemRepository {
	return &MockBudgetItemRepository{Items: make(map[string]*domain.BudgetItem)}
}

// Create stores a new budget item
func (m *MockBudgetItemRepository) Create(item *domain.BudgetItem) (*domain.BudgetItem, error) {
	item.ID = uuid.New().String()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.Items[item.ID] = item
	return item, nil
}

// GetByID retrieves a budget item by ID
func (m *MockBudgetItemRepository) GetByID(id string) (*domain.BudgetItem, error) {
	if item, ok := m.Items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrBudgetItemNotFound
}

// GetAll retrieves all budget items
func (m *MockBudgetItemRepository) GetAll() ([]*domain.BudgetItem, error) {
	var items []*domain.BudgetItem
	for _, item := range m.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].Name < items[b].Name
	})
	return items, nil
}

// GetByBudget retrieves the items belonging to one budget
func (m *MockBudgetItemRepository) GetByBudget(budgetID string) ([]*domain.BudgetItem, error) {
	var items []*domain.BudgetItem
	for _, item := range m.Items {
		if item.BudgetID == budgetID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].Name < items[b].Name
	})
	return items, nil
}

// Update stores the full state of a budget item
func (m *MockBudgetItemRepository) Update(id string, item *domain.BudgetItem) (*domain.BudgetItem, error) {
	if _, ok := m.Items[id]; !ok {
		return nil, domain.ErrBudgetItemNotFound
	}
	item.ID = id
	item.UpdatedAt = time.Now()
	m.Items[id] = item
	return item, nil
}

// Delete removes a budget item
func (m *MockBudgetItemRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Items[id]; !ok {
		return domain.ErrBudgetItemNotFound
	}
	delete(m.Items, id)
	return nil
}

// AddItem adds a budget item to the mock repository (helper for tests)
func (m *MockBudgetItemRepository) AddItem(item *domain.BudgetItem) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	m.Items[item.ID] = item
}
