package domain

// ExportBundle is the backup document produced by export and accepted by
// import. Missing arrays decode as nil and are treated as empty; import is
// additive and never replaces existing records.
type ExportBundle struct {
	Expenses   []*Expense  `json:"expenses"`
	Payments   []*Payment  `json:"payments"`
	Exchanges  []*Exchange `json:"exchanges"`
	Progress   []*Progress `json:"progress"`
	ExportDate string      `json:"exportDate"`
	Source     string      `json:"source"`
}
