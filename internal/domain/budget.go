package domain

import "time"

// BudgetCategory is the room/area a budget belongs to. Purchased items of a
// budget roll up into the expense category named by DisplayName.
type BudgetCategory string

const (
	BudgetCategoryBathroom      BudgetCategory = "bathroom"
	BudgetCategoryKitchen       BudgetCategory = "kitchen"
	BudgetCategoryBedroom       BudgetCategory = "bedroom"
	BudgetCategoryLivingRoom    BudgetCategory = "living_room"
	BudgetCategoryExterior      BudgetCategory = "exterior"
	BudgetCategoryStructure     BudgetCategory = "structure"
	BudgetCategoryInstallations BudgetCategory = "installations"
	BudgetCategoryFinishes      BudgetCategory = "finishes"
	BudgetCategoryOther         BudgetCategory = "other"
)

// budgetCategoryNames maps each budget category to the display name used as
// the rollup key shared with expense categories.
var budgetCategoryNames = map[BudgetCategory]string{
	BudgetCategoryBathroom:      "Bathroom",
	BudgetCategoryKitchen:       "Kitchen",
	BudgetCategoryBedroom:       "Bedroom",
	BudgetCategoryLivingRoom:    "Living Room",
	BudgetCategoryExterior:      "Exterior",
	BudgetCategoryStructure:     "Structure",
	BudgetCategoryInstallations: "Installations",
	BudgetCategoryFinishes:      "Finishes",
	BudgetCategoryOther:         "Other",
}

// Valid reports whether the category is a known room/area type.
func (c BudgetCategory) Valid() bool {
	_, ok := budgetCategoryNames[c]
	return ok
}

// DisplayName returns the rollup key for the category. Unknown categories
// fall back to the raw value so stale data still groups somewhere.
func (c BudgetCategory) DisplayName() string {
	if name, ok := budgetCategoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Budget groups planned purchase line items for one room or area.
// Deleting a budget cascades to all of its items.
type Budget struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    BudgetCategory `json:"category"`
	Description *string        `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// UpdateBudgetData carries the mutable fields of a budget update.
type UpdateBudgetData struct {
	Name        string
	Category    BudgetCategory
	Description *string
}

// BudgetRepository provides access to the budgets collection. Cascade order
// is enforced above the repository: items are deleted first and the budget
// last, so a failed item deletion always leaves the budget in place.
type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(id string) (*Budget, error)
	GetAll() ([]*Budget, error)
	Update(id string, data *UpdateBudgetData) (*Budget, error)
	Delete(id string) error
}
