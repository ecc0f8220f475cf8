package domain

// CategoryType marks a category as classifying income or expense transactions.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// ValidCategoryType reports whether t is one of the declared category types.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category represents a user-curated transaction classification.
// Soft-deleted the same way as Account.
type Category struct {
	CategoryID   string       `json:"categoryID"`
	UserID       string       `json:"userID"`
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"type"`
	Icon         string       `json:"icon,omitempty"`
	Color        string       `json:"color,omitempty"`
	IsActive     bool         `json:"isActive"`
	AuditFields
}
