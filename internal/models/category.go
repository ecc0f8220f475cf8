package models

// CategoryType mirrors domain.CategoryType at the storage layer.
type CategoryType string

// Category represents a row in the categories table.
type Category struct {
	CategoryID   string       `db:"category_id"`
	UserID       string       `db:"user_id"`
	Name         string       `db:"name"`
	CategoryType CategoryType `db:"category_type"`
	Icon         string       `db:"icon"`
	Color        string       `db:"color"`
	IsActive     bool         `db:"is_active"`
	AuditFields
}
