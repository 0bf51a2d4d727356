package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a sort direction to "ASC" or "DESC".
// Anything that is not a case-insensitive "asc" falls back to "DESC",
// so the value is always safe to interpolate into an ORDER BY clause.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks a requested sort column against a whitelist.
// Unknown, empty, or otherwise suspicious input yields defaultField.
// Matching is case-sensitive: whitelists hold lowercase column names.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// withBaseColumns builds a whitelist from the shared base columns plus
// the entity-specific ones.
func withBaseColumns(columns ...string) map[string]bool {
	fields := make(map[string]bool, len(CommonSortFields)+len(columns))
	for col := range CommonSortFields {
		fields[col] = true
	}
	for _, col := range columns {
		fields[col] = true
	}
	return fields
}

// CommonSortFields holds the columns every persisted entity carries.
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// Per-entity sort whitelists. Repositories pass these to
// ValidateSortField so list endpoints can only order by real columns.
var (
	BookSortFields = withBaseColumns(
		"title", "isbn", "category_id", "status",
		"price", "final_price", "stock_quantity", "sold_quantity",
		"avg_stars", "total_reviews",
	)

	AuthorSortFields   = withBaseColumns("name", "status")
	CategorySortFields = withBaseColumns("name", "status")

	UserSortFields = withBaseColumns(
		"email", "full_name", "role", "status", "last_login_at",
	)

	OrderSortFields = withBaseColumns(
		"user_id", "status", "total_price", "full_name",
	)

	ReviewSortFields = withBaseColumns("book_id", "user_id", "stars")

	SupplierSortFields = withBaseColumns("name", "email", "status")

	StockEntrySortFields = withBaseColumns(
		"book_id", "supplier_id", "type", "quantity", "unit_cost",
	)

	ConversationSortFields = withBaseColumns("customer_id", "last_message_at")
)
