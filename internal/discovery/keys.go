package discovery

import "strings"

// KeyFunc derives a registry key from a category's short type name.
type KeyFunc func(shortName string) string

// CategorySuffix is stripped from type names by DefaultKeyFunc.
const CategorySuffix = "Category"

// DefaultKeyFunc strips a trailing "Category" and lower-cases the rest:
// "UsersCategory" becomes "users".
func DefaultKeyFunc(shortName string) string {
	return strings.ToLower(strings.TrimSuffix(shortName, CategorySuffix))
}
