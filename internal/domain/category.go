package domain

import (
	"fmt"
	"strings"
)

// Category is a closed classification label attached to an entry.
type Category string

const (
	CategorySalary    Category = "salary"
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryHousing   Category = "housing"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryLeisure   Category = "leisure"
	CategoryOther     Category = "other"
)

var categories = map[Category]bool{
	CategorySalary:    true,
	CategoryFood:      true,
	CategoryTransport: true,
	CategoryHousing:   true,
	CategoryHealth:    true,
	CategoryEducation: true,
	CategoryLeisure:   true,
	CategoryOther:     true,
}

// ParseCategory canonicalizes a caller-supplied category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !categories[c] {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Categories returns the closed set of valid categories.
func Categories() []Category {
	return []Category{
		CategorySalary,
		CategoryFood,
		CategoryTransport,
		CategoryHousing,
		CategoryHealth,
		CategoryEducation,
		CategoryLeisure,
		CategoryOther,
	}
}
