package domain

import (
	"fmt"
	"slices"
	"strings"
)

// LicenseSet is the canonical set of categories an instructor may teach
type LicenseSet []Category

// ParseLicenseSet parses "b, BE,c" into a sorted, de-duplicated set.
// Unknown tags fail the whole set.
func ParseLicenseSet(raw string) (LicenseSet, error) {
	var set LicenseSet
	for _, token := range strings.Split(raw, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		c, err := ParseCategory(token)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(set, c) {
			set = append(set, c)
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: empty license set", ErrInvalidCategory)
	}

	slices.SortFunc(set, func(a, b Category) int {
		return slices.Index(AllCategories, a) - slices.Index(AllCategories, b)
	})
	return set, nil
}

// Contains reports whether the set holds the category, case-insensitive
func (s LicenseSet) Contains(c Category) bool {
	for _, item := range s {
		if strings.EqualFold(string(item), string(c)) {
			return true
		}
	}
	return false
}

// String renders the canonical comma separated form ("B,BE,C")
func (s LicenseSet) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
