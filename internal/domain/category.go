package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("domain: invalid license category")

// Category is a driving license category shared by courses, resources and instructor licenses
type Category string

const (
	CategoryAM  Category = "AM"
	CategoryA1  Category = "A1"
	CategoryA2  Category = "A2"
	CategoryA   Category = "A"
	CategoryB1  Category = "B1"
	CategoryB   Category = "B"
	CategoryC1  Category = "C1"
	CategoryC   Category = "C"
	CategoryD1  Category = "D1"
	CategoryD   Category = "D"
	CategoryBE  Category = "BE"
	CategoryC1E Category = "C1E"
	CategoryCE  Category = "CE"
	CategoryD1E Category = "D1E"
	CategoryDE  Category = "DE"
)

// AllCategories in canonical order
var AllCategories = []Category{
	CategoryAM, CategoryA1, CategoryA2, CategoryA,
	CategoryB1, CategoryB, CategoryC1, CategoryC,
	CategoryD1, CategoryD, CategoryBE, CategoryC1E,
	CategoryCE, CategoryD1E, CategoryDE,
}

// ParseCategory validates a category tag, case-insensitive
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// CourseType separates classroom theory from behind-the-wheel practice
type CourseType string

const (
	CourseTheory   CourseType = "THEORY"
	CoursePractice CourseType = "PRACTICE"
)

var ErrInvalidCourseType = errors.New("domain: invalid course type")

// ParseCourseType validates a course type at the boundary
func ParseCourseType(s string) (CourseType, error) {
	t := CourseType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case CourseTheory, CoursePractice:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCourseType, s)
}
