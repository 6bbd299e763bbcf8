package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Course struct {
	ID             string
	Title          string
	Description    string
	Category       string
	InstructorName string
	// Price in the main currency unit.
	Price      decimal.Decimal
	IsEnrolled bool
}

type CourseFilter struct {
	Term     string
	Category string
}

// NewCourse is what the professor dashboard submits.
type NewCourse struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
}

func (c NewCourse) Validate() error {
	switch {
	case strings.TrimSpace(c.Title) == "":
		return validationError("title is required")
	case strings.TrimSpace(c.Category) == "":
		return validationError("category is required")
	case c.Price.IsNegative():
		return validationError("price must not be negative")
	}
	return nil
}
