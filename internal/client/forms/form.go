// Package forms turns raw console input into validated entry payloads. It
// backs both the create and the edit form, which share one category list
// and the certified/training status set.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/dmitrijs2005/kbadmin/internal/common"
	"github.com/go-playground/validator/v10"
)

// DefaultCategories is used when the configuration names none.
var DefaultCategories = []string{"Auto-Mobiles", "Lathe"}

// Form holds the raw field values as typed by the user.
type Form struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
	Status      string `validate:"required,oneof=certified training"`
	TechName    string `validate:"required"`
	ProdMinutes string `validate:"required,number"`
	// CoverPath is optional and only ever previewed.
	CoverPath string `validate:"omitempty,file"`
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// Errors is returned by Validate. It matches common.ErrValidation.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool {
	return target == common.ErrValidation
}

// Field returns the message for field, or "".
func (e Errors) Field(name string) string {
	for _, fe := range e {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// labels maps struct fields to the names shown to users.
var labels = map[string]string{
	"Title":       "title",
	"Description": "description",
	"Category":    "category",
	"Status":      "status",
	"TechName":    "technician",
	"ProdMinutes": "production time",
	"CoverPath":   "cover image",
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
		Status:      strings.ToLower(strings.TrimSpace(f.Status)),
		TechName:    strings.TrimSpace(f.TechName),
		ProdMinutes: strings.TrimSpace(f.ProdMinutes),
		CoverPath:   strings.TrimSpace(f.CoverPath),
	}
}

// Validate checks every field and builds the create payload. categories is
// the allowed category list; an empty list means DefaultCategories.
func (f Form) Validate(categories []string) (models.EntryInput, error) {
	f = f.Trimmed()
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	var errs Errors
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.EntryInput{}, fmt.Errorf("validate form: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{Field: labels[fe.Field()], Message: describe(fe)})
		}
	}

	if f.Category != "" && !contains(categories, f.Category) {
		errs = append(errs, FieldError{
			Field:   labels["Category"],
			Message: "must be one of " + strings.Join(categories, ", "),
		})
	}

	minutes, convErr := strconv.Atoi(f.ProdMinutes)
	if f.ProdMinutes != "" && errs.Field(labels["ProdMinutes"]) == "" {
		if convErr != nil || minutes < MinProdMinutes || minutes > MaxProdMinutes {
			errs = append(errs, FieldError{
				Field:   labels["ProdMinutes"],
				Message: fmt.Sprintf("must be a whole number of minutes between %d and %d", MinProdMinutes, MaxProdMinutes),
			})
		}
	}

	if len(errs) > 0 {
		return models.EntryInput{}, errs
	}

	return models.EntryInput{
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Status:      models.Status(f.Status),
		TechName:    f.TechName,
		ProdTime:    FormatProdTime(minutes),
	}, nil
}

// FromEntry pre-fills an edit form. A prodTime without a leading number
// leaves the minutes empty.
func FromEntry(e models.KnowledgeEntry) Form {
	f := Form{
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Status:      string(e.Status),
		TechName:    e.TechName,
	}
	if n, ok := ParseProdTime(e.ProdTime); ok {
		f.ProdMinutes = strconv.Itoa(n)
	}
	return f
}

// Diff returns a patch with the fields of in that differ from cur.
func Diff(cur models.KnowledgeEntry, in models.EntryInput) models.EntryPatch {
	var p models.EntryPatch
	if in.Title != cur.Title {
		p.Title = &in.Title
	}
	if in.Description != cur.Description {
		p.Description = &in.Description
	}
	if in.Category != cur.Category {
		p.Category = &in.Category
	}
	if in.Status != cur.Status {
		p.Status = &in.Status
	}
	if in.TechName != cur.TechName {
		p.TechName = &in.TechName
	}
	if in.ProdTime != cur.ProdTime {
		p.ProdTime = &in.ProdTime
	}
	return p
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "number":
		return fmt.Sprintf("must be a whole number of minutes between %d and %d", MinProdMinutes, MaxProdMinutes)
	case "file":
		return "file does not exist"
	}
	return "is invalid"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
