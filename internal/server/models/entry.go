// Package models holds the records stored by the reference backend.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kbadmin/internal/common"
)

const (
	StatusCertified = "certified"
	StatusTraining  = "training"
)

// Entry is a stored knowledge entry. Its JSON form is the wire format of the
// /knowledgeEntries resource.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	TechName    string `json:"techName"`
	ProdTime    string `json:"prodTime"`
	Views       int    `json:"views"`
	Image       string `json:"image,omitempty"`
}

// Validate checks the fields the backend insists on.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if e.Status != StatusCertified && e.Status != StatusTraining {
		return fmt.Errorf("%w: status must be one of certified, training", common.ErrValidation)
	}
	return nil
}

// EntryPatch is a PUT body. Absent fields keep their stored value; id and
// createdAt are not patchable.
type EntryPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	TechName    *string `json:"techName"`
	ProdTime    *string `json:"prodTime"`
	Views       *int    `json:"views"`
	Image       *string `json:"image"`
}

// Apply merges p into e.
func (p *EntryPatch) Apply(e *Entry) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&e.Title, p.Title)
	set(&e.Description, p.Description)
	set(&e.Category, p.Category)
	set(&e.Status, p.Status)
	set(&e.TechName, p.TechName)
	set(&e.ProdTime, p.ProdTime)
	set(&e.Image, p.Image)
	if p.Views != nil {
		e.Views = *p.Views
	}
}
