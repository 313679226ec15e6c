// Package models defines the knowledge-entry types exchanged with the REST
// backend and held by the console store.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kbadmin/internal/common"
)

// Status classifies an entry as certified or still in training.
type Status string

const (
	StatusCertified Status = "certified"
	StatusTraining  Status = "training"
)

// Statuses lists the accepted values in display order.
var Statuses = []Status{StatusCertified, StatusTraining}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: status must be one of certified, training, got %q", common.ErrValidation, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	return s == StatusCertified || s == StatusTraining
}

// KnowledgeEntry is one record of the knowledge base.
//
// ID and CreatedAt are fixed at creation. Views is owned by the server.
// Image is only ever read; create and update payloads never carry it.
type KnowledgeEntry struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Status      Status `json:"status" yaml:"status"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	TechName    string `json:"techName" yaml:"techName"`
	ProdTime    string `json:"prodTime" yaml:"prodTime"`
	Views       int    `json:"views" yaml:"views"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// EntryInput is the user-supplied part of a new entry.
type EntryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      Status `json:"status"`
	TechName    string `json:"techName"`
	ProdTime    string `json:"prodTime"`
}

// NewEntry is the create request body: the input plus the fields the
// console assigns before posting.
type NewEntry struct {
	EntryInput
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Views     int    `json:"views"`
}

// Entry returns the record the server is expected to store for n.
func (n NewEntry) Entry() KnowledgeEntry {
	return KnowledgeEntry{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Category:    n.Category,
		Status:      n.Status,
		CreatedAt:   n.CreatedAt,
		TechName:    n.TechName,
		ProdTime:    n.ProdTime,
		Views:       n.Views,
	}
}

// EntryPatch is a partial update. Nil fields are left untouched and are not
// serialized.
type EntryPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *Status `json:"status,omitempty"`
	TechName    *string `json:"techName,omitempty"`
	ProdTime    *string `json:"prodTime,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Status == nil && p.TechName == nil && p.ProdTime == nil
}

// Apply returns e with the non-nil patch fields merged in.
func (p EntryPatch) Apply(e KnowledgeEntry) KnowledgeEntry {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.TechName != nil {
		e.TechName = *p.TechName
	}
	if p.ProdTime != nil {
		e.ProdTime = *p.ProdTime
	}
	return e
}

// PatchFrom builds a patch carrying every editable field of in.
func PatchFrom(in EntryInput) EntryPatch {
	return EntryPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Category:    &in.Category,
		Status:      &in.Status,
		TechName:    &in.TechName,
		ProdTime:    &in.ProdTime,
	}
}

// Validate checks the fields every stored entry must have.
func (e KnowledgeEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", common.ErrValidation, e.Status)
	}
	return nil
}
