package models

import (
	"time"

	"github.com/driftlab/drift-backend-go/internal/analysis"
)

// HistoryEntry is a stored generation with user-supplied annotations
type HistoryEntry struct {
	Response  analysis.Response `json:"response"`
	Name      string            `json:"name,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Favorite  bool              `json:"favorite"`
	CreatedAt time.Time         `json:"created_at"`
}

// HistoryUpdate carries optional annotation changes; nil fields are left
// untouched
type HistoryUpdate struct {
	Name     *string `json:"name,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Favorite *bool   `json:"favorite,omitempty"`
}
