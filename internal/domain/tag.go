package domain

import (
	"encoding/json"
	"time"
)

// Skill is a shared, reusable tag drawn from the closed skill vocabulary.
// Category is always derived from Name, never taken from the caller.
type Skill struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Benefit mirrors Skill over the benefit vocabulary.
type Benefit struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Requirement is free text with typed metadata. Unlike skills and
// benefits, requirement rows are created fresh per job and never shared.
type Requirement struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority"`
	Value       *string   `json:"value,omitempty"`
	Unit        *string   `json:"unit,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	RequirementTypeOther       = "other"
	RequirementPriorityDefault = "required"
)

// RequirementInput accepts either a bare JSON string or a full object.
// A string becomes {description: s} and picks up the defaults later.
type RequirementInput struct {
	Description string  `json:"description" binding:"required"`
	Type        string  `json:"type" binding:"omitempty,oneof=education experience technical certification soft_skill other"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=required preferred bonus"`
	Value       *string `json:"value"`
	Unit        *string `json:"unit"`
}

func (r *RequirementInput) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RequirementInput{Description: s}
		return nil
	}

	type plain RequirementInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RequirementInput(p)
	return nil
}
