package domain

import (
	"fmt"
	"strings"
)

// Violation describes why one record of a batch was rejected.
type Violation struct {
	Index  int
	ID     string
	Reason string
}

func (v Violation) String() string {
	if v.ID == "" {
		return fmt.Sprintf("record %d: %s", v.Index, v.Reason)
	}
	return fmt.Sprintf("record %d (%s): %s", v.Index, v.ID, v.Reason)
}

// Validate checks a whole batch of records: every required string field is
// present, timestamps are ordered, and ids are unique across the batch.
// It returns every violation found, or nil when the batch is sound.
func Validate(records []Acronym) []Violation {
	var out []Violation
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		add := func(reason string) {
			out = append(out, Violation{Index: i, ID: rec.ID, Reason: reason})
		}

		if strings.TrimSpace(rec.ID) == "" {
			add("missing id")
		} else if first, dup := seen[rec.ID]; dup {
			add(fmt.Sprintf("duplicate id (first seen at record %d)", first))
		} else {
			seen[rec.ID] = i
		}

		if strings.TrimSpace(rec.Acronym) == "" {
			add("missing acronym")
		}
		if strings.TrimSpace(rec.Description) == "" {
			add("missing description")
		}
		if rec.CreatedAt.IsZero() {
			add("missing createdAt")
		}
		if rec.UpdatedAt.IsZero() {
			add("missing updatedAt")
		}
		if !rec.CreatedAt.IsZero() && rec.UpdatedAt.Before(rec.CreatedAt) {
			add("updatedAt precedes createdAt")
		}
	}

	return out
}
