// Package view derives the filtered, sorted projection of the acronym
// collection shown to the user. Nothing is cached: every call recomputes
// from the records it is given.
package view

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
)

// Direction is the sort order applied to the acronym field.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" (and their long forms). Empty means
// ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q (want asc or desc)", s)
	}
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Projector orders acronyms with the collation rules of one locale.
type Projector struct {
	tag language.Tag
}

// NewProjector returns a projector for tag. language.Und selects the root
// collation order.
func NewProjector(tag language.Tag) *Projector {
	return &Projector{tag: tag}
}

// Locale returns the collation locale.
func (p *Projector) Locale() language.Tag {
	return p.tag
}

var defaultProjector = NewProjector(language.Und)

// Project uses the root collation order.
func Project(records []domain.Acronym, term string, dir Direction) []domain.Acronym {
	return defaultProjector.Project(records, term, dir)
}

// Project keeps the records whose acronym or description contains term,
// ignoring case, and orders them by acronym. Descending is the exact reverse
// of ascending. The input slice is not modified.
func (p *Projector) Project(records []domain.Acronym, term string, dir Direction) []domain.Acronym {
	needle := strings.ToLower(term)

	out := make([]domain.Acronym, 0, len(records))
	for _, rec := range records {
		if matches(rec, needle) {
			out = append(out, rec)
		}
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(p.tag)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Acronym, out[j].Acronym) < 0
	})

	if dir == Descending {
		slices.Reverse(out)
	}
	return out
}

func matches(rec domain.Acronym, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Acronym), needle) ||
		strings.Contains(strings.ToLower(rec.Description), needle)
}
