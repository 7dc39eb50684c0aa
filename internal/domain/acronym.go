package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ISOLayout is the timestamp layout of persisted and exported records: UTC
// with exactly three fraction digits, as Date.prototype.toISOString writes.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrBlankField is returned when a required acronym field is empty.
var ErrBlankField = errors.New("acronym and description are required")

// Acronym is one stored acronym/description pair.
//
// The JSON field names are part of the persisted and exported format and
// must not change.
type Acronym struct {
	// ID is assigned at creation and never reassigned.
	ID string `json:"id"`

	// Acronym is the short form. Not guaranteed unique.
	Acronym string `json:"acronym"`

	// Description is free text.
	Description string `json:"description"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is set at creation and refreshed on every edit.
	UpdatedAt time.Time `json:"updatedAt"`
}

type wireAcronym struct {
	ID          string `json:"id"`
	Acronym     string `json:"acronym"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// MarshalJSON writes both timestamps with ISOLayout. HTML characters are
// left unescaped.
func (a Acronym) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(wireAcronym{
		ID:          a.ID,
		Acronym:     a.Acronym,
		Description: a.Description,
		CreatedAt:   a.CreatedAt.UTC().Format(ISOLayout),
		UpdatedAt:   a.UpdatedAt.UTC().Format(ISOLayout),
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Draft is the user-supplied part of an Acronym.
type Draft struct {
	Acronym     string `json:"acronym"`
	Description string `json:"description"`
}

// Check rejects drafts whose fields are blank once trimmed.
func (d Draft) Check() error {
	if strings.TrimSpace(d.Acronym) == "" || strings.TrimSpace(d.Description) == "" {
		return ErrBlankField
	}
	return nil
}

// Timestamp normalizes t to the precision used in persisted records:
// UTC with millisecond resolution.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
