package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
)

// FileName is the fixed name of the exported file.
const FileName = "MasterAcronym.txt"

var (
	// ErrNoFileSelected means the picker produced no file: nothing chosen,
	// an empty upload, or an empty path.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrParse means the content is not a JSON array of records.
	ErrParse = errors.New("file content is not a JSON array of acronyms")

	// ErrSerialization means the export file could not be produced.
	ErrSerialization = errors.New("failed to serialize acronyms")

	// ErrInvalidRecords means strict validation rejected the batch.
	ErrInvalidRecords = errors.New("imported acronyms are invalid")
)

// Encode writes records as a JSON array indented with two spaces, the same
// bytes a browser's JSON.stringify(records, null, 2) produces: no HTML
// escaping and no trailing newline.
func Encode(w io.Writer, records []domain.Acronym) error {
	if records == nil {
		records = []domain.Acronym{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

// Decode parses a JSON array of records. A JSON null, object or scalar is a
// parse error; an empty array is an empty collection.
func Decode(r io.Reader) ([]domain.Acronym, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) ([]domain.Acronym, error) {
	var records []domain.Acronym
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: got null", ErrParse)
	}
	return records, nil
}
