package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
)

func fixture() []domain.Acronym {
	created := time.Date(2024, 5, 1, 9, 30, 0, 123_000_000, time.UTC)
	return []domain.Acronym{
		{
			ID:          "0b6c8f0e-1111-4a4a-9c9c-000000000001",
			Acronym:     "API",
			Description: "Application Programming Interface",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "0b6c8f0e-1111-4a4a-9c9c-000000000002",
			Acronym:     "R&D",
			Description: "Research <and> Development",
			CreatedAt:   created,
			UpdatedAt:   created.Add(36 * time.Hour),
		},
	}
}

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, fixture()[:1]))

	want := `[
  {
    "id": "0b6c8f0e-1111-4a4a-9c9c-000000000001",
    "acronym": "API",
    "description": "Application Programming Interface",
    "createdAt": "2024-05-01T09:30:00.123Z",
    "updatedAt": "2024-05-01T09:30:00.123Z"
  }
]`
	assert.Equal(t, want, buf.String())
}

func TestEncodeDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, fixture()))
	assert.Contains(t, buf.String(), `"R&D"`)
	assert.Contains(t, buf.String(), `"Research <and> Development"`)
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "[]", buf.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEncodeWriteFailure(t *testing.T) {
	err := Encode(brokenWriter{}, fixture())
	require.ErrorIs(t, err, ErrSerialization)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, fixture()))

	got, err := Decode(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(fixture(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBrowserTimestamps(t *testing.T) {
	in := `[{"id":"1","acronym":"CPU","description":"Central Processing Unit",` +
		`"createdAt":"2024-01-15T10:00:00.000Z","updatedAt":"2024-01-16T11:30:45.500Z"}]`

	got, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CreatedAt.Equal(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.True(t, got[0].UpdatedAt.Equal(time.Date(2024, 1, 16, 11, 30, 45, 500_000_000, time.UTC)))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "not json"},
		{"object", `{"id":"1"}`},
		{"null", "null"},
		{"string", `"[]"`},
		{"truncated", `[{"id":"1"`},
		{"wrong field type", `[{"id":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	got, err := Decode(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEncodeKeepsMillisecondDigits(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"whole second", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), "2024-01-15T10:00:00.000Z"},
		{"half second", time.Date(2024, 1, 15, 10, 0, 0, 500_000_000, time.UTC), "2024-01-15T10:00:00.500Z"},
		{"non-UTC zone", time.Date(2024, 1, 15, 12, 0, 0, 0, time.FixedZone("CET", 3600)), "2024-01-15T11:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := domain.Acronym{ID: "1", Acronym: "CPU", Description: "x", CreatedAt: tt.ts, UpdatedAt: tt.ts}
			require.NoError(t, Encode(&buf, []domain.Acronym{rec}))
			assert.Contains(t, buf.String(), `"createdAt": "`+tt.want+`"`)
			assert.Contains(t, buf.String(), `"updatedAt": "`+tt.want+`"`)
		})
	}
}

func TestBrowserFileReexportsIdentically(t *testing.T) {
	in := `[
  {
    "id": "1",
    "acronym": "R&D",
    "description": "Research <and> Development",
    "createdAt": "2024-01-15T10:00:00.000Z",
    "updatedAt": "2024-01-15T10:00:00.500Z"
  }
]`

	got, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, got))
	assert.Equal(t, in, buf.String())
}
