package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/transfer"
)

type importResponse struct {
	Imported int `json:"imported"`
}

// Export downloads the whole collection as MasterAcronym.txt.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := d.Store.All()

		var buf bytes.Buffer
		if err := transfer.Encode(&buf, records); err != nil {
			d.Logger.Error("export failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": transfer.FileName}))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

// Import replaces the collection with an uploaded file, sent either as the
// multipart field "file" or as the raw request body. The collection is only
// replaced once the whole file decoded (and validated, in strict mode).
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MaxImportBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, d.MaxImportBytes)
		}

		picker, closeUpload, err := uploadPicker(r)
		if err != nil {
			writeImportError(w, d, err)
			return
		}
		defer closeUpload()

		records, err := d.Importer.Import(r.Context(), picker)
		if err != nil {
			writeImportError(w, d, err)
			return
		}

		if err := d.Store.ReplaceAll(r.Context(), records); err != nil {
			d.Logger.Error("failed to store imported acronyms", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save imported acronyms")
			return
		}

		writeJSON(w, http.StatusOK, importResponse{Imported: len(records)})
	}
}

func uploadPicker(r *http.Request) (transfer.Picker, func(), error) {
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if r.ContentLength == 0 {
			return transfer.ReaderPicker{}, noop, nil
		}
		return transfer.ReaderPicker{Name: "request body", Reader: r.Body}, noop, nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return transfer.ReaderPicker{}, noop, nil
		}
		return nil, noop, err
	}
	return transfer.ReaderPicker{Name: header.Filename, Reader: file}, func() { _ = file.Close() }, nil
}

func writeImportError(w http.ResponseWriter, d deps.Deps, err error) {
	switch {
	case isTooLarge(err):
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
	case errors.Is(err, transfer.ErrNoFileSelected),
		errors.Is(err, transfer.ErrParse),
		errors.Is(err, transfer.ErrInvalidRecords):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusRequestTimeout, "import timed out")
	default:
		d.Logger.Error("import failed", logger.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
