package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/view"
)

// maxDraftBytes caps create/update bodies.
const maxDraftBytes = 64 << 10

type listResponse struct {
	Acronyms []domain.Acronym `json:"acronyms"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	Query    string           `json:"query,omitempty"`
	Sort     view.Direction   `json:"sort"`
	NextSort view.Direction   `json:"next_sort"` // what a sort toggle switches to
}

// ListAcronyms returns the filtered, ordered projection of the collection.
// Query parameters: q (search term), sort (asc|desc).
func ListAcronyms(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		dir, err := view.ParseDirection(r.URL.Query().Get("sort"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		all := d.Store.All()
		projected := d.Projector.Project(all, query, dir)
		writeJSON(w, http.StatusOK, listResponse{
			Acronyms: projected,
			Count:    len(projected),
			Total:    len(all),
			Query:    query,
			Sort:     dir,
			NextSort: dir.Toggle(),
		})
	}
}

func GetAcronym(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, ok := d.Store.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "acronym not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func CreateAcronym(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := decodeDraft(w, r)
		if !ok {
			return
		}

		rec, err := d.Store.Add(r.Context(), draft.Acronym, draft.Description)
		if err != nil {
			d.Logger.Error("failed to add acronym", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save acronym")
			return
		}

		w.Header().Set("Location", "/api/acronyms/"+rec.ID)
		writeJSON(w, http.StatusCreated, rec)
	}
}

// UpdateAcronym edits a record in place. An unknown id is a 404 and leaves
// the collection untouched.
func UpdateAcronym(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		draft, ok := decodeDraft(w, r)
		if !ok {
			return
		}

		found, err := d.Store.Update(r.Context(), id, draft.Acronym, draft.Description)
		if err != nil {
			d.Logger.Error("failed to update acronym",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save acronym")
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "acronym not found")
			return
		}

		rec, _ := d.Store.Get(id)
		writeJSON(w, http.StatusOK, rec)
	}
}

// DeleteAcronym answers 204 whether or not the id existed.
func DeleteAcronym(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		found, err := d.Store.Delete(r.Context(), id)
		if err != nil {
			d.Logger.Error("failed to delete acronym",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete acronym")
			return
		}
		if !found {
			d.Logger.Debug("delete of unknown acronym ignored", logger.String("id", id))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (domain.Draft, bool) {
	var draft domain.Draft
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDraftBytes))
	if err := dec.Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with acronym and description")
		return draft, false
	}
	if err := draft.Check(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return draft, false
	}
	return draft, true
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
