// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

// maxBodyBytes caps admin request bodies.
const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// badRequest marks client errors that never reached the store.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func badRequestf(format string, args ...any) error {
	return &badRequest{msg: fmt.Sprintf(format, args...)}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps store and validation errors onto HTTP status codes.
// Unexpected errors are logged and reported as 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr    *models.ValidationError
		unknown *models.UnknownValueError
		bad     *badRequest
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Error(), Field: verr.Field})
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: unknown.Error()})
	case errors.As(err, &bad):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: bad.msg})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, store.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: "a record with this slug or email already exists"})
	case errors.Is(err, store.ErrReference):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: store.ErrReference.Error()})
	case errors.Is(err, store.ErrCycle):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: store.ErrCycle.Error(), Field: "parent_id"})
	default:
		slog.Error("admin request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown
// fields so typos do not silently drop edits.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequestf("request body is empty")
		}
		return badRequestf("invalid JSON body: %v", err)
	}
	return nil
}

// urlID parses a UUID path parameter.
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, badRequestf("invalid %s", name)
	}
	return id, nil
}

// found turns a (nil, nil) lookup into store.ErrNotFound.
func found[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, store.ErrNotFound
	}
	return v, nil
}
