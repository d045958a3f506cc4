package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// Query parameters shared by the admin list endpoints. Every parser returns
// a 400-class error naming the parameter when the value is malformed; an
// absent or blank parameter means "no filter".

// queryUUID parses an optional UUID parameter.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, badRequestf("invalid %s: must be a UUID", name)
	}
	return &id, nil
}

// queryBool parses an optional boolean parameter ("true", "1", "false", ...).
func queryBool(r *http.Request, name string) (*bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, badRequestf("invalid %s: must be true or false", name)
	}
	return &b, nil
}

// queryDate parses an optional YYYY-MM-DD parameter.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return nil, badRequestf("invalid %s: must be a date like 2026-01-31", name)
	}
	return &d, nil
}

// queryPage parses the 1-based page parameter.
func queryPage(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("page"))
	if v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, badRequestf("invalid page: must be a positive integer")
	}
	return n, nil
}

// queryEnum validates an optional enumerated parameter with parse.
func queryEnum[T ~string](r *http.Request, name string, parse func(string) (T, error)) (T, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", nil
	}
	t, err := parse(v)
	if err != nil {
		return "", badRequestf("invalid %s: %v", name, err)
	}
	return t, nil
}

// dayAfter returns the start of the day after d, turning an inclusive
// date bound into an exclusive timestamp bound.
func dayAfter(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	next := d.AddDate(0, 0, 1)
	return &next
}
