package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestQueryUUID(t *testing.T) {
	id := uuid.New()

	got, err := queryUUID(get("/?category="+id.String()), "category")
	if err != nil || got == nil || *got != id {
		t.Fatalf("queryUUID = %v, %v; want %s", got, err, id)
	}

	got, err = queryUUID(get("/?category="), "category")
	if err != nil || got != nil {
		t.Errorf("blank: got %v, %v; want nil, nil", got, err)
	}

	if _, err := queryUUID(get("/?category=drills"), "category"); err == nil {
		t.Error("expected an error for a non-UUID value")
	}
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		query   string
		want    *bool
		wantErr bool
	}{
		{"/", nil, false},
		{"/?in_stock=true", ptr(true), false},
		{"/?in_stock=1", ptr(true), false},
		{"/?in_stock=false", ptr(false), false},
		{"/?in_stock=yes", nil, true},
	}
	for _, tt := range tests {
		got, err := queryBool(get(tt.query), "in_stock")
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("%s: got %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestQueryDate(t *testing.T) {
	got, err := queryDate(get("/?from=2026-03-01"), "from")
	if err != nil {
		t.Fatalf("queryDate: %v", err)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"01.03.2026", "2026-13-01", "yesterday"} {
		if _, err := queryDate(get("/?from="+bad), "from"); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestQueryPage(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"/", 1, false},
		{"/?page=3", 3, false},
		{"/?page=0", 0, true},
		{"/?page=-2", 0, true},
		{"/?page=two", 0, true},
	}
	for _, tt := range tests {
		got, err := queryPage(get(tt.query))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestQueryEnum(t *testing.T) {
	got, err := queryEnum(get("/?status=paid"), "status", models.ParseOrderStatus)
	if err != nil || got != models.OrderStatusPaid {
		t.Errorf("got %q, %v; want paid", got, err)
	}

	got, err = queryEnum(get("/"), "status", models.ParseOrderStatus)
	if err != nil || got != "" {
		t.Errorf("absent: got %q, %v", got, err)
	}

	if _, err := queryEnum(get("/?status=lost"), "status", models.ParseOrderStatus); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestDayAfter(t *testing.T) {
	if dayAfter(nil) != nil {
		t.Error("dayAfter(nil) should be nil")
	}
	d := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if got := dayAfter(&d); !got.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", got)
	}
}

func ptr[T any](v T) *T { return &v }
