package script

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"sportsmeet-portal/internal/models"
)

func testSubmission() models.Submission {
	return models.Submission{
		ID: "sub-1", Team: "Team 2", TeamNumber: 2, Manager: "manager_team2", Timestamp: "2025-01-01T00:00:00.000Z",
		Participants: []models.Entry{{
			Participant: models.Participant{Name: "A", Gender: "Male", Age: "50", Phone: "12345678", Sports: []string{"Chess", "", "", "", ""}},
			Category:    "Veteran",
		}},
	}
}

func TestSubmit(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Write([]byte(`{"status":"ok","message":"Saved 1 rows"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	msg, err := c.Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if msg != "Saved 1 rows" {
		t.Errorf("unexpected message %q", msg)
	}

	if got["team"] != "Team 2" || got["teamNumber"] != float64(2) || got["manager"] != "manager_team2" {
		t.Errorf("unexpected payload metadata: %v", got)
	}
	ps, ok := got["participants"].([]any)
	if !ok || len(ps) != 1 {
		t.Fatalf("unexpected participants: %v", got["participants"])
	}
	p := ps[0].(map[string]any)
	if p["name"] != "A" || p["category"] != "Veteran" {
		t.Errorf("unexpected participant payload: %v", p)
	}
}

func TestSubmit_DefaultMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	msg, err := New(srv.URL, time.Second).Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if msg != DefaultSubmitMessage {
		t.Errorf("expected default message, got %q", msg)
	}
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"bad status", http.StatusInternalServerError, "boom", func(t *testing.T, err error) {
			var se *StatusError
			if !errors.As(err, &se) || se.Code != 500 || se.Body != "boom" {
				t.Errorf("expected StatusError 500, got %v", err)
			}
		}},
		{"html body", http.StatusOK, "<html>login</html>", func(t *testing.T, err error) {
			if !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("expected ErrInvalidResponse, got %v", err)
			}
		}},
		{"script error status", http.StatusOK, `{"status":"error","message":"Sheet1 not found"}`, func(t *testing.T, err error) {
			if !errors.Is(err, ErrRejected) {
				t.Errorf("expected ErrRejected, got %v", err)
			}
			if !strings.Contains(err.Error(), "Sheet1 not found") {
				t.Errorf("expected script message in error, got %v", err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Submit(context.Background(), testSubmission())
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Query().Get("action") != "export" {
			t.Errorf("expected action=export, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("key") != "abc" {
			t.Errorf("expected existing query to be kept, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[
			{"timestamp":"2025-01-01T00:00:00.000Z","team":"Team 1","name":"A","teamNumber":1,"zeta":"z","phone":9876543210},
			{"team":"Team 2","name":"B","notes":null}
		]`))
	}))
	defer srv.Close()

	tb, err := New(srv.URL+"/exec?key=abc", time.Second).Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	wantHeader := []string{"team", "teamNumber", "timestamp", "name", "phone", "notes", "zeta"}
	if !reflect.DeepEqual(tb.Header, wantHeader) {
		t.Errorf("header = %v, want %v", tb.Header, wantHeader)
	}
	wantRows := [][]string{
		{"Team 1", "1", "2025-01-01T00:00:00.000Z", "A", "9876543210", "", "z"},
		{"Team 2", "", "", "B", "", "", ""},
	}
	if !reflect.DeepEqual(tb.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", tb.Rows, wantRows)
	}
}

func TestExport_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tb, err := New(srv.URL, time.Second).Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(tb.Rows) != 0 || len(tb.Header) != 0 {
		t.Errorf("expected empty table, got %+v", tb)
	}
}
