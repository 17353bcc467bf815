package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ares-site-service/internal/domain"
)

func TestCreateLeadRequestShape(t *testing.T) {
	var (
		gotPath    string
		gotHeaders http.Header
		gotBody    map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"page-123"}`))
	}))
	defer srv.Close()

	client := NewClient("secret-key", "db-42", srv.URL)
	pageID, err := client.CreateLead(context.Background(), domain.Lead{
		Kind:    domain.LeadContact,
		Name:    "Ada",
		Email:   "ada@example.com",
		Company: "Example Corp",
		Phone:   "+1 555 0100",
		Message: "Interested in an audit",
	})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if pageID != "page-123" {
		t.Fatalf("page id = %q", pageID)
	}
	if gotPath != "/v1/pages" {
		t.Fatalf("path = %q", gotPath)
	}
	if got := gotHeaders.Get("Authorization"); got != "Bearer secret-key" {
		t.Fatalf("authorization = %q", got)
	}
	if got := gotHeaders.Get("Notion-Version"); got != "2022-06-28" {
		t.Fatalf("notion version = %q", got)
	}
	if got := gotHeaders.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}

	parent, _ := gotBody["parent"].(map[string]any)
	if parent["database_id"] != "db-42" {
		t.Fatalf("parent = %+v", parent)
	}
	props, _ := gotBody["properties"].(map[string]any)
	for _, key := range []string{"Name", "Email", "Company", "Message", "Phone"} {
		if _, ok := props[key]; !ok {
			t.Fatalf("property %s missing: %+v", key, props)
		}
	}
	phone, _ := props["Phone"].(map[string]any)
	if phone["phone_number"] != "+1 555 0100" {
		t.Fatalf("phone property = %+v", phone)
	}
}

func TestCreateLeadOmitsEmptyProperties(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"p"}`))
	}))
	defer srv.Close()

	client := NewClient("k", "db", srv.URL)
	if _, err := client.CreateLead(context.Background(), domain.Lead{
		Kind:  domain.LeadContact,
		Name:  "Ada",
		Email: "ada@example.com",
	}); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	props, _ := gotBody["properties"].(map[string]any)
	for _, key := range []string{"Company", "Message", "Service", "PreferredTime", "Industry", "Date", "Phone"} {
		if _, ok := props[key]; ok {
			t.Fatalf("empty property %s must be omitted: %+v", key, props)
		}
	}
	if _, ok := props["Name"]; !ok {
		t.Fatalf("name missing: %+v", props)
	}
}

func TestCreateLeadAppointmentDate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"p"}`))
	}))
	defer srv.Close()

	client := NewClient("k", "db", srv.URL)
	if _, err := client.CreateLead(context.Background(), domain.Lead{
		Kind:          domain.LeadAppointment,
		Name:          "Ada",
		Email:         "ada@example.com",
		Service:       "Compliance Assessment",
		Date:          "2026-09-15",
		PreferredTime: "10:00",
	}); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	props, _ := gotBody["properties"].(map[string]any)
	date, _ := props["Date"].(map[string]any)
	inner, _ := date["date"].(map[string]any)
	if inner["start"] != "2026-09-15" {
		t.Fatalf("date property = %+v", date)
	}
}

func TestCreateLeadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"validation_error"}`))
	}))
	defer srv.Close()

	client := NewClient("k", "db", srv.URL)
	_, err := client.CreateLead(context.Background(), domain.Lead{Name: "Ada", Email: "a@b.com"})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "validation_error") {
		t.Fatalf("error should carry status and detail: %v", err)
	}
}

func TestCreateLeadNotConfigured(t *testing.T) {
	for _, client := range []*Client{
		NewClient("", "db", ""),
		NewClient("key", "", ""),
	} {
		_, err := client.CreateLead(context.Background(), domain.Lead{Name: "A", Email: "a@b.com"})
		if !errors.Is(err, domain.ErrRelayNotConfigured) {
			t.Fatalf("expected ErrRelayNotConfigured, got %v", err)
		}
	}
	if NewClient("key", "db", "").Configured() != true {
		t.Fatal("full credentials should report configured")
	}
}
