package restcountries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kartografi-service/internal/domain"
)

func TestAllRequestsBulkFields(t *testing.T) {
	var gotFields string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotFields = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":{"common":"Slovenia","official":"Republic of Slovenia"},"capital":["Ljubljana"],"languages":{"slv":"Slovene"},"flags":{"png":"x.png"},"cca3":"SVN"}]`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	countries, err := client.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(countries) != 1 || countries[0].CCA3 != "SVN" {
		t.Fatalf("unexpected countries %+v", countries)
	}
	if gotFields != "name,capital,languages,flags,cca3" {
		t.Fatalf("unexpected field selection %q", gotFields)
	}
}

func TestByLanguageEscapesCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lang/deu" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"name":{"common":"Germany"},"cca3":"DEU"}]`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	countries, err := client.ByLanguage(context.Background(), "deu")
	if err != nil {
		t.Fatalf("by language: %v", err)
	}
	if len(countries) != 1 || countries[0].Name.Common != "Germany" {
		t.Fatalf("unexpected countries %+v", countries)
	}
}

func TestByCodeHandlesObjectAndArrayShapes(t *testing.T) {
	bodies := map[string]string{
		"/alpha/SVN": `{"name":{"common":"Slovenia"},"capital":["Ljubljana"]}`,
		"/alpha/CZE": `[{"name":{"common":"Czechia"},"altSpellings":["CZ","Czech Republic"]}]`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("fields") == "" {
			t.Fatalf("expected field selection on %s", r.URL.Path)
		}
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)

	slovenia, err := client.ByCode(context.Background(), "SVN", "name", "capital")
	if err != nil {
		t.Fatalf("by code object: %v", err)
	}
	if slovenia.Name.Common != "Slovenia" || len(slovenia.Capital) != 1 {
		t.Fatalf("unexpected country %+v", slovenia)
	}

	czechia, err := client.ByCode(context.Background(), "CZE", "name", "altSpellings")
	if err != nil {
		t.Fatalf("by code array: %v", err)
	}
	if czechia.Name.Common != "Czechia" || len(czechia.AltSpellings) != 2 {
		t.Fatalf("unexpected country %+v", czechia)
	}
}

func TestNonSuccessStatusIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	if _, err := client.All(context.Background()); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if _, err := client.ByCode(context.Background(), "SVN", "name"); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestUnreachableHostIsUpstreamError(t *testing.T) {
	client := New("http://127.0.0.1:1", 100*time.Millisecond)
	if _, err := client.All(context.Background()); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
