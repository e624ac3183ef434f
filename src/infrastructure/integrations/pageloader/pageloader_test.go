package pageloader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"docsift/src/infrastructure/integrations/pageloader"
)

func TestLoadPagesGroupsByPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/general/v0/general" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"type": "Title", "text": "RESULTS", "metadata": {"page_number": 2}},
			{"type": "NarrativeText", "text": "first page text", "metadata": {"page_number": 1}},
			{"type": "NarrativeText", "text": "second page text", "metadata": {"page_number": 2}},
			{"type": "NarrativeText", "text": "", "metadata": {"page_number": 3}},
			{"type": "NarrativeText", "text": "no page metadata", "metadata": {}}
		]`))
	}))
	defer server.Close()

	service := pageloader.NewService(server.URL, nil)
	pages, err := service.LoadPages(context.Background(), "report.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("LoadPages() error = %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("LoadPages() returned %d pages, want 2", len(pages))
	}

	if pages[0].Number != 0 {
		t.Errorf("first page number = %d, want 0", pages[0].Number)
	}
	if pages[0].Text != "first page text\nno page metadata" {
		t.Errorf("first page text = %q", pages[0].Text)
	}

	if pages[1].Number != 1 {
		t.Errorf("second page number = %d, want 1", pages[1].Number)
	}
	if pages[1].Text != "RESULTS\nsecond page text" {
		t.Errorf("second page text = %q", pages[1].Text)
	}
}

func TestLoadPagesServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	service := pageloader.NewService(server.URL, nil)
	if _, err := service.LoadPages(context.Background(), "report.pdf", []byte("raw")); err == nil {
		t.Error("LoadPages() expected error on upstream failure")
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthcheck" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	service := pageloader.NewService(server.URL, nil)
	if err := service.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	down := pageloader.NewService("http://127.0.0.1:1", nil)
	if err := down.Ping(context.Background()); err == nil {
		t.Error("Ping() expected error for unreachable endpoint")
	}
}
