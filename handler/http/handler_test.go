package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	httpHdlr "docsift/handler/http"
	"docsift/src/chunkindex"
	"docsift/src/core/insight"
)

type fakeLoader struct {
	pages []insight.Page
	err   error
}

func (f *fakeLoader) LoadPages(ctx context.Context, filename string, content []byte) ([]insight.Page, error) {
	return f.pages, f.err
}

type fakeSplitter struct{}

func (fakeSplitter) Split(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []string{text}, nil
}

type fakeIndex struct {
	entries []chunkindex.Entry
}

func (f *fakeIndex) Search(ctx context.Context, query string, k int) ([]chunkindex.Entry, error) {
	if len(f.entries) > k {
		return f.entries[:k], nil
	}
	return f.entries, nil
}

type fakeBuilder struct{}

func (fakeBuilder) Build(ctx context.Context, identifier string, entries []chunkindex.Entry) (chunkindex.Index, error) {
	return &fakeIndex{entries: entries}, nil
}

type fakeScorer struct {
	result *insight.ScoreResult
	err    error
}

func (f *fakeScorer) Score(ctx context.Context, req insight.ScoreRequest) (*insight.ScoreResult, error) {
	return f.result, f.err
}

type fakeSystemService struct{}

func (fakeSystemService) CheckHealth(ctx context.Context) (*insight.HealthStatus, error) {
	status := &insight.HealthStatus{Status: "healthy"}
	status.Components.PageLoader = insight.StatusUp
	status.Components.Ollama = insight.StatusUp
	status.Components.VectorStore = insight.StatusUp
	return status, nil
}

func newTestRouter(t *testing.T, loader insight.PageLoader, scorer insight.ChunkScorer) (*gin.Engine, *insight.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := insight.DefaultConfig()
	cfg.ScoreTimeout = time.Second
	service, err := insight.NewService(loader, fakeSplitter{}, fakeBuilder{}, scorer, cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	handler := httpHdlr.NewHandler(service, fakeSystemService{}, nil, "")
	r := gin.New()
	handler.RegisterRoutes(r)
	return r, service
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQueryEndpointErrorMapping(t *testing.T) {
	goodScore := &insight.ScoreResult{
		SectionTitle:   "RESULTS",
		RefinedText:    "the excerpt",
		RelevanceScore: 0.9,
	}

	tests := []struct {
		name       string
		body       string
		seed       bool
		scorer     *fakeScorer
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing query field",
			body:       `{"persona": "An analyst"}`,
			scorer:     &fakeScorer{result: goodScore},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "empty corpus",
			body:       `{"query": "what are the results"}`,
			scorer:     &fakeScorer{result: goodScore},
			wantStatus: http.StatusBadRequest,
			wantCode:   "EMPTY_CORPUS",
		},
		{
			name:       "none relevant",
			body:       `{"query": "what are the results"}`,
			seed:       true,
			scorer:     &fakeScorer{err: errors.New("model unreachable")},
			wantStatus: http.StatusNotFound,
			wantCode:   "NONE_RELEVANT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, service := newTestRouter(t, &fakeLoader{}, tt.scorer)
			if tt.seed {
				service.Registry().Put(&insight.DocumentIndex{
					Identifier: "a.pdf",
					Chunks: &fakeIndex{entries: []chunkindex.Entry{
						{ChunkID: 1, Document: "a.pdf", Page: 0, Text: "some chunk"},
					}},
					Headings: []string{"RESULTS"},
				})
			}

			w := postJSON(r, "/api/v1/query", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			var resp httpHdlr.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestQueryEndpointSuccess(t *testing.T) {
	scorer := &fakeScorer{result: &insight.ScoreResult{
		SectionTitle:   "RESULTS",
		RefinedText:    "the excerpt",
		RelevanceScore: 0.9,
	}}
	r, service := newTestRouter(t, &fakeLoader{}, scorer)
	service.Registry().Put(&insight.DocumentIndex{
		Identifier: "a.pdf",
		Chunks: &fakeIndex{entries: []chunkindex.Entry{
			{ChunkID: 1, Document: "a.pdf", Page: 2, Text: "some chunk"},
		}},
		Headings: []string{"RESULTS"},
	})

	w := postJSON(r, "/api/v1/query", `{"query": "what are the results"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var result insight.QueryResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.ExtractedSections) != 1 {
		t.Fatalf("got %d sections, want 1", len(result.ExtractedSections))
	}
	section := result.ExtractedSections[0]
	if section.ImportanceRank != 1 || section.PageNumber != 3 || section.SectionTitle != "RESULTS" {
		t.Errorf("unexpected section: %+v", section)
	}
	if len(result.SubsectionAnalysis) != 1 || result.SubsectionAnalysis[0].RefinedText != "the excerpt" {
		t.Errorf("unexpected analysis: %+v", result.SubsectionAnalysis)
	}
}

func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		part.Write([]byte(content))
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadDocuments(t *testing.T) {
	loader := &fakeLoader{pages: []insight.Page{
		{Number: 0, Text: "EXPERIMENTAL RESULTS"},
	}}
	r, _ := newTestRouter(t, loader, &fakeScorer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"report.pdf": "raw pdf bytes"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var resp httpHdlr.UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AnalysisID == "" {
		t.Error("analysis_id is empty")
	}
	if resp.TotalDocumentsProcessed != 1 {
		t.Errorf("total_documents_processed = %d, want 1", resp.TotalDocumentsProcessed)
	}
	if len(resp.Results) != 1 || resp.Results[0].Filename != "report.pdf" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
	if resp.Results[0].HeadingCount != 1 {
		t.Errorf("extracted_headings_count = %d, want 1", resp.Results[0].HeadingCount)
	}
}

func TestUploadDocumentsSkipsNonPDF(t *testing.T) {
	r, service := newTestRouter(t, &fakeLoader{}, &fakeScorer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"notes.txt": "plain text"}))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (body %s)", w.Code, w.Body.String())
	}
	if service.Registry().Len() != 0 {
		t.Error("non-pdf upload reached the registry")
	}
}

func TestUploadDocumentsNoFiles(t *testing.T) {
	r, _ := newTestRouter(t, &fakeLoader{}, &fakeScorer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
}

func TestDownloadDocumentWithoutArchive(t *testing.T) {
	r, _ := newTestRouter(t, &fakeLoader{}, &fakeScorer{})

	req := httptest.NewRequest("GET", "/api/v1/documents/some-analysis-id/report.pdf", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
	}

	var resp httpHdlr.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", resp.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &fakeLoader{}, &fakeScorer{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var status insight.HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
}
