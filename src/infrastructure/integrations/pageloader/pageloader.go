package pageloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"docsift/src/core/insight"
	"docsift/src/log"
)

// Service extracts page texts from raw documents through an
// unstructured-compatible partitioning endpoint.
type Service struct {
	baseURL    string
	httpClient *http.Client
}

type element struct {
	Type     string   `json:"type"`
	Text     string   `json:"text"`
	Metadata metadata `json:"metadata"`
}

type metadata struct {
	Filename   string `json:"filename,omitempty"`
	Filetype   string `json:"filetype,omitempty"`
	PageNumber int    `json:"page_number,omitempty"`
}

func NewService(baseURL string, c *http.Client) *Service {
	if c == nil {
		c = &http.Client{}
	}
	return &Service{
		baseURL:    baseURL,
		httpClient: c,
	}
}

// LoadPages partitions the document and groups element texts by page.
// Pages are returned in order with 0-based numbers.
func (s *Service) LoadPages(ctx context.Context, filename string, content []byte) ([]insight.Page, error) {
	var requestBody bytes.Buffer
	multipartWriter := multipart.NewWriter(&requestBody)

	fileWriter, err := multipartWriter.CreateFormFile("files", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err = io.Copy(fileWriter, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}

	if err := multipartWriter.WriteField("output_format", "application/json"); err != nil {
		return nil, fmt.Errorf("failed to write output format: %w", err)
	}

	multipartWriter.Close()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/general/v0/general", &requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", multipartWriter.FormDataContentType())

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error(fmt.Errorf("partition service error"), "failed to partition document", "status", resp.Status, "body", string(body))
		return nil, fmt.Errorf("partition service error: %s", resp.Status)
	}

	var elements []element
	if err := json.NewDecoder(resp.Body).Decode(&elements); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return groupPages(elements), nil
}

// groupPages joins element texts by page number. The service reports
// 1-based page numbers; elements without one land on the first page.
func groupPages(elements []element) []insight.Page {
	texts := make(map[int][]string)
	for _, el := range elements {
		if el.Text == "" {
			continue
		}
		page := el.Metadata.PageNumber
		if page < 1 {
			page = 1
		}
		texts[page-1] = append(texts[page-1], el.Text)
	}

	numbers := make([]int, 0, len(texts))
	for n := range texts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	pages := make([]insight.Page, 0, len(numbers))
	for _, n := range numbers {
		pages = append(pages, insight.Page{
			Number: n,
			Text:   strings.Join(texts[n], "\n"),
		})
	}
	return pages
}

// Ping verifies the partitioning endpoint is reachable
func (s *Service) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/healthcheck", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("partition service unhealthy: %s", resp.Status)
	}
	return nil
}
