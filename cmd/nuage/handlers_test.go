package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hazyhaar/nuage/cloud"
	"github.com/hazyhaar/nuage/dbopen"
	"github.com/hazyhaar/nuage/docpipe"
	"github.com/hazyhaar/nuage/history"
	_ "modernc.org/sqlite"
)

// fakeEngine counts frequencies like the real engine but skips rendering,
// so tests need no font file. It records the text it was given.
type fakeEngine struct {
	calls    int
	lastText string
}

func (f *fakeEngine) Generate(_ context.Context, text string, opts cloud.Options) (*cloud.Cloud, error) {
	f.calls++
	f.lastText = text
	counts := cloud.Frequencies(text, opts.MaxWords)
	if len(counts) == 0 {
		return nil, cloud.ErrEmptyContent
	}
	return &cloud.Cloud{
		Words: cloud.Weights(counts),
		PNG:   []byte("not-a-real-png"),
	}, nil
}

func newTestServer(t *testing.T) (*server, *fakeEngine) {
	t.Helper()
	db := dbopen.OpenMemory(t)
	hist := history.NewStore(db)
	if err := hist.Init(); err != nil {
		t.Fatal(err)
	}
	engine := &fakeEngine{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s := newServer(docpipe.New(docpipe.Config{Logger: logger}), engine, hist, logger, 10*1024*1024)
	return s, engine
}

func multipartUpload(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/clouds", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGenerate_EndToEnd(t *testing.T) {
	s, engine := newTestServer(t)

	req := multipartUpload(t, "story.txt",
		[]byte("the cat sat on the mat the cat ran"),
		map[string]string{"custom_stopwords": "the"})
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if engine.lastText != "cat sat on mat cat ran" {
		t.Fatalf("engine received %q", engine.lastText)
	}

	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Format != "txt" || resp.Filename != "story.txt" {
		t.Errorf("meta mismatch: %+v", resp)
	}
	if resp.GenerationID == "" {
		t.Error("missing generation_id")
	}
	if resp.Preview != "the cat sat on the mat the cat ran" {
		t.Errorf("preview = %q", resp.Preview)
	}
	if resp.WordsIn != 9 || resp.WordsKept != 6 || resp.DistinctWords != 5 {
		t.Errorf("counts: in=%d kept=%d distinct=%d", resp.WordsIn, resp.WordsKept, resp.DistinctWords)
	}
	// "cat" appears twice; everything else once. Top row must be cat with
	// weight 1.
	if len(resp.Table) != 5 || resp.Table[0].Word != "cat" || resp.Table[0].Weight != 1 {
		t.Errorf("table: %+v", resp.Table)
	}
	if !strings.HasPrefix(resp.Image.DataURI, "data:image/png;base64,") {
		t.Errorf("image data URI: %q", resp.Image.DataURI)
	}
	if !strings.HasPrefix(resp.TableCSV.DataURI, "data:text/csv;base64,") {
		t.Errorf("csv data URI: %q", resp.TableCSV.DataURI)
	}
}

func TestGenerate_EmptyUpload(t *testing.T) {
	s, engine := newTestServer(t)

	req := multipartUpload(t, "empty.txt", nil, nil)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if engine.calls != 0 {
		t.Fatalf("engine called %d times on empty input", engine.calls)
	}
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] == "" {
		t.Fatal("expected visible error message")
	}
}

func TestGenerate_AllStopwords(t *testing.T) {
	s, engine := newTestServer(t)

	req := multipartUpload(t, "noise.txt", []byte("the and or but"), nil)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if engine.calls != 0 {
		t.Fatal("engine must not run when filtering removes everything")
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	s, _ := newTestServer(t)

	req := multipartUpload(t, "image.jpeg", []byte("binary"), nil)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerate_PreviewTruncation(t *testing.T) {
	s, _ := newTestServer(t)

	long := strings.Repeat("word ", 300) // 1500 chars
	req := multipartUpload(t, "long.txt", []byte(long), nil)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp generateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.HasSuffix(resp.Preview, "...") {
		t.Fatalf("long preview must end with ellipsis, got %q", resp.Preview[len(resp.Preview)-10:])
	}
	if got := len([]rune(resp.Preview)); got != previewLimit+3 {
		t.Fatalf("preview length = %d, want %d", got, previewLimit+3)
	}
}

func TestGenerate_TopCaps(t *testing.T) {
	s, _ := newTestServer(t)

	// 30 distinct words with distinct counts.
	var b strings.Builder
	for i := 1; i <= 30; i++ {
		word := strings.Repeat(string(rune('a'+(i-1)%26)), 1+(i-1)/26+1)
		for j := 0; j < i; j++ {
			b.WriteString(word)
			b.WriteByte(' ')
		}
	}
	req := multipartUpload(t, "many.txt", []byte(b.String()), nil)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp generateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Table) != 20 {
		t.Errorf("table rows = %d, want 20", len(resp.Table))
	}
	if len(resp.Chart) != 10 {
		t.Errorf("chart rows = %d, want 10", len(resp.Chart))
	}
	// Ranked: each row's weight must not exceed the previous one's.
	for i := 1; i < len(resp.Table); i++ {
		if resp.Table[i].Weight > resp.Table[i-1].Weight {
			t.Fatalf("table not ranked at row %d", i)
		}
	}
}

func TestHistoryEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.router()

	req := multipartUpload(t, "story.txt", []byte("alpha beta alpha"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("generate status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/history", nil))
	if rec.Code != 200 {
		t.Fatalf("history status = %d", rec.Code)
	}
	var rows []history.Generation
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Filename != "story.txt" || !rows[0].Success {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestHistoryRecordsFailures(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.router()

	req := multipartUpload(t, "empty.txt", nil, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != 400 {
		t.Fatalf("generate status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/history", nil))
	var rows []history.Generation
	json.Unmarshal(rec.Body.Bytes(), &rows)
	if len(rows) != 1 || rows[0].Success || rows[0].Error == "" {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "ok" {
		t.Fatalf("health: %v", resp)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	if id := rec.Header().Get("X-Request-ID"); !strings.HasPrefix(id, "req_") {
		t.Fatalf("X-Request-ID = %q", id)
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "word cloud") {
		t.Fatal("index page missing expected content")
	}
}
