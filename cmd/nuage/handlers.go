package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/nuage/cloud"
	"github.com/hazyhaar/nuage/docpipe"
	"github.com/hazyhaar/nuage/export"
	"github.com/hazyhaar/nuage/history"
	"github.com/hazyhaar/nuage/idgen"
	"github.com/hazyhaar/nuage/kit"
	"github.com/hazyhaar/nuage/report"
	"github.com/hazyhaar/nuage/stopword"
)

//go:embed static
var staticFS embed.FS

// previewLimit caps the text preview returned with each generation.
const previewLimit = 1000

type server struct {
	pipe      *docpipe.Pipeline
	engine    cloud.Engine
	hist      *history.Store
	logger    *slog.Logger
	maxUpload int64
}

func newServer(pipe *docpipe.Pipeline, engine cloud.Engine, hist *history.Store, logger *slog.Logger, maxUpload int64) *server {
	if logger == nil {
		logger = slog.Default()
	}
	return &server{
		pipe:      pipe,
		engine:    engine,
		hist:      hist,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

func (s *server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware(idgen.Prefixed("req_", idgen.Default)))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("static/index.html")
		if err != nil {
			http.Error(w, "not found", 404)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	r.Post("/v1/clouds", s.handleGenerate)
	r.Get("/v1/history", s.handleHistory)
	r.Get("/v1/health", s.handleHealth)
	return r
}

// requestIDMiddleware enriches the request context with kit values so log
// lines and history rows can be correlated across a request.
func requestIDMiddleware(gen idgen.Generator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqID := gen()
			ctx = kit.WithRequestID(ctx, reqID)
			ctx = kit.WithTransport(ctx, "http")

			w.Header().Set("X-Request-ID", reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// generateResponse is the JSON body for POST /v1/clouds.
type generateResponse struct {
	GenerationID  string               `json:"generation_id"`
	Filename      string               `json:"filename"`
	Format        string               `json:"format"`
	Preview       string               `json:"preview"`
	WordsIn       int                  `json:"words_in"`
	WordsKept     int                  `json:"words_kept"`
	DistinctWords int                  `json:"distinct_words"`
	Table         []cloud.WeightedWord `json:"table"`
	Chart         []cloud.WeightedWord `json:"chart"`
	Image         artifact             `json:"image"`
	TableCSV      artifact             `json:"table_csv"`
}

type artifact struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	DataURI  string `json:"data_uri"`
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	started := time.Now()

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, 400, fmt.Errorf("parse form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, 400, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		writeError(w, 500, fmt.Errorf("read upload: %w", err))
		return
	}
	if int64(len(data)) > s.maxUpload {
		writeError(w, 413, docpipe.ErrFileTooLarge)
		return
	}

	format, err := s.pipe.Detect(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		s.record(ctx, header.Filename, "", started, pipelineCounts{}, err)
		writeError(w, 400, err)
		return
	}

	text, err := s.pipe.Extract(ctx, docpipe.RawDocument{
		Name:   header.Filename,
		Format: format,
		Data:   data,
	})
	if err != nil {
		s.record(ctx, header.Filename, string(format), started, pipelineCounts{}, err)
		writeError(w, errStatus(err), err)
		return
	}
	if strings.TrimSpace(text) == "" {
		s.record(ctx, header.Filename, string(format), started, pipelineCounts{}, cloud.ErrEmptyContent)
		writeError(w, 400, cloud.ErrEmptyContent)
		return
	}

	wordsIn := len(strings.Fields(text))

	set := stopword.NewSet(stopword.ParseCustom(r.FormValue("custom_stopwords"))...)
	filtered := stopword.Filter(text, set)
	wordsKept := len(strings.Fields(filtered))
	if filtered == "" {
		err := cloud.ErrEmptyContent
		s.record(ctx, header.Filename, string(format), started, pipelineCounts{wordsIn: wordsIn}, err)
		writeError(w, 400, err)
		return
	}

	opts := cloud.Options{
		MaxWords:     formInt(r, "max_words", 0),
		Background:   r.FormValue("background_color"),
		Colormap:     r.FormValue("colormap"),
		ContourWidth: formInt(r, "contour_width", 0),
		ContourColor: r.FormValue("contour_color"),
	}

	c, err := s.engine.Generate(ctx, filtered, opts)
	if err != nil {
		s.record(ctx, header.Filename, string(format), started, pipelineCounts{wordsIn: wordsIn, wordsKept: wordsKept}, err)
		writeError(w, errStatus(err), err)
		return
	}

	rep := report.Summarize(c.Words)

	tableCSV, err := export.Table(rep)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	image := export.Image(c.PNG)

	counts := pipelineCounts{wordsIn: wordsIn, wordsKept: wordsKept, distinct: len(rep.Words)}
	genID := s.record(ctx, header.Filename, string(format), started, counts, nil)

	writeJSON(w, 200, generateResponse{
		GenerationID:  genID,
		Filename:      header.Filename,
		Format:        string(format),
		Preview:       preview(text),
		WordsIn:       wordsIn,
		WordsKept:     wordsKept,
		DistinctWords: len(rep.Words),
		Table:         rep.Top(20),
		Chart:         rep.Top(10),
		Image: artifact{
			Filename: image.Filename,
			MIME:     image.MIME,
			DataURI:  image.DataURI(),
		},
		TableCSV: artifact{
			Filename: tableCSV.Filename,
			MIME:     tableCSV.MIME,
			DataURI:  tableCSV.DataURI(),
		},
	})
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := s.hist.Recent(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if rows == nil {
		rows = []history.Generation{}
	}
	writeJSON(w, 200, rows)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":  "ok",
		"formats": docpipe.SupportedFormats(),
	}
	if _, err := s.hist.Recent(r.Context(), 1); err != nil {
		resp["status"] = "degraded"
		resp["history"] = err.Error()
	}
	writeJSON(w, 200, resp)
}

type pipelineCounts struct {
	wordsIn   int
	wordsKept int
	distinct  int
}

// record writes one history row and returns the generation ID. The row is
// written for failures too so the history endpoint shows what went wrong.
func (s *server) record(ctx context.Context, filename, format string, started time.Time, counts pipelineCounts, genErr error) string {
	g := history.Generation{
		Filename:      filename,
		Format:        format,
		WordsIn:       counts.wordsIn,
		WordsKept:     counts.wordsKept,
		DistinctWords: counts.distinct,
		DurationMS:    time.Since(started).Milliseconds(),
		Success:       genErr == nil,
	}
	if genErr != nil {
		g.Error = genErr.Error()
	}
	return s.hist.Record(ctx, g)
}

// preview returns the first previewLimit characters of text, marking a
// truncation the same way the download page shows it.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}

// errStatus maps pipeline errors to HTTP status codes. Input problems are
// the caller's to fix; everything else is ours.
func errStatus(err error) int {
	var pe *docpipe.ParseError
	switch {
	case errors.Is(err, docpipe.ErrFileTooLarge):
		return 413
	case errors.Is(err, docpipe.ErrDecoding),
		errors.Is(err, docpipe.ErrUnsupportedFormat),
		errors.Is(err, cloud.ErrEmptyContent),
		errors.As(err, &pe):
		return 400
	default:
		return 500
	}
}

func formInt(r *http.Request, key string, def int) int {
	s := r.FormValue(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
