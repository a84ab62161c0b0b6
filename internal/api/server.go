package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"paperforge/internal/compiler"
	"paperforge/internal/config"
	"paperforge/internal/detect"
	"paperforge/internal/models"
	"paperforge/internal/paper"
	"paperforge/internal/providers"
	"paperforge/internal/storage"
	"paperforge/internal/util"
)

type Server struct {
	cfg       config.Config
	store     *storage.Store
	generator *paper.Generator
	detector  *detect.Detector
}

func NewServer(cfg config.Config) *Server {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		panic(err)
	}
	var records storage.RunRecords
	if strings.EqualFold(cfg.RunsBackend, "postgres") {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db, err := storage.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			panic(err)
		}
		records = storage.NewRunRepo(db)
	} else {
		records = storage.NewMemoryRunRecords()
	}
	if err := util.EnsureDir(cfg.DataRoot); err != nil {
		panic(err)
	}
	store := storage.NewStore(records, cfg.DataRoot)
	bridge := compiler.New(cfg)
	return &Server{
		cfg:       cfg,
		store:     store,
		generator: paper.NewGenerator(pm, store, bridge),
		detector:  detect.NewDetector(pm, store, models.Provider(cfg.DetectProvider)),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/detect", s.handleDetect)
	mux.HandleFunc("/detect_raw", s.handleDetectRaw)
	mux.HandleFunc("/detect_pdf", s.handleDetectPDF)
	mux.HandleFunc("/download/tex/", s.handleDownload(models.ArtifactTex))
	mux.HandleFunc("/download/pdf/", s.handleDownload(models.ArtifactPdf))
	return withCORS(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Topic    string `json:"topic"`
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	provider, err := parseProvider(req.Provider)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.generator.Generate(r.Context(), req.Topic, provider)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		RunID string `json:"run_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	req.RunID = strings.TrimSpace(req.RunID)
	if req.RunID == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("run_id is required"))
		return
	}
	res, err := s.detector.FromRun(r.Context(), req.RunID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"run_id": req.RunID, "score": res.Score, "reasoning": res.Reasoning})
}

func (s *Server) handleDetectRaw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Latex string `json:"latex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	res, err := s.detector.FromRaw(r.Context(), req.Latex)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"score": res.Score, "reasoning": res.Reasoning})
}

func (s *Server) handleDetectPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	fh := firstUploadedFile(r)
	if fh == nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no file provided"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()
	pdfBytes, err := io.ReadAll(f)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	res, err := s.detector.FromPDF(r.Context(), pdfBytes)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"score": res.Score, "reasoning": res.Reasoning})
}

func (s *Server) handleDownload(kind models.ArtifactKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		prefix := "/download/" + string(kind) + "/"
		runID := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
		if runID == "" {
			writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
			return
		}
		content, err := s.store.GetArtifact(r.Context(), runID, kind)
		if err != nil {
			// A skipped or failed pdf is a 404, never a 500.
			writeDomainErr(w, err)
			return
		}
		filename := "paper." + string(kind)
		contentType := "text/plain; charset=utf-8"
		if kind == models.ArtifactPdf {
			contentType = "application/pdf"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

func parseProvider(raw string) (models.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini":
		return models.ProviderGemini, nil
	case "groq":
		return models.ProviderGroq, nil
	default:
		return "", fmt.Errorf("%w: %q", util.ErrInvalidProvider, raw)
	}
}

func firstUploadedFile(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		return files[0]
	}
	for _, files := range r.MultipartForm.File {
		if len(files) > 0 {
			return files[0]
		}
	}
	return nil
}
