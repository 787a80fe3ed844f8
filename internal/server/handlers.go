package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hyperjump/kizami/internal/chunker"
	"github.com/hyperjump/kizami/internal/models"
	"github.com/hyperjump/kizami/internal/pipeline"
	"go.uber.org/zap"
)

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Content == "" {
		s.respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	strategy := s.processor.Strategy()
	if input.Strategy != "" {
		parsed, err := chunker.ParseStrategy(input.Strategy)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	doc := &models.Document{
		ID:       input.ID,
		Content:  input.Content,
		Metadata: input.Metadata,
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]interface{})
	}
	if _, ok := doc.Metadata["file_path"]; !ok {
		doc.Metadata["file_path"] = "inline"
	}
	if _, ok := doc.Metadata["file_type"]; !ok {
		doc.Metadata["file_type"] = "txt"
	}

	s.logger.Debug("chunk request",
		zap.String("id", doc.ID),
		zap.String("strategy", string(strategy)),
		zap.Int("content_length", len(doc.Content)))
	result, err := s.processor.ProcessDocumentWith(doc, strategy)
	if err != nil {
		if errors.Is(err, chunker.ErrInvalidDocument) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("chunking failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":     doc.ID,
		"chunks": result.Chunks,
		"stats":  result.Stats,
	})
}

type processFileRequest struct {
	Path     string `json:"path"`
	Strategy string `json:"strategy,omitempty"`
}

func (s *Server) handleProcessFile(w http.ResponseWriter, r *http.Request) {
	var req processFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "file not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !s.processor.Registry().Supports(abs) {
		s.respondError(w, http.StatusBadRequest, "unsupported file format")
		return
	}

	s.logger.Debug("process file request", zap.String("path", abs), zap.String("strategy", req.Strategy))
	var result *pipeline.Result
	if req.Strategy != "" {
		strategy, err := chunker.ParseStrategy(req.Strategy)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		doc, err := s.processor.Registry().Load(abs)
		if err != nil {
			s.logger.Error("file load failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		result, err = s.processor.ProcessDocumentWith(doc, strategy)
		if err != nil {
			s.logger.Error("file processing failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		var err error
		result, err = s.processor.ProcessFile(abs)
		if err != nil {
			s.logger.Error("file processing failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"formats": s.processor.Registry().SupportedFormats(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":   "ok",
		"strategy": string(s.processor.Strategy()),
		"config": map[string]interface{}{
			"chunk_size":    s.config.Chunking.ChunkSize,
			"chunk_overlap": s.config.Chunking.ChunkOverlap,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
