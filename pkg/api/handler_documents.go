package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Ingest handles POST /api/ingest. The uploaded file must be a PDF, sent as
// multipart form field "file". Parsing the PDF bytes into extractable text
// is the retrieval backend's concern; this handler only validates the
// extension and hands the raw content through.
func (s *Server) Ingest(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	chunks, err := s.retrieval.IngestDocument(c.Request.Context(), string(content), header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.cache.Clear()
	slog.Info("ingested document", "filename", header.Filename, "chunks", chunks)

	c.JSON(http.StatusOK, IngestResponse{
		Status:          "success",
		Filename:        header.Filename,
		ChunksProcessed: chunks,
	})
}

// ClearIndex handles DELETE /api/index.
func (s *Server) ClearIndex(c *gin.Context) {
	cleared, err := s.retrieval.ClearIndex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.cache.Clear()

	message := "index cleared"
	if !cleared {
		message = "index was already empty"
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: message})
}

// IndexStats handles GET /api/index/stats.
func (s *Server) IndexStats(c *gin.Context) {
	stats, err := s.retrieval.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListDocuments handles GET /api/documents.
func (s *Server) ListDocuments(c *gin.Context) {
	docs, err := s.retrieval.GetIndexedDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]DocumentListItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, DocumentListItem{Name: d.Name, Chunks: d.Chunks})
	}

	c.JSON(http.StatusOK, DocumentsResponse{Status: "success", Documents: items})
}
