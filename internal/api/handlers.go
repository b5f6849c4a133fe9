package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/adilg123/huffman-compression-tool/internal/compression"
	"github.com/adilg123/huffman-compression-tool/internal/compression/algorithms/huffman"
	"github.com/adilg123/huffman-compression-tool/internal/config"
	"github.com/adilg123/huffman-compression-tool/internal/logger"
	"github.com/gin-gonic/gin"
)

// CompressRequest represents the compression request payload
type CompressRequest struct {
	Algorithm string `form:"algorithm"`
}

// DecompressRequest represents the decompression request payload
type DecompressRequest struct {
	Algorithm string `form:"algorithm"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handler serves the compression endpoints
type Handler struct {
	cfg *config.Config
	log logger.Logger
}

func NewHandler(cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

func abortWithError(c *gin.Context, code int, title, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   title,
		Code:    code,
		Message: message,
	})
}

// resolveAlgorithm applies the configured default and validates the name
func (h *Handler) resolveAlgorithm(c *gin.Context, algorithm string) (string, bool) {
	if algorithm == "" {
		algorithm = h.cfg.DefaultAlgorithm
	}
	if !compression.IsValidAlgorithm(algorithm) {
		abortWithError(c, http.StatusBadRequest, "Invalid algorithm",
			fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()))
		return "", false
	}
	return algorithm, true
}

// readUpload reads the multipart "file" field, enforcing the size limit
func (h *Handler) readUpload(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "File upload error", "No file provided or file upload failed")
		return nil, "", false
	}
	defer file.Close()

	if header.Size > h.cfg.MaxFileSize {
		abortWithError(c, http.StatusBadRequest, "File too large",
			fmt.Sprintf("Maximum file size is %d bytes", h.cfg.MaxFileSize))
		return nil, "", false
	}

	fileContent, err := io.ReadAll(file)
	if err != nil {
		h.log.Errorf("reading upload %q: %v", header.Filename, err)
		abortWithError(c, http.StatusInternalServerError, "File read error", "Failed to read uploaded file")
		return nil, "", false
	}
	return fileContent, header.Filename, true
}

func setStatsHeaders(c *gin.Context, stats *compression.Stats) {
	c.Header("X-Algorithm", stats.Algorithm)
	c.Header("X-Original-Size", strconv.Itoa(stats.OriginalSize))
	c.Header("X-Processed-Size", strconv.Itoa(stats.ProcessedSize))
	c.Header("X-Compression-Ratio", strconv.FormatFloat(stats.CompressionRatio, 'f', 2, 64))
}

// HandleCompress handles file compression requests
func (h *Handler) HandleCompress(c *gin.Context) {
	var req CompressRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	algorithm, ok := h.resolveAlgorithm(c, req.Algorithm)
	if !ok {
		return
	}
	fileContent, filename, ok := h.readUpload(c)
	if !ok {
		return
	}

	compressedData, stats, err := compression.Compress(fileContent, compression.Options{Algorithm: algorithm})
	if err != nil {
		h.log.Errorf("compressing %q: %v", filename, err)
		abortWithError(c, http.StatusInternalServerError, "Compression failed", err.Error())
		return
	}
	h.log.Infof("compressed %q with %s: %d -> %d bytes", filename, algorithm, stats.OriginalSize, stats.ProcessedSize)

	outName := fmt.Sprintf("%s_compressed.%s", getBaseFilename(filename), compression.GetExtension(algorithm))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outName))
	setStatsHeaders(c, stats)
	c.Data(http.StatusOK, "application/octet-stream", compressedData)
}

// HandleDecompress handles file decompression requests
func (h *Handler) HandleDecompress(c *gin.Context) {
	var req DecompressRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	algorithm, ok := h.resolveAlgorithm(c, req.Algorithm)
	if !ok {
		return
	}
	fileContent, filename, ok := h.readUpload(c)
	if !ok {
		return
	}

	decompressedData, stats, err := compression.Decompress(fileContent, compression.Options{Algorithm: algorithm})
	if err != nil {
		h.log.Errorf("decompressing %q: %v", filename, err)
		code := http.StatusInternalServerError
		if errors.Is(err, huffman.ErrFormat) {
			code = http.StatusUnprocessableEntity
		}
		abortWithError(c, code, "Decompression failed", err.Error())
		return
	}
	h.log.Infof("decompressed %q: %d -> %d bytes", filename, stats.OriginalSize, stats.ProcessedSize)

	outName := fmt.Sprintf("%s_decompressed", getBaseFilename(filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outName))
	setStatsHeaders(c, stats)
	c.Data(http.StatusOK, "application/octet-stream", decompressedData)
}

// HandleInfo provides information about supported algorithms
func (h *Handler) HandleInfo(c *gin.Context) {
	info := map[string]interface{}{
		"service": "Huffman File Compression Tool",
		"version": "1.0.0",
		"algorithms": map[string]interface{}{
			"supported":    compression.GetSupportedAlgorithms(),
			"default":      h.cfg.DefaultAlgorithm,
			"descriptions": compression.GetDescriptions(),
		},
		"limits": map[string]interface{}{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", h.cfg.MaxFileSize, float64(h.cfg.MaxFileSize)/(1024*1024)),
		},
		"endpoints": map[string]interface{}{
			"compress":   "POST /compress - Upload file for compression",
			"decompress": "POST /decompress - Upload file for decompression",
			"algorithms": "GET /algorithms - List Huffman payload variants",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// AlgorithmInfo describes one registered payload variant
type AlgorithmInfo struct {
	Name        string `json:"name"`
	Payload     string `json:"payload"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// HandleAlgorithms lists the Huffman payload variants and the file
// extension each one produces
func (h *Handler) HandleAlgorithms(c *gin.Context) {
	descriptions := compression.GetDescriptions()
	var out []AlgorithmInfo
	for _, name := range compression.GetSupportedAlgorithms() {
		payload := huffman.PayloadText
		if name == compression.AlgorithmHuffmanPacked {
			payload = huffman.PayloadPacked
		}
		out = append(out, AlgorithmInfo{
			Name:        name,
			Payload:     payload.String(),
			Extension:   compression.GetExtension(name),
			Description: descriptions[name],
			Default:     name == h.cfg.DefaultAlgorithm,
		})
	}
	c.JSON(http.StatusOK, out)
}

// HandleHealth provides a simple health check endpoint
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "compression-service",
	})
}

// Helper functions
func getBaseFilename(filename string) string {
	if filename == "" {
		return "file"
	}

	// Remove extension
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			if i == 0 {
				return "file"
			}
			return filename[:i]
		}
	}
	return filename
}
