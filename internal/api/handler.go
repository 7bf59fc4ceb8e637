// Package api exposes the processing pipeline over HTTP for the upload
// front end.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fiscalpoint/sped-report-converter/internal/config"
	"github.com/fiscalpoint/sped-report-converter/internal/decoder"
	"github.com/fiscalpoint/sped-report-converter/internal/models"
	"github.com/fiscalpoint/sped-report-converter/internal/parser"
	"github.com/fiscalpoint/sped-report-converter/internal/report"
	"github.com/fiscalpoint/sped-report-converter/internal/writer"
)

// Version is reported by the health and process endpoints.
const Version = "1.0.0"

// ProcessResponse is the JSON response from POST /api/process.
type ProcessResponse struct {
	Success     bool               `json:"success"`
	Error       string             `json:"error,omitempty"`
	RunID       string             `json:"runId,omitempty"`
	Inbound     *models.Report     `json:"inbound,omitempty"`
	Outbound    *models.Report     `json:"outbound,omitempty"`
	Diagnostics models.Diagnostics `json:"diagnostics"`
	InboundCSV  string             `json:"inboundCsv,omitempty"`
	OutboundCSV string             `json:"outboundCsv,omitempty"`
	Version     string             `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	cfg config.Config
	log zerolog.Logger
}

// NewHandler returns a Handler bound to the given configuration.
func NewHandler(cfg config.Config, log zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

// Register sets up the API routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/process", h.HandleProcess)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// HandleProcess accepts a multipart upload of SPED .txt or .zip files
// and responds with both directional reports, their CSV renderings and
// the run diagnostics.
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	runID := uuid.NewString()
	log := h.log.With().Str("runId", runID).Logger()

	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("failed to parse multipart form: %v", err))
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		uploads = form.File["file"]
	}
	if len(uploads) == 0 {
		return writeError(c, fiber.StatusBadRequest, "no files uploaded; use form field 'files'")
	}

	payloads, err := readUploads(uploads)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
	}

	dec := &decoder.Decoder{
		MaxFiles: h.cfg.MaxUploadFiles,
		MaxBytes: h.cfg.MaxUploadBytes,
	}
	files, err := dec.DecodeAll(payloads)
	if err != nil {
		if errors.Is(err, decoder.ErrResourceLimit) {
			return writeError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		}
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if len(files) == 0 {
		return writeError(c, fiber.StatusUnprocessableEntity, "upload contained no .txt files")
	}

	contents := make([]string, len(files))
	for i, f := range files {
		contents[i] = f.Content
	}

	result := parser.New(log).Parse(contents)
	set := report.Build(result)

	inboundCSV, err := renderCSV(set.Inbound)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}
	outboundCSV, err := renderCSV(set.Outbound)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	log.Info().
		Int("uploads", len(uploads)).
		Int("inbound", set.Inbound.Totals.Count).
		Int("outbound", set.Outbound.Totals.Count).
		Int("unclassified", set.Diagnostics.Unclassified).
		Msg("processing run finished")

	return c.JSON(ProcessResponse{
		Success:     true,
		RunID:       runID,
		Inbound:     &set.Inbound,
		Outbound:    &set.Outbound,
		Diagnostics: set.Diagnostics,
		InboundCSV:  inboundCSV,
		OutboundCSV: outboundCSV,
		Version:     Version,
	})
}

func readUploads(uploads []*multipart.FileHeader) ([]decoder.Payload, error) {
	payloads := make([]decoder.Payload, 0, len(uploads))
	for _, fh := range uploads {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%q: %w", fh.Filename, err)
		}
		payloads = append(payloads, decoder.Payload{Name: fh.Filename, Data: data})
	}
	return payloads, nil
}

func renderCSV(rep models.Report) (string, error) {
	var buf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.Write(&buf, rep); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ProcessResponse{
		Success: false,
		Error:   msg,
	})
}
