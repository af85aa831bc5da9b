package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/kiesman99/retile/internal/api"
	"github.com/kiesman99/retile/internal/rearrange"
	"github.com/kiesman99/retile/pkg/tile"
)

// MaxImageBytes caps the size of an uploaded image
const MaxImageBytes = 32 << 20

// Server implements the ServerInterface from the api package
type Server struct {
	startTime  time.Time
	version    string
	processor  *tile.Processor
	rearranger *rearrange.Rearranger
}

// NewServer creates a new server instance. workers bounds the goroutines
// copying tiles of a single image.
func NewServer(version string, workers int) *Server {
	return &Server{
		startTime:  time.Now(),
		version:    version,
		processor:  tile.NewProcessor(nil, "retile/"+version),
		rearranger: rearrange.New(rearrange.WithWorkers(workers)),
	}
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// ValidateArrangement reports whether a tile size and ordering are valid for an image size
func (s *Server) ValidateArrangement(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFor(r)

	var req api.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDJSON,
			"Invalid JSON in request body", &requestID, nil)
		return
	}

	imageSize := tile.Size{Width: req.Image.Width, Height: req.Image.Height}
	tileSize := tile.Size{Width: req.Tile.Width, Height: req.Tile.Height}

	response := api.ValidateResponse{Valid: true}
	if err := tile.Validate(imageSize, tileSize, req.Ordering); err != nil {
		response.Valid = false
		var ce *tile.CheckError
		if errors.As(err, &ce) {
			check := string(ce.Check)
			response.Check = &check
			response.Reason = &ce.Message
		}
	} else if grid, err := tile.NewGrid(imageSize, tileSize); err == nil {
		count := grid.Count()
		response.TileCount = &count
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding validate response: %v", err)
	}
}

// RearrangeImage rearranges the tiles of the image in the request body
func (s *Server) RearrangeImage(w http.ResponseWriter, r *http.Request, params api.RearrangeImageParams) {
	requestID := requestIDFor(r)

	tileSize, format, err := s.parseCommon(params.Tile, params.Format)
	if err != nil {
		s.writeValidationErrorResponse(w, err.Error(), &requestID)
		return
	}

	src, ok := s.readImage(w, r, &requestID)
	if !ok {
		return
	}

	out, err := s.rearranger.Rearrange(src, tileSize, params.Ordering)
	if err != nil {
		s.handleRearrangeError(w, err, &requestID)
		return
	}

	s.writeImage(w, out, format, params.Quality, requestID)
}

// ScrambleImage scrambles, or with inverse set unscrambles, the image in the request body
func (s *Server) ScrambleImage(w http.ResponseWriter, r *http.Request, params api.ScrambleImageParams) {
	requestID := requestIDFor(r)

	tileSize, format, err := s.parseCommon(params.Tile, params.Format)
	if err != nil {
		s.writeValidationErrorResponse(w, err.Error(), &requestID)
		return
	}
	if params.Seed < 0 || params.Seed > math.MaxUint32 {
		s.writeValidationErrorResponse(w, fmt.Sprintf("seed must be between 0 and %d", uint32(math.MaxUint32)), &requestID)
		return
	}

	src, ok := s.readImage(w, r, &requestID)
	if !ok {
		return
	}

	var (
		out      image.Image
		ordering tile.Ordering
	)
	seed := uint32(params.Seed)
	if params.Inverse != nil && *params.Inverse {
		out, ordering, err = s.rearranger.Unscramble(src, tileSize, seed)
	} else {
		out, ordering, err = s.rearranger.Scramble(src, tileSize, seed)
	}
	if err != nil {
		s.handleRearrangeError(w, err, &requestID)
		return
	}

	w.Header().Set("X-Ordering", ordering.String())
	s.writeImage(w, out, format, params.Quality, requestID)
}

func (s *Server) parseCommon(tileParam string, formatParam *api.ImageFormat) (tile.Size, tile.Format, error) {
	tileSize, err := tile.ParseSize(tileParam)
	if err != nil {
		return tile.Size{}, tile.FormatPNG, err
	}

	format := tile.FormatPNG
	if formatParam != nil {
		format, err = tile.ParseFormat(string(*formatParam))
		if err != nil {
			return tile.Size{}, tile.FormatPNG, err
		}
	}
	return tileSize, format, nil
}

func (s *Server) readImage(w http.ResponseWriter, r *http.Request, requestID *string) (image.Image, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxImageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, api.INVALIDIMAGE,
				fmt.Sprintf("Image exceeds %d bytes", MaxImageBytes), requestID, nil)
			return nil, false
		}
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDIMAGE,
			fmt.Sprintf("Could not read request body: %v", err), requestID, nil)
		return nil, false
	}

	img, _, err := s.processor.DecodeImage(data)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDIMAGE,
			fmt.Sprintf("Could not decode image: %v", err), requestID, nil)
		return nil, false
	}
	return img, true
}

func (s *Server) writeImage(w http.ResponseWriter, img image.Image, format tile.Format, quality *int, requestID string) {
	q := 0
	if quality != nil {
		q = *quality
	}

	var buf bytes.Buffer
	if err := s.processor.Encode(&buf, img, format, q); err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, api.INTERNALERROR,
			"Failed to encode output image", &requestID, nil)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// handleRearrangeError maps rearrangement errors to responses
func (s *Server) handleRearrangeError(w http.ResponseWriter, err error, requestID *string) {
	var invalid *rearrange.InvalidArrangementError
	if errors.As(err, &invalid) {
		var details map[string]interface{}
		var ce *tile.CheckError
		if errors.As(invalid.Cause, &ce) {
			details = map[string]interface{}{
				"check":  string(ce.Check),
				"reason": ce.Message,
			}
		}
		s.writeErrorResponse(w, http.StatusUnprocessableEntity, api.INVALIDARRANGEMENT,
			invalid.Error(), requestID, details)
		return
	}

	s.writeErrorResponse(w, http.StatusInternalServerError, api.INTERNALERROR,
		"Internal server error", requestID, nil)
}

// HandleParamError is the api.ChiServerOptions error handler for malformed query parameters
func (s *Server) HandleParamError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestIDFor(r)
	s.writeValidationErrorResponse(w, err.Error(), &requestID)
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, code api.ErrorCode, message string, requestID *string, details map[string]interface{}) {
	response := api.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}

	w.Header().Set("Content-Type", "application/json")
	if requestID != nil {
		w.Header().Set("X-Request-ID", *requestID)
	}
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// writeValidationErrorResponse writes a validation error response
func (s *Server) writeValidationErrorResponse(w http.ResponseWriter, message string, requestID *string) {
	s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR, message, requestID, nil)
}

// requestIDFor reuses the id set by chi's RequestID middleware, or generates one
func requestIDFor(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return "req_" + uuid.NewString()
}
