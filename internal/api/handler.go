// Package api serves entity extraction and validation over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"

	"github.com/lueurxax/tweet-entities/internal/core/entities"
	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
	"github.com/lueurxax/tweet-entities/internal/core/validate"
	"github.com/lueurxax/tweet-entities/internal/platform/observability"
)

const (
	PathEntities = "/v1/entities"
	PathValidate = "/v1/validate"

	// Upper bound of a request body: four bytes per code point plus JSON framing.
	bodyOverhead    = 4096
	bytesPerRune    = 4
	contentTypeJSON = "application/json"

	// maxTrackedClients caps the limiter map; reaching it starts a fresh map.
	maxTrackedClients = 10000
)

type Options struct {
	MaxTextLength  int
	RateLimitRPS   float64
	RateLimitBurst int
	NormalizeNFC   bool
}

type Handler struct {
	extractor *entities.Extractor
	validator *validate.Validator
	opts      Options
	logger    *zerolog.Logger

	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
	maxClients int
}

// NewHandler creates the API handler. A nil logger discards output.
func NewHandler(extractor *entities.Extractor, validator *validate.Validator, opts Options, logger *zerolog.Logger) *Handler {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Handler{
		extractor:  extractor,
		validator:  validator,
		opts:       opts,
		logger:     logger,
		limiters:   make(map[string]*rate.Limiter),
		maxClients: maxTrackedClients,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var serve func(http.ResponseWriter, *http.Request)

	switch r.URL.Path {
	case PathEntities:
		serve = h.serveEntities
	case PathValidate:
		serve = h.serveValidate
	default:
		http.NotFound(w, r)

		return
	}

	if r.Method != http.MethodPost {
		observability.RequestsTotal.WithLabelValues(observability.StatusNotAllowed).Inc()
		w.Header().Set("Allow", http.MethodPost)
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")

		return
	}

	if !h.allowRequest(getClientIP(r)) {
		observability.RequestsTotal.WithLabelValues(observability.StatusRateLimited).Inc()
		h.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")

		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(h.opts.MaxTextLength*bytesPerRune+bodyOverhead))

	serve(w, r)
}

func (h *Handler) serveEntities(w http.ResponseWriter, r *http.Request) {
	var req EntitiesRequest
	if !h.decode(w, r, &req) {
		return
	}

	text, err := h.prepareText(req.Text)
	if err != nil {
		h.badRequest(w, err)

		return
	}

	kinds, err := ParseKinds(req.Kinds)
	if err != nil {
		h.badRequest(w, err)

		return
	}

	extractor := h.extractorFor(req)

	start := time.Now()
	found := extractor.ExtractKinds(text, kinds...)
	observability.ExtractDuration.Observe(time.Since(start).Seconds())

	for _, ent := range found {
		observability.EntitiesExtracted.WithLabelValues(string(ent.Kind)).Inc()
	}

	observability.RequestsTotal.WithLabelValues(observability.StatusOK).Inc()

	h.writeJSON(w, http.StatusOK, EntitiesResponse{
		Text:     text,
		HasRTL:   extractor.HasRTLChars(text),
		Entities: ToEntities(text, found),
	})
}

func (h *Handler) serveValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !h.decode(w, r, &req) {
		return
	}

	value, err := h.prepareText(req.Value)
	if err != nil {
		h.badRequest(w, err)

		return
	}

	valid, err := h.validator.Validate(strings.ToLower(req.Kind), value)
	if err != nil {
		h.badRequest(w, err)

		return
	}

	observability.RequestsTotal.WithLabelValues(observability.StatusOK).Inc()
	h.writeJSON(w, http.StatusOK, ValidateResponse{Valid: valid})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			h.badRequest(w, fmt.Errorf("%w: request body exceeds %d bytes", errs.ErrTextTooLong, tooLarge.Limit))

			return false
		}

		h.badRequest(w, fmt.Errorf("%w: decoding request: %w", errs.ErrInvalidInput, err))

		return false
	}

	return true
}

// prepareText checks the length limit and applies NFC normalization.
func (h *Handler) prepareText(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text is empty", errs.ErrInvalidInput)
	}

	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", errs.ErrInvalidInput)
	}

	if h.opts.NormalizeNFC {
		text = norm.NFC.String(text)
	}

	if n := utf8.RuneCountInString(text); n > h.opts.MaxTextLength {
		return "", fmt.Errorf("%w: %d code points, limit is %d", errs.ErrTextTooLong, n, h.opts.MaxTextLength)
	}

	return text, nil
}

func (h *Handler) extractorFor(req EntitiesRequest) *entities.Extractor {
	if req.ExtractURLsWithoutProtocol == nil && req.CheckURLOverlap == nil {
		return h.extractor
	}

	opts := h.extractor.Options()

	if req.ExtractURLsWithoutProtocol != nil {
		opts.ExtractURLsWithoutProtocol = *req.ExtractURLsWithoutProtocol
	}

	if req.CheckURLOverlap != nil {
		opts.CheckURLOverlap = *req.CheckURLOverlap
	}

	return h.extractor.WithOptions(opts)
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	observability.RequestsTotal.WithLabelValues(observability.StatusBadRequest).Inc()
	h.logger.Debug().Err(err).Msg("rejected request")
	h.writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, errorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (h *Handler) allowRequest(ip string) bool {
	h.limitersMu.Lock()

	limiter, ok := h.limiters[ip]
	if !ok {
		// Start over once the cap is reached.
		if len(h.limiters) >= h.maxClients {
			clear(h.limiters)
		}

		limiter = rate.NewLimiter(rate.Limit(h.opts.RateLimitRPS), h.opts.RateLimitBurst)
		h.limiters[ip] = limiter
	}

	h.limitersMu.Unlock()

	return limiter.Allow()
}

func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (common with reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
