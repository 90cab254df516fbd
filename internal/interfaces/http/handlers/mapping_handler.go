package handlers

import (
	"io"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/pkg/errors"
	maptypes "github.com/turtacn/ReactionMapper/pkg/types/mapping"
)

// TheorySetting holds the default theory.  It is safe for concurrent use so
// that a configuration reload can swap it while requests are served.
type TheorySetting struct {
	v atomic.Value
}

// NewTheorySetting returns a setting initialised to t.
func NewTheorySetting(t mapping.Theory) *TheorySetting {
	s := &TheorySetting{}
	s.Set(t)
	return s
}

// Get returns the current theory.
func (s *TheorySetting) Get() mapping.Theory { return s.v.Load().(mapping.Theory) }

// Set replaces the current theory.
func (s *TheorySetting) Set(t mapping.Theory) { s.v.Store(t) }

// MappingHandler serves the mapping endpoints.
type MappingHandler struct {
	matcher matching.Matcher
	theory  *TheorySetting
	decode  reaction.DecodeOptions
	indexed bool
	logger  logging.Logger
}

// MappingHandlerOptions carries the request-independent settings.
type MappingHandlerOptions struct {
	Decode      reaction.DecodeOptions
	IndexedJobs bool
}

// NewMappingHandler creates a MappingHandler.
func NewMappingHandler(m matching.Matcher, theory *TheorySetting, opts MappingHandlerOptions, logger logging.Logger) *MappingHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MappingHandler{matcher: m, theory: theory, decode: opts.Decode, indexed: opts.IndexedJobs, logger: logger.Named("mappings")}
}

func (h *MappingHandler) readReaction(c *gin.Context) (*reaction.Container, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.Newf(errors.ErrCodeReactionDocumentInvalid, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(err, errors.ErrCodeReactionDocumentInvalid, "cannot read request body")
	}
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeReactionDocumentInvalid, "request body is empty")
	}
	doc, err := reaction.ParseJSONDocument(body)
	if err != nil {
		return nil, err
	}
	if doc.ID == "" {
		doc.ID = "request"
	}
	return reaction.FromDocument(doc, h.decode)
}

func (h *MappingHandler) theoryFor(c *gin.Context) (mapping.Theory, error) {
	if q := c.Query("theory"); q != "" {
		return mapping.ParseTheory(q)
	}
	return h.theory.Get(), nil
}

// Create handles POST /api/v1/mappings.  The body is a JSON reaction
// document; ?theory= overrides the default theory.  A run whose worker pool
// did not drain in time answers 504 without a report.
func (h *MappingHandler) Create(c *gin.Context) {
	theory, err := h.theoryFor(c)
	if err != nil {
		writeAppError(c, err)
		return
	}
	rxn, err := h.readReaction(c)
	if err != nil {
		writeAppError(c, err)
		return
	}

	res, err := h.matcher.Run(c.Request.Context(), rxn, theory)
	if err != nil {
		if c.Request.Context().Err() != nil {
			h.logger.Warn("client went away during mapping", logging.String("reaction_id", rxn.ID), logging.Err(err))
		}
		writeAppError(c, err)
		return
	}
	writeData(c, http.StatusOK, matching.NewReport(rxn.ID, res))
}

// Validate handles POST /api/v1/mappings/validate.  It reports candidate
// and job counts and identifier problems without running the kernel.
func (h *MappingHandler) Validate(c *gin.Context) {
	rxn, err := h.readReaction(c)
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeData[maptypes.Validation](c, http.StatusOK, matching.Inspect(rxn, rxn.ID, h.indexed))
}

// Theories handles GET /api/v1/theories.
func (h *MappingHandler) Theories(c *gin.Context) {
	names := make([]string, len(mapping.Theories))
	for k, t := range mapping.Theories {
		names[k] = t.String()
	}
	writeData(c, http.StatusOK, gin.H{"default": h.theory.Get().String(), "theories": names})
}
