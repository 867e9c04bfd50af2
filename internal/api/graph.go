package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/models"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

// GraphHandler serves the recursive relationship endpoints.
type GraphHandler struct {
	svc      GraphService
	log      *logrus.Logger
	maxDepth int
}

// NewGraphHandler creates a GraphHandler. maxDepth bounds the max_depth path
// parameter; requests above it are rejected before traversal.
func NewGraphHandler(svc GraphService, log *logrus.Logger, maxDepth int) *GraphHandler {
	return &GraphHandler{svc: svc, log: log, maxDepth: maxDepth}
}

// RecursiveRelationships handles GET /recursive_relationships/:start_id/:max_depth.
func (h *GraphHandler) RecursiveRelationships(c *gin.Context) {
	h.traverse(c, traverse.PolicyFiltered)
}

// RecursiveRelationshipsLimited handles GET /recursive_relationships_limited/:start_id/:max_depth.
func (h *GraphHandler) RecursiveRelationshipsLimited(c *gin.Context) {
	h.traverse(c, traverse.PolicyLimited)
}

// RecursiveAllRelationships handles GET /recursive_all_relationships/:start_id/:max_depth.
func (h *GraphHandler) RecursiveAllRelationships(c *gin.Context) {
	h.traverse(c, traverse.PolicyUnfiltered)
}

func (h *GraphHandler) traverse(c *gin.Context, policy string) {
	startID, err := strconv.ParseInt(c.Param("start_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "start_id must be an integer")

		return
	}

	maxDepth, err := parseDepth(c.Param("max_depth"), h.maxDepth)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	g, err := h.svc.RecursiveRelationships(c.Request.Context(), startID, maxDepth, policy)
	if err != nil {
		h.respondTraversalError(c, err, startID)

		return
	}

	c.JSON(http.StatusOK, g)
}

func (h *GraphHandler) respondTraversalError(c *gin.Context, err error, startID int64) {
	switch {
	case errors.Is(err, models.ErrInvalidDepth), errors.Is(err, models.ErrUnknownPolicy):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, models.ErrTraversalTooLarge):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeTraversalTooLarge, "traversal exceeds the step limit; lower max_depth")
	case errors.Is(err, context.DeadlineExceeded):
		h.log.WithError(err).WithField("start_id", startID).Warn("traversal timed out")
		respondError(c, http.StatusGatewayTimeout, ErrCodeTimeout, "traversal timed out")
	default:
		h.log.WithError(err).WithField("start_id", startID).Error("traversing relationships")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// parseDepth parses a max_depth path parameter in [0, limit].
func parseDepth(s string, limit int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("max_depth must be an integer")
	}

	if v < 0 || (limit > 0 && v > limit) {
		return 0, fmt.Errorf("max_depth must be between 0 and %d", limit)
	}

	return v, nil
}
