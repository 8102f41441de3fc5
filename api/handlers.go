package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osuc/buscaramos/requisites"
	"github.com/osuc/buscaramos/service"
)

const viewBlocks = "blocks"

type Service interface {
	CourseRequisites(ctx context.Context, sigle string) (service.CourseRequisites, error)
	Unlocks(ctx context.Context, sigle string) ([]requisites.CourseRef, error)
	Parse(ctx context.Context, kind service.Kind, text string, annotate bool) (service.ParseResult, error)
}

// HealthCheck reports whether the backing services are reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	service Service
	health  HealthCheck
}

func NewHandler(svc Service, health HealthCheck) *Handler {
	return &Handler{service: svc, health: health}
}

func sigleParam(c *gin.Context) (string, error) {
	sigle := strings.ToUpper(strings.TrimSpace(c.Param("sigle")))
	if !requisites.ValidSigle(sigle) {
		return "", fmt.Errorf("%w: invalid sigle %q", ErrBadRequest, c.Param("sigle"))
	}
	return sigle, nil
}

func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CourseRequisites(c *gin.Context) {
	sigle, err := sigleParam(c)
	if err != nil {
		HandleAPIError(c, err)
		return
	}

	result, err := h.service.CourseRequisites(c.Request.Context(), sigle)
	if err != nil {
		HandleAPIError(c, err)
		return
	}

	if c.Query("view") == viewBlocks {
		c.JSON(http.StatusOK, newCourseBlocksResponse(result))
		return
	}
	c.JSON(http.StatusOK, newCourseRequisitesResponse(result))
}

func (h *Handler) Unlocks(c *gin.Context) {
	sigle, err := sigleParam(c)
	if err != nil {
		HandleAPIError(c, err)
		return
	}

	courses, err := h.service.Unlocks(c.Request.Context(), sigle)
	if err != nil {
		HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, UnlocksResponse{Sigle: sigle, Courses: courses})
}

func (h *Handler) Parse(c *gin.Context) {
	var request ParseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		HandleAPIError(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	result, err := h.service.Parse(c.Request.Context(), request.Kind, request.Text, request.Annotate)
	if err != nil {
		HandleAPIError(c, err)
		return
	}

	if c.Query("view") == viewBlocks {
		c.JSON(http.StatusOK, newParseBlocksResponse(result))
		return
	}
	c.JSON(http.StatusOK, newParseResponse(result))
}
