package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/adapter/dto"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// Search runs memory search against the backend
type Search struct {
	searcher repositories.MemorySearcher
	logger   *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher repositories.MemorySearcher, logger *zap.Logger) *Search {
	return &Search{searcher: searcher, logger: logger}
}

// SearchMemories handles GET /search
// @Summary      Search memories
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        query    query     string  true   "Free text query"
// @Param        contact  query     string  false  "Restrict to a contact"
// @Success      200      {array}   entities.SearchResult
// @Router       /search [get]
func (h *Search) SearchMemories(c echo.Context) error {
	var req dto.SearchRequest
	if err := bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	results, err := h.searcher.SearchMemories(c.Request().Context(), req.Query, req.Contact)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if results == nil {
		results = []entities.SearchResult{}
	}
	return HandleSuccess(h.logger, c, results)
}
