package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiptrain/portal/internal/models"
	"github.com/shiptrain/portal/internal/services"
	apperrors "github.com/shiptrain/portal/pkg/errors"
)

// MarketHandler serves marketplace downloads
type MarketHandler struct {
	service services.MarketServiceInterface
}

func NewMarketHandler(service services.MarketServiceInterface) *MarketHandler {
	return &MarketHandler{service: service}
}

// Sample handles GET /market/sample/:id. A missing sample is reported the way the
// marketplace backend does: HTTP 200 carrying a JSON error envelope.
func (h *MarketHandler) Sample(c *gin.Context) {
	var uri models.SampleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondValidationError(c, err)
		return
	}

	sample, err := h.service.Sample(c.Request.Context(), uri.ID)
	if err != nil {
		attachError(c, err)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondEnvelope(c, http.StatusOK, http.StatusNotFound, "sample file does not exist", nil)
			return
		}
		respondEnvelope(c, http.StatusOK, http.StatusInternalServerError, "failed to generate sample", nil)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": sample.Filename}))
	c.Data(http.StatusOK, sample.ContentType, sample.Content)
}
