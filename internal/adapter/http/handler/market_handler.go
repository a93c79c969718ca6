package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// MarketService defines the behavior needed by MarketHandler.
type MarketService interface {
	Prices(ctx context.Context) domain.PriceSnapshot
	Refresh(ctx context.Context) (*usecase.RefreshResult, error)
}

// MarketHandler handles price requests.
type MarketHandler struct {
	marketUC MarketService
	logger   zerolog.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketUC MarketService, logger zerolog.Logger) *MarketHandler {
	return &MarketHandler{marketUC: marketUC, logger: logger}
}

// Prices returns the latest price snapshot.
func (h *MarketHandler) Prices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.marketUC.Prices(r.Context()))
}

// Refresh fetches every price. Partial failures still answer 200 and list the
// failed assets.
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.marketUC.Refresh(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("price refresh failed")
		writeError(w, mapDomainError(err), "failed to refresh prices", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RefreshFromDomain(result))
}
