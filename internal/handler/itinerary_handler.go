package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/verona/verona/internal/model"
)

// ItineraryServiceInterface は旅程生成ハンドラーが必要とするサービスインターフェース。
type ItineraryServiceInterface interface {
	Generate(ctx context.Context, place, styleSpec string, filterTags []string) (*model.Itinerary, error)
}

// ItineraryHandler は旅程生成のHTTPハンドラー。
type ItineraryHandler struct {
	service ItineraryServiceInterface
}

// NewItineraryHandler はItineraryHandlerを生成する。
func NewItineraryHandler(service ItineraryServiceInterface) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

// generateRequest は旅程生成のリクエストボディ。
type generateRequest struct {
	Place      string   `json:"place"`
	StyleSpec  string   `json:"styleSpec"`
	FilterTags []string `json:"filterTags"`
}

// Generate は旅程を生成する。
// POST /api/vylet
// 成功時は {"success":true,"data":...}、失敗時は {"success":false,"error":...}。
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}

	itinerary, err := h.service.Generate(r.Context(), req.Place, req.StyleSpec, req.FilterTags)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    itinerary,
	})
}
