package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/verona/verona/internal/middleware"
	"github.com/verona/verona/internal/model"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	UpdateProfile(ctx context.Context, accountID string, upd model.ProfileUpdate) error
}

// AccountHandler はプロフィール管理のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// profileUpdateRequest はプロフィール更新のリクエストボディ。
// ポインタ型で「未指定」と「空値で上書き」を区別する。
// ここに無いフィールド（特にisAdmin/isPremium）はボディに何が
// 含まれていても無視される。
type profileUpdateRequest struct {
	Nickname   *string   `json:"nickname"`
	GivenName  *string   `json:"givenName"`
	FamilyName *string   `json:"familyName"`
	Age        *int      `json:"age"`
	Phone      *string   `json:"phone"`
	Bio        *string   `json:"bio"`
	Avatar     *string   `json:"avatar"`
	Interests  *[]string `json:"interests"`
}

// UpdateProfile はプロフィールの部分更新を適用する。
// POST /api/ulozit-profil
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID, err := middleware.AccountIDFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}

	upd := model.ProfileUpdate{
		Nickname:   req.Nickname,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Age:        req.Age,
		Phone:      req.Phone,
		Bio:        req.Bio,
		Avatar:     req.Avatar,
		Interests:  req.Interests,
	}

	if err := h.service.UpdateProfile(r.Context(), accountID, upd); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}
