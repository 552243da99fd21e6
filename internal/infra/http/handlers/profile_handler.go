package handlers

import (
	"net/http"

	"github.com/xavierca1/painel-crm/internal/infra/http/middleware"
	"github.com/xavierca1/painel-crm/internal/usecase"
)

type ProfileHandler struct {
	UC *usecase.ProfileUseCase
}

func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{UC: uc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.UC.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, p)
}
