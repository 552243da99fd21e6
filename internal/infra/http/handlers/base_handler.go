package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

type BaseHandler struct {
	UC *usecase.BaseUseCase
}

func NewBaseHandler(uc *usecase.BaseUseCase) *BaseHandler {
	return &BaseHandler{UC: uc}
}

func (h *BaseHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.List(r.Context(), clienteID(r), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *BaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.UC.Get(r.Context(), clienteID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, b)
}

func (h *BaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.BaseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.UC.Create(r.Context(), clienteID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, b, "Base criada")
}

func (h *BaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in usecase.BaseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.UC.Update(r.Context(), clienteID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, b)
}

func (h *BaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), clienteID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Base excluída")
}
