package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

type DocumentoHandler struct {
	UC *usecase.DocumentoUseCase
}

func NewDocumentoHandler(uc *usecase.DocumentoUseCase) *DocumentoHandler {
	return &DocumentoHandler{UC: uc}
}

// List aceita ?base_id= para filtrar uma base.
func (h *DocumentoHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.List(r.Context(), clienteID(r), r.URL.Query().Get("base_id"), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *DocumentoHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.UC.Get(r.Context(), clienteID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, d)
}

func (h *DocumentoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.DocumentoInput
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.UC.Create(r.Context(), clienteID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, d, "Documento criado")
}

func (h *DocumentoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in usecase.DocumentoInput
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.UC.Update(r.Context(), clienteID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, d)
}

func (h *DocumentoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), clienteID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Documento excluído")
}

func (h *DocumentoHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.UC.BulkDelete(r.Context(), clienteID(r), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, res)
}
