package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

type AgenteHandler struct {
	UC *usecase.AgenteUseCase
}

func NewAgenteHandler(uc *usecase.AgenteUseCase) *AgenteHandler {
	return &AgenteHandler{UC: uc}
}

// Tipos lista os tipos de agente, que são globais.
func (h *AgenteHandler) Tipos(w http.ResponseWriter, r *http.Request) {
	tipos, err := h.UC.Tipos(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, tipos)
}

func (h *AgenteHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.List(r.Context(), clienteID(r), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *AgenteHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.UC.Get(r.Context(), clienteID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, a)
}

func (h *AgenteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.AgenteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.UC.Create(r.Context(), clienteID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, a, "Agente criado")
}

func (h *AgenteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in usecase.AgenteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.UC.Update(r.Context(), clienteID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, a)
}

func (h *AgenteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), clienteID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Agente excluído")
}

func (h *AgenteHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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

func (h *AgenteHandler) SetAtivo(w http.ResponseWriter, r *http.Request) {
	ativo, ok := decodeFlag(w, r, "ativo")
	if !ok {
		return
	}
	if err := h.UC.SetAtivo(r.Context(), clienteID(r), chi.URLParam(r, "id"), ativo); err != nil {
		writeError(w, r, err)
		return
	}
	msg := "Agente desativado"
	if ativo {
		msg = "Agente ativado"
	}
	writeMessage(w, msg)
}
