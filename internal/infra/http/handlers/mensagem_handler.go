package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

type MensagemHandler struct {
	UC *usecase.MensagemUseCase
}

func NewMensagemHandler(uc *usecase.MensagemUseCase) *MensagemHandler {
	return &MensagemHandler{UC: uc}
}

func (h *MensagemHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.List(r.Context(), clienteID(r), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *MensagemHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.UC.Get(r.Context(), clienteID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, m)
}

func (h *MensagemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.MensagemInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.UC.Create(r.Context(), clienteID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, m, "Mensagem de follow-up criada")
}

func (h *MensagemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in usecase.MensagemInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.UC.Update(r.Context(), clienteID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, m)
}

func (h *MensagemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), clienteID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Mensagem excluída")
}

func (h *MensagemHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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

// PorDia aceita ?desde=AAAA-MM-DD; sem ele usa todo o histórico.
func (h *MensagemHandler) PorDia(w http.ResponseWriter, r *http.Request) {
	var desde *time.Time
	if raw := r.URL.Query().Get("desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(w, "Data inválida, use AAAA-MM-DD")
			return
		}
		desde = &t
	}

	stats, err := h.UC.PorDia(r.Context(), clienteID(r), desde)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, stats)
}

func (h *MensagemHandler) Envios(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Envios(r.Context(), clienteID(r), chi.URLParam(r, "id"), r.URL.Query().Get("status"), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}
