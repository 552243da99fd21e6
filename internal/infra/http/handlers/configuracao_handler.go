package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

type ConfiguracaoHandler struct {
	UC *usecase.ConfiguracaoUseCase
}

func NewConfiguracaoHandler(uc *usecase.ConfiguracaoUseCase) *ConfiguracaoHandler {
	return &ConfiguracaoHandler{UC: uc}
}

type configuracaoRequest struct {
	Chave string `json:"chave"`
	Valor string `json:"valor"`
}

func (h *ConfiguracaoHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.List(r.Context(), clienteID(r), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *ConfiguracaoHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.UC.Get(r.Context(), clienteID(r), chi.URLParam(r, "chave"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, c)
}

// Set cria ou sobrescreve a chave.
func (h *ConfiguracaoHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req configuracaoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.UC.Set(r.Context(), clienteID(r), req.Chave, req.Valor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: c, Message: "Configuração salva"})
}

func (h *ConfiguracaoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), clienteID(r), chi.URLParam(r, "chave")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Configuração removida")
}
