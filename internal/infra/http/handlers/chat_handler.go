package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

type ChatHandler struct {
	UC *usecase.ChatUseCase
}

func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{UC: uc}
}

type enviarRequest struct {
	Texto string `json:"texto"`
}

func (h *ChatHandler) Clientes(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Clientes(r.Context(), clienteID(r), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *ChatHandler) Mensagens(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Mensagens(r.Context(), clienteID(r), chi.URLParam(r, "telefone"), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *ChatHandler) Enviar(w http.ResponseWriter, r *http.Request) {
	var req enviarRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := h.UC.Enviar(r.Context(), clienteID(r), chi.URLParam(r, "telefone"), req.Texto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, msg, "Mensagem enviada")
}

func (h *ChatHandler) Pausar(w http.ResponseWriter, r *http.Request) {
	pausada, ok := decodeFlag(w, r, "pausada")
	if !ok {
		return
	}
	if err := h.UC.PausarIA(r.Context(), clienteID(r), chi.URLParam(r, "telefone"), pausada); err != nil {
		writeError(w, r, err)
		return
	}
	msg := "IA retomada"
	if pausada {
		msg = "IA pausada"
	}
	writeMessage(w, msg)
}

// Webhook recebe as mensagens que o runtime dos agentes troca com o contato.
func (h *ChatHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var in usecase.ChatWebhookInput
	if !decodeJSON(w, r, &in) {
		return
	}
	msg, err := h.UC.Registrar(r.Context(), clienteID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, msg, "")
}
