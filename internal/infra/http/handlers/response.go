package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/http/middleware"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
	"github.com/xavierca1/painel-crm/internal/usecase"
)

// Envelope é o formato de toda resposta JSON do painel.
type Envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: msg})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: msg})
}

func writeList[T any](w http.ResponseWriter, out *usecase.ListOutput[T]) {
	p := out.Pagination
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: out.Items, Pagination: &p})
}

// writeError traduz o erro do caso de uso em status + mensagem amigável.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve usecase.ValidationErrors
		de *usecase.DomainError
		te *usecase.TechnicalError
	)

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, Envelope{Message: validationMessage(ve), Data: ve})
	case errors.As(err, &de):
		writeJSON(w, statusFor(err), Envelope{Message: de.Message})
	case errors.As(err, &te):
		logger.WithCliente(middleware.ClienteID(r.Context())).WithError(te.Err).Errorf("❌ [%s] %s", te.Code, te.Message)
		middleware.RecordIntegrationError(strings.ToLower(strings.TrimSuffix(te.Code, "_ERROR")))
		writeJSON(w, http.StatusBadGateway, Envelope{Message: te.Message})
	case statusFor(err) != http.StatusInternalServerError:
		writeJSON(w, statusFor(err), Envelope{Message: usecase.FriendlyMessage(err)})
	default:
		logger.WithCliente(middleware.ClienteID(r.Context())).WithError(err).
			Errorf("❌ Erro em %s %s", r.Method, r.URL.Path)
		msg := usecase.FriendlyMessage(err)
		if msg == err.Error() {
			msg = "Erro interno. Tente novamente em instantes"
		}
		writeJSON(w, http.StatusInternalServerError, Envelope{Message: msg})
	}
}

func validationMessage(ve usecase.ValidationErrors) string {
	if len(ve) == 1 {
		return ve[0].Message
	}
	return "Dados inválidos"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "JSON inválido")
		return false
	}
	return true
}

// pageRequest lê ?page, ?limit e ?q (ou ?search).
func pageRequest(r *http.Request) entity.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	req := entity.NewPageRequest(page, limit)
	req.Search = q.Get("q")
	if req.Search == "" {
		req.Search = q.Get("search")
	}
	return req
}

func clienteID(r *http.Request) string {
	return middleware.ClienteID(r.Context())
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// decodeFlag lê um único campo booleano obrigatório do corpo, ex. {"ativo": true}.
func decodeFlag(w http.ResponseWriter, r *http.Request, field string) (bool, bool) {
	var body map[string]any
	if !decodeJSON(w, r, &body) {
		return false, false
	}
	v, ok := body[field].(bool)
	if !ok {
		badRequest(w, "Campo "+field+" é obrigatório")
		return false, false
	}
	return v, true
}
