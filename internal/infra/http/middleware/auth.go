package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const (
	userKey ctxKey = iota
	claimClienteKey
	clienteKey
)

// ClienteHeader é o header que escolhe o tenant de cada requisição.
const ClienteHeader = "cliente_id"

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Success: false, Message: msg, Data: data})
}

func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}

func ClienteID(ctx context.Context) string {
	v, _ := ctx.Value(clienteKey).(string)
	return v
}

// WithTenant injeta usuário e cliente no contexto, como Auth + Tenant fariam.
func WithTenant(ctx context.Context, userID, clienteID string) context.Context {
	ctx = context.WithValue(ctx, userKey, userID)
	return context.WithValue(ctx, clienteKey, clienteID)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// claimCliente procura cliente_id no topo do token ou em app_metadata (Supabase).
func claimCliente(claims jwt.MapClaims) string {
	if v, ok := claims["cliente_id"].(string); ok {
		return v
	}
	if meta, ok := claims["app_metadata"].(map[string]any); ok {
		if v, ok := meta["cliente_id"].(string); ok {
			return v
		}
	}
	return ""
}

// Auth valida o JWT de sessão (HS256, segredo do Supabase). Sem sessão
// válida responde 401 com login_url para o painel redirecionar.
func Auth(secret, loginURL string) func(http.Handler) http.Handler {
	key := []byte(secret)
	unauthorized := func(w http.ResponseWriter, msg string) {
		writeError(w, http.StatusUnauthorized, msg, map[string]string{"login_url": loginURL})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				unauthorized(w, "Sessão não encontrada. Faça login novamente")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
			if err != nil {
				msg := "Sessão inválida. Faça login novamente"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "Sessão expirada. Faça login novamente"
				}
				unauthorized(w, msg)
				return
			}

			sub, _ := claims.GetSubject()
			ctx := context.WithValue(r.Context(), userKey, sub)
			ctx = context.WithValue(ctx, claimClienteKey, claimCliente(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Tenant exige o header cliente_id. Se o token trouxer um cliente_id
// diferente, a requisição é recusada.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clienteID := strings.TrimSpace(r.Header.Get(ClienteHeader))
		if clienteID == "" {
			writeError(w, http.StatusBadRequest, "Header cliente_id é obrigatório", nil)
			return
		}

		if claim, _ := r.Context().Value(claimClienteKey).(string); claim != "" && claim != clienteID {
			writeError(w, http.StatusForbidden, "Acesso negado a este cliente", nil)
			return
		}

		ctx := context.WithValue(r.Context(), clienteKey, clienteID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DevAuth substitui Auth em modo debug sem segredo configurado. Nunca usar em produção.
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userKey, "dev")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
