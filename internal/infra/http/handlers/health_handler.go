package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type healthChecker interface {
	Healthy() bool
}

type pinger interface {
	Ping(ctx context.Context) error
}

type configurable interface {
	Configured() bool
}

// HealthHandler reporta o estado das dependências. Campo nil = "not configured".
type HealthHandler struct {
	DB        *sql.DB
	RabbitMQ  healthChecker
	Cache     pinger
	Search    healthChecker
	WhatsApp  configurable
	Kommo     configurable
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	deps["rabbitmq"] = checkHealthy(h.RabbitMQ, "connection closed")
	deps["meilisearch"] = checkHealthy(h.Search, "unreachable")

	if h.Cache != nil {
		if err := h.Cache.Ping(ctx); err != nil {
			deps["redis"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["redis"] = "healthy"
		}
	} else {
		deps["redis"] = "not configured"
	}

	deps["whatsapp"] = checkConfigured(h.WhatsApp)
	deps["kommo"] = checkConfigured(h.Kommo)

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(response)
}

func checkHealthy(c healthChecker, reason string) string {
	if c == nil {
		return "not configured"
	}
	if !c.Healthy() {
		return "unhealthy: " + reason
	}
	return "healthy"
}

func checkConfigured(c configurable) string {
	if c == nil || !c.Configured() {
		return "not configured"
	}
	return "configured"
}
