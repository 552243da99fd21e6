package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/painel-crm/internal/config"
	"github.com/xavierca1/painel-crm/internal/infra/http/handlers"
	"github.com/xavierca1/painel-crm/internal/infra/http/middleware"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

type apiHandlers struct {
	Health       *handlers.HealthHandler
	Lead         *handlers.LeadHandler
	Agente       *handlers.AgenteHandler
	Base         *handlers.BaseHandler
	Documento    *handlers.DocumentoHandler
	Mensagem     *handlers.MensagemHandler
	Configuracao *handlers.ConfiguracaoHandler
	Chat         *handlers.ChatHandler
	Profile      *handlers.ProfileHandler
}

func newRouter(cfg *config.Config, h apiHandlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.ClienteHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	auth := middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.LoginURL)
	if cfg.Auth.JWTSecret == "" && cfg.Debug {
		logger.Log.Warn("⚠️ DEBUG sem SUPABASE_JWT_SECRET: autenticação desligada")
		auth = middleware.DevAuth
	}
	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/tipos-agente", h.Agente.Tipos)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Tenant)
			r.Use(limiter.Middleware)

			r.Get("/profile", h.Profile.Get)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Get("/export", h.Lead.Export)
				r.Post("/import/preview", h.Lead.ImportPreview)
				r.Post("/import", h.Lead.Import)
				r.Post("/bulk-delete", h.Lead.BulkDelete)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
				r.Put("/{id}/ia", h.Lead.SetIAPausada)
				r.Put("/{id}/followup", h.Lead.SetFollowUpAtivo)
			})

			r.Route("/agentes", func(r chi.Router) {
				r.Get("/", h.Agente.List)
				r.Post("/", h.Agente.Create)
				r.Post("/bulk-delete", h.Agente.BulkDelete)
				r.Get("/{id}", h.Agente.Get)
				r.Put("/{id}", h.Agente.Update)
				r.Delete("/{id}", h.Agente.Delete)
				r.Put("/{id}/ativo", h.Agente.SetAtivo)
			})

			r.Route("/base", func(r chi.Router) {
				r.Get("/", h.Base.List)
				r.Post("/", h.Base.Create)
				r.Get("/{id}", h.Base.Get)
				r.Put("/{id}", h.Base.Update)
				r.Delete("/{id}", h.Base.Delete)
			})

			r.Route("/documentos", func(r chi.Router) {
				r.Get("/", h.Documento.List)
				r.Post("/", h.Documento.Create)
				r.Post("/bulk-delete", h.Documento.BulkDelete)
				r.Get("/{id}", h.Documento.Get)
				r.Put("/{id}", h.Documento.Update)
				r.Delete("/{id}", h.Documento.Delete)
			})

			r.Route("/mensagens", func(r chi.Router) {
				r.Get("/", h.Mensagem.List)
				r.Post("/", h.Mensagem.Create)
				r.Post("/bulk-delete", h.Mensagem.BulkDelete)
				r.Get("/por-dia", h.Mensagem.PorDia)
				r.Get("/{id}", h.Mensagem.Get)
				r.Put("/{id}", h.Mensagem.Update)
				r.Delete("/{id}", h.Mensagem.Delete)
				r.Get("/{id}/envios", h.Mensagem.Envios)
			})

			r.Route("/configuracoes", func(r chi.Router) {
				r.Get("/", h.Configuracao.List)
				r.Put("/", h.Configuracao.Set)
				r.Get("/{chave}", h.Configuracao.Get)
				r.Delete("/{chave}", h.Configuracao.Delete)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Get("/clientes", h.Chat.Clientes)
				r.Get("/clientes/{telefone}/mensagens", h.Chat.Mensagens)
				r.Post("/clientes/{telefone}/mensagens", h.Chat.Enviar)
				r.Put("/clientes/{telefone}/pausar", h.Chat.Pausar)
				r.Post("/webhook", h.Chat.Webhook)
			})
		})
	})

	return r
}
