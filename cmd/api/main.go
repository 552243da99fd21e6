package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/xavierca1/painel-crm/internal/config"
	"github.com/xavierca1/painel-crm/internal/infra/cache"
	"github.com/xavierca1/painel-crm/internal/infra/database"
	"github.com/xavierca1/painel-crm/internal/infra/http/handlers"
	"github.com/xavierca1/painel-crm/internal/infra/integration/kommo"
	"github.com/xavierca1/painel-crm/internal/infra/integration/whatsapp"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
	"github.com/xavierca1/painel-crm/internal/infra/mail"
	"github.com/xavierca1/painel-crm/internal/infra/queue"
	"github.com/xavierca1/painel-crm/internal/infra/search"
	"github.com/xavierca1/painel-crm/internal/infra/worker"
	"github.com/xavierca1/painel-crm/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("❌ Erro ao carregar configuração")
	}
	logger.Setup(logger.Options{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		Console:   cfg.Log.Console,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	log := logger.WithComponent("api")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("❌ Configuração inválida")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Infra
	db, err := database.NewDBConnection(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("❌ Erro ao conectar no banco")
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		log.WithError(err).Fatal("❌ Erro ao aplicar migrações")
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if err != nil {
		log.WithError(err).Fatal("❌ Erro ao conectar no RabbitMQ")
	}

	var (
		store  *cache.Store
		locker worker.Locker
		dedup  queue.Deduplicator
	)
	if cfg.Redis.Address != "" {
		rdb, err := cache.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Fatal("❌ Erro ao conectar no Redis")
		}
		store = cache.NewStore(rdb, 0)
		locker, dedup = store, store
	} else {
		log.Warn("⚠️ REDIS_ADDR não definido: sem lock distribuído nem deduplicação")
	}

	var indexer usecase.DocumentIndexer = search.NoopIndexer{}
	var meili *search.Indexer
	if cfg.Meilisearch.Host != "" {
		meili = search.NewIndexer(cfg.Meilisearch.Host, cfg.Meilisearch.Key, cfg.Meilisearch.Index)
		indexer = meili
	}

	// 2. Repositórios
	leadRepo := database.NewLeadRepository(db)
	agenteRepo := database.NewAgenteRepository(db)
	tipoRepo := database.NewTipoAgenteRepository(db)
	baseRepo := database.NewBaseRepository(db)
	documentoRepo := database.NewDocumentoRepository(db)
	mensagemRepo := database.NewMensagemRepository(db)
	envioRepo := database.NewEnvioRepository(db)
	configRepo := database.NewConfiguracaoRepository(db)
	profileRepo := database.NewProfileRepository(db)
	chatRepo := database.NewChatRepository(db)

	// 3. Integrações
	whatsappClient := whatsapp.NewClient(cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneID, cfg.WhatsApp.BaseURL)
	kommoClient := kommo.NewClient(cfg.Kommo.Token, cfg.Kommo.BaseURL)
	var syncer usecase.LeadSyncer
	if kommoClient.Configured() {
		syncer = kommoClient
	}
	mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	producer := queue.NewProducer(rabbitMQ.Ch)

	// 4. UseCases
	leadUC := usecase.NewLeadUseCase(leadRepo, syncer)
	agenteUC := usecase.NewAgenteUseCase(agenteRepo, tipoRepo, baseRepo)
	baseUC := usecase.NewBaseUseCase(baseRepo, agenteRepo, documentoRepo, indexer)
	documentoUC := usecase.NewDocumentoUseCase(documentoRepo, baseRepo, indexer)
	mensagemUC := usecase.NewMensagemUseCase(mensagemRepo, envioRepo, agenteRepo)
	configUC := usecase.NewConfiguracaoUseCase(configRepo)
	chatUC := usecase.NewChatUseCase(chatRepo, leadRepo, whatsappClient)
	profileUC := usecase.NewProfileUseCase(profileRepo)
	followUpUC := usecase.NewFollowUpUseCase(envioRepo, mensagemRepo, configRepo, producer, whatsappClient, mailSender)

	// 5. Workers
	go worker.NewFollowUpScheduler(followUpUC, locker, cfg.FollowUp.Tick, cfg.FollowUp.ReportHour).Start(ctx)

	consumer := queue.NewWorker(rabbitMQ.Ch, followUpUC, dedup)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.WithError(err).Error("❌ Worker de follow-up parou")
		}
	}()

	// 6. Handlers
	health := handlers.NewHealthHandler(db)
	health.RabbitMQ = rabbitMQ
	health.WhatsApp = whatsappClient
	health.Kommo = kommoClient
	if store != nil {
		health.Cache = store
	}
	if meili != nil {
		health.Search = meili
	}

	router := newRouter(cfg, apiHandlers{
		Health:       health,
		Lead:         handlers.NewLeadHandler(leadUC),
		Agente:       handlers.NewAgenteHandler(agenteUC),
		Base:         handlers.NewBaseHandler(baseUC),
		Documento:    handlers.NewDocumentoHandler(documentoUC),
		Mensagem:     handlers.NewMensagemHandler(mensagemUC),
		Configuracao: handlers.NewConfiguracaoHandler(configUC),
		Chat:         handlers.NewChatHandler(chatUC),
		Profile:      handlers.NewProfileHandler(profileUC),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("🔥 Painel CRM rodando na porta %s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("❌ Erro no servidor HTTP")
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("❌ Erro ao encerrar servidor HTTP")
	}

	if err := rabbitMQ.Close(); err != nil {
		log.WithError(err).Warn("⚠️ Erro ao fechar RabbitMQ")
	}
	if store != nil {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("⚠️ Erro ao fechar Redis")
		}
	}
	if err := db.Close(); err != nil {
		log.WithError(err).Warn("⚠️ Erro ao fechar banco")
	}
	log.Info("👋 Encerrado")
}
