package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

// FollowUpUseCase cobre o ciclo do follow-up: agenda (DispatchDue), entrega
// (Deliver) e relatório diário (SendDailyReports).
type FollowUpUseCase struct {
	EnvioRepo    entity.EnvioRepositoryInterface
	MensagemRepo entity.MensagemRepositoryInterface
	ConfigRepo   entity.ConfiguracaoRepositoryInterface
	Publisher    FollowUpPublisher
	Sender       MessageSender
	Mailer       ReportMailer
}

func NewFollowUpUseCase(
	envioRepo entity.EnvioRepositoryInterface,
	mensagemRepo entity.MensagemRepositoryInterface,
	configRepo entity.ConfiguracaoRepositoryInterface,
	publisher FollowUpPublisher,
	sender MessageSender,
	mailer ReportMailer,
) *FollowUpUseCase {
	return &FollowUpUseCase{
		EnvioRepo:    envioRepo,
		MensagemRepo: mensagemRepo,
		ConfigRepo:   configRepo,
		Publisher:    publisher,
		Sender:       sender,
		Mailer:       mailer,
	}
}

// DispatchDue reserva um envio PENDENTE para cada par vencido e publica na fila.
// Devolve quantos foram enfileirados.
func (uc *FollowUpUseCase) DispatchDue(ctx context.Context, agora time.Time) (int, error) {
	pendentes, err := uc.EnvioRepo.Pendentes(ctx, agora)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar follow-ups pendentes: %w", err)
	}

	log := logger.WithComponent("followup")
	enfileirados := 0
	for _, p := range pendentes {
		envio := entity.NewFollowUpEnvio(p, agora)

		ok, err := uc.EnvioRepo.Reserve(ctx, envio)
		if err != nil {
			log.WithError(err).Errorf("❌ Erro ao reservar envio (mensagem=%s lead=%s)", p.MensagemID, p.LeadID)
			continue
		}
		if !ok {
			continue
		}

		payload := entity.FollowUpPayload{
			EnvioID:    envio.ID,
			ClienteID:  p.ClienteID,
			MensagemID: p.MensagemID,
			LeadID:     p.LeadID,
			Dia:        p.Dia,
			Nome:       p.Nome,
			Telefone:   p.Telefone,
			Texto:      entity.Render(p.Texto, p.Nome),
		}
		if err := uc.Publisher.PublishFollowUp(ctx, payload); err != nil {
			log.WithError(err).Errorf("❌ Falha ao enfileirar envio %s", envio.ID)
			if mErr := uc.EnvioRepo.MarkErro(ctx, envio.ID, "Falha ao enfileirar: "+FriendlyMessage(err)); mErr != nil {
				log.WithError(mErr).Warnf("⚠️ Envio %s ficou PENDENTE", envio.ID)
			}
			continue
		}
		enfileirados++
	}
	return enfileirados, nil
}

// Deliver envia o texto pelo WhatsApp e registra o resultado no envio.
func (uc *FollowUpUseCase) Deliver(ctx context.Context, p entity.FollowUpPayload) error {
	if err := uc.Sender.SendText(ctx, p.Telefone, p.Texto); err != nil {
		if mErr := uc.EnvioRepo.MarkErro(ctx, p.EnvioID, FriendlyMessage(err)); mErr != nil {
			logger.WithComponent("followup").WithError(mErr).Warnf("⚠️ Não foi possível marcar erro no envio %s", p.EnvioID)
		}
		return fmt.Errorf("erro ao enviar follow-up %s: %w", p.EnvioID, err)
	}
	if err := uc.EnvioRepo.MarkSucesso(ctx, p.EnvioID); err != nil {
		return fmt.Errorf("erro ao marcar envio %s como enviado: %w", p.EnvioID, err)
	}
	return nil
}

// SendDailyReports manda o resumo por dia de follow-up para todo cliente com
// e-mail de relatório configurado, mesmo sem envios no dia.
func (uc *FollowUpUseCase) SendDailyReports(ctx context.Context, dia time.Time) (int, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())

	destinos, err := uc.ConfigRepo.ListByChave(ctx, entity.ChaveEmailRelatorio)
	if err != nil {
		return 0, fmt.Errorf("erro ao listar e-mails de relatório: %w", err)
	}

	log := logger.WithComponent("relatorio")
	enviados := 0
	for _, cfg := range destinos {
		clienteID := cfg.ClienteID
		to := strings.TrimSpace(cfg.Valor)
		if to == "" {
			continue
		}

		stats, err := uc.MensagemRepo.PorDia(ctx, clienteID, &inicio)
		if err != nil {
			log.WithError(err).Warnf("⚠️ Erro ao montar relatório do cliente %s", clienteID)
			continue
		}

		rel := RelatorioFollowUp{ClienteID: clienteID, Data: inicio.Format("02/01/2006"), Dias: stats}
		for _, s := range stats {
			rel.Total += s.Total
			rel.Sucesso += s.Sucesso
			rel.Erro += s.Erro
		}

		if err := uc.Mailer.SendFollowUpReport(to, rel); err != nil {
			log.WithError(err).Errorf("❌ Falha ao enviar relatório para %s", to)
			continue
		}
		enviados++
	}
	return enviados, nil
}
