package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/http/middleware"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

// Processor entrega um follow-up (WhatsApp + status do envio).
type Processor interface {
	Deliver(ctx context.Context, p entity.FollowUpPayload) error
}

// Deduplicator guarda os envios já processados, para que uma reentrega do
// broker não mande a mesma mensagem duas vezes.
type Deduplicator interface {
	IsProcessed(ctx context.Context, kind, id string) (bool, error)
	MarkProcessed(ctx context.Context, kind, id string) error
}

const dedupKind = "envio"

type Worker struct {
	Channel   *amqp.Channel
	Processor Processor
	Dedup     Deduplicator
}

func NewWorker(ch *amqp.Channel, processor Processor, dedup Deduplicator) *Worker {
	return &Worker{Channel: ch, Processor: processor, Dedup: dedup}
}

// Start consome q.followups até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context) error {
	log := logger.WithComponent("followup-worker")

	if err := w.Channel.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("falha ao configurar prefetch: %w", err)
	}

	msgs, err := w.Channel.ConsumeWithContext(ctx,
		QueueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Infof("👷 Worker aguardando na fila '%s'", QueueName)
	for {
		select {
		case <-ctx.Done():
			log.Info("⚠️ Worker de follow-up encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal do RabbitMQ fechado")
			}
			if w.handle(ctx, d.Body) {
				d.Ack(false)
			} else {
				d.Nack(false, false)
			}
		}
	}
}

// handle processa uma entrega e diz se ela deve receber Ack.
func (w *Worker) handle(ctx context.Context, body []byte) bool {
	log := logger.WithComponent("followup-worker")

	var payload entity.FollowUpPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.WithError(err).Error("❌ JSON inválido na fila")
		return false
	}
	log = log.WithField("envio_id", payload.EnvioID).WithField("cliente_id", payload.ClienteID)

	if w.Dedup != nil {
		seen, err := w.Dedup.IsProcessed(ctx, dedupKind, payload.EnvioID)
		if err != nil {
			log.WithError(err).Warn("⚠️ Redis indisponível, seguindo sem deduplicação")
		}
		if seen {
			log.Info("⏭️ Envio já processado, descartando reentrega")
			return true
		}
	}

	log.Infof("📤 Enviando follow-up do dia %d", payload.Dia)
	if err := w.Processor.Deliver(ctx, payload); err != nil {
		log.WithError(err).Error("❌ Falha no envio do follow-up")
		middleware.RecordFollowUp(entity.EnvioErro)
		middleware.RecordIntegrationError("whatsapp")
		w.markProcessed(ctx, payload.EnvioID)
		return false
	}

	middleware.RecordFollowUp(entity.EnvioSucesso)
	w.markProcessed(ctx, payload.EnvioID)
	log.Info("✅ Follow-up enviado")
	return true
}

func (w *Worker) markProcessed(ctx context.Context, id string) {
	if w.Dedup == nil {
		return
	}
	if err := w.Dedup.MarkProcessed(ctx, dedupKind, id); err != nil {
		logger.WithComponent("followup-worker").WithError(err).Warnf("⚠️ Não foi possível marcar envio %s", id)
	}
}
