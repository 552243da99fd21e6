package usecase

import (
	"context"

	"github.com/xavierca1/painel-crm/internal/entity"
)

// DocumentIndexer mantém o índice de busca dos documentos das bases.
type DocumentIndexer interface {
	Index(ctx context.Context, doc *entity.Documento) error
	Remove(ctx context.Context, clienteID, id string) error
}

type MessageSender interface {
	SendText(ctx context.Context, phone, text string) error
}

// LeadSyncer espelha leads num CRM externo.
type LeadSyncer interface {
	SyncLead(ctx context.Context, lead *entity.Lead) error
}

type FollowUpPublisher interface {
	PublishFollowUp(ctx context.Context, payload entity.FollowUpPayload) error
}

type ReportMailer interface {
	SendFollowUpReport(to string, rel RelatorioFollowUp) error
}
