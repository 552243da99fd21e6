package search

import (
	"context"
	"fmt"

	"github.com/meilisearch/meilisearch-go"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

const primaryKey = "id"

// Indexer mantém os documentos das bases de conhecimento no Meilisearch.
type Indexer struct {
	client    meilisearch.ServiceManager
	indexName string
}

func newClient(host, apiKey string) meilisearch.ServiceManager {
	return meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
}

// NewIndexer conecta e garante que o índice existe com os atributos certos.
func NewIndexer(host, apiKey, indexName string) *Indexer {
	log := logger.WithComponent("meilisearch")
	client := newClient(host, apiKey)

	if _, err := client.CreateIndex(&meilisearch.IndexConfig{Uid: indexName, PrimaryKey: primaryKey}); err != nil {
		log.WithError(err).Warn("⚠️ Aviso ao criar índice")
	}

	idx := client.Index(indexName)
	if _, err := idx.UpdateSearchableAttributes(&[]string{"titulo", "conteudo"}); err != nil {
		log.WithError(err).Warn("⚠️ Aviso ao configurar atributos de busca")
	}
	filterable := []interface{}{"cliente_id", "base_id", "removido"}
	if _, err := idx.UpdateFilterableAttributes(&filterable); err != nil {
		log.WithError(err).Warn("⚠️ Aviso ao configurar filtros")
	}

	log.Infof("🔎 Conectado ao Meilisearch (índice %s)", indexName)
	return &Indexer{client: client, indexName: indexName}
}

func documentFields(doc *entity.Documento) map[string]interface{} {
	return map[string]interface{}{
		"id":         doc.ID,
		"cliente_id": doc.ClienteID,
		"base_id":    doc.BaseID,
		"titulo":     doc.Titulo,
		"conteudo":   doc.Conteudo,
		"removido":   false,
	}
}

func (i *Indexer) upsert(ctx context.Context, doc map[string]interface{}) error {
	pk := primaryKey
	_, err := i.client.Index(i.indexName).UpdateDocumentsWithContext(ctx, []map[string]interface{}{doc},
		&meilisearch.DocumentOptions{PrimaryKey: &pk})
	return err
}

func (i *Indexer) Index(ctx context.Context, doc *entity.Documento) error {
	if err := i.upsert(ctx, documentFields(doc)); err != nil {
		return fmt.Errorf("erro ao indexar documento: %w", err)
	}
	return nil
}

// Remove faz um update parcial marcando removido, sem apagar do índice.
func (i *Indexer) Remove(ctx context.Context, clienteID, id string) error {
	err := i.upsert(ctx, map[string]interface{}{"id": id, "cliente_id": clienteID, "removido": true})
	if err != nil {
		return fmt.Errorf("erro ao remover documento do índice: %w", err)
	}
	return nil
}

func (i *Indexer) Healthy() bool {
	return i.client.IsHealthy()
}

// NoopIndexer é usado quando não há Meilisearch configurado.
type NoopIndexer struct{}

func (NoopIndexer) Index(context.Context, *entity.Documento) error { return nil }

func (NoopIndexer) Remove(context.Context, string, string) error { return nil }
