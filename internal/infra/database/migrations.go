package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

var migrations = []struct {
	name  string
	query string
}{
	{
		name: "001_tipos_agente",
		query: `CREATE TABLE IF NOT EXISTS tipos_agente (
			id TEXT PRIMARY KEY,
			nome TEXT NOT NULL,
			descricao TEXT
		);
		INSERT INTO tipos_agente (id, nome, descricao) VALUES
			('atendimento', 'Atendimento', 'Responde dúvidas gerais'),
			('vendas', 'Vendas', 'Qualifica e conduz leads até a venda'),
			('suporte', 'Suporte', 'Resolve problemas de clientes'),
			('agendamento', 'Agendamento', 'Marca horários e compromissos')
		ON CONFLICT (id) DO NOTHING;`,
	},
	{
		name: "002_profiles",
		query: `CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			nome TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			cliente_id TEXT NOT NULL,
			avatar_url TEXT
		);`,
	},
	{
		name: "003_leads",
		query: `CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			nome TEXT NOT NULL,
			telefone TEXT NOT NULL,
			email TEXT,
			cpf_cnpj TEXT,
			qualificacao TEXT,
			origem TEXT,
			observacao TEXT,
			ia_pausada BOOLEAN NOT NULL DEFAULT FALSE,
			followup_ativo BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (cliente_id, telefone)
		);
		CREATE INDEX IF NOT EXISTS idx_leads_cliente_created ON leads (cliente_id, created_at DESC);`,
	},
	{
		name: "004_bases_documentos",
		query: `CREATE TABLE IF NOT EXISTS bases (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			nome TEXT NOT NULL,
			descricao TEXT,
			ativo BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (cliente_id, nome)
		);
		CREATE TABLE IF NOT EXISTS documentos (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			base_id TEXT NOT NULL REFERENCES bases(id) ON DELETE CASCADE,
			titulo TEXT NOT NULL,
			conteudo TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_documentos_base ON documentos (cliente_id, base_id);`,
	},
	{
		name: "005_agentes",
		query: `CREATE TABLE IF NOT EXISTS agentes (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			nome TEXT NOT NULL,
			tipo_agente_id TEXT NOT NULL REFERENCES tipos_agente(id),
			prompt TEXT NOT NULL,
			base_ids TEXT[] NOT NULL DEFAULT '{}',
			ativo BOOLEAN NOT NULL DEFAULT TRUE,
			horario_inicio TEXT,
			horario_fim TEXT,
			dias_semana INT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		name: "006_mensagens_envios",
		query: `CREATE TABLE IF NOT EXISTS mensagens (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			dia INT NOT NULL CHECK (dia >= 1),
			mensagem TEXT NOT NULL,
			horario TEXT NOT NULL DEFAULT '09:00',
			agente_id TEXT REFERENCES agentes(id) ON DELETE SET NULL,
			ativo BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (cliente_id, dia)
		);
		CREATE TABLE IF NOT EXISTS followup_envios (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			mensagem_id TEXT NOT NULL REFERENCES mensagens(id) ON DELETE CASCADE,
			lead_id TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
			dia INT NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDENTE',
			erro TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			enviado_em TIMESTAMPTZ,
			UNIQUE (mensagem_id, lead_id)
		);
		CREATE INDEX IF NOT EXISTS idx_envios_cliente_created ON followup_envios (cliente_id, created_at);`,
	},
	{
		name: "007_configuracoes",
		query: `CREATE TABLE IF NOT EXISTS configuracoes (
			cliente_id TEXT NOT NULL,
			chave TEXT NOT NULL,
			valor TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (cliente_id, chave)
		);`,
	},
	{
		name: "008_chat",
		query: `CREATE TABLE IF NOT EXISTS chat_mensagens (
			id TEXT PRIMARY KEY,
			cliente_id TEXT NOT NULL,
			telefone TEXT NOT NULL,
			remetente TEXT NOT NULL,
			conteudo TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_chat_cliente_tel ON chat_mensagens (cliente_id, telefone, created_at DESC);`,
	},
}

// RunMigrations aplica o schema em ordem. As migrations são idempotentes.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log := logger.WithComponent("migrations")
	log.Info("🗄️ Verificando schema do banco de dados...")

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.query); err != nil {
			return fmt.Errorf("erro na migration [%s]: %w", m.name, err)
		}
		log.Debugf("Migration [%s] verificada", m.name)
	}

	log.Info("✅ Migrations concluídas")
	return nil
}
