package usecase

import "github.com/xavierca1/painel-crm/internal/entity"

type LeadInput struct {
	Nome         string `json:"nome"`
	Telefone     string `json:"telefone"`
	Email        string `json:"email"`
	CPFCNPJ      string `json:"cpf_cnpj"`
	Qualificacao string `json:"qualificacao"`
	Origem       string `json:"origem"`
	Observacao   string `json:"observacao"`
}

type AgenteInput struct {
	Nome          string   `json:"nome"`
	TipoAgenteID  string   `json:"tipo_agente_id"`
	Prompt        string   `json:"prompt"`
	BaseIDs       []string `json:"base_ids"`
	Ativo         *bool    `json:"ativo"`
	HorarioInicio string   `json:"horario_inicio"`
	HorarioFim    string   `json:"horario_fim"`
	DiasSemana    []int    `json:"dias_semana"`
}

type BaseInput struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Ativo     *bool  `json:"ativo"`
}

type DocumentoInput struct {
	BaseID   string `json:"base_id"`
	Titulo   string `json:"titulo"`
	Conteudo string `json:"conteudo"`
}

type MensagemInput struct {
	Dia      int    `json:"dia"`
	Mensagem string `json:"mensagem"`
	Horario  string `json:"horario"`
	AgenteID string `json:"agente_id"`
	Ativo    *bool  `json:"ativo"`
}

type ChatWebhookInput struct {
	Telefone  string `json:"telefone"`
	Remetente string `json:"remetente"`
	Conteudo  string `json:"conteudo"`
}

// ListOutput é o par itens + paginação que vira o envelope de listagem.
type ListOutput[T any] struct {
	Items      []T
	Pagination entity.Pagination
}

type BulkFalha struct {
	ID   string `json:"id"`
	Erro string `json:"erro"`
}

type BulkResult struct {
	Sucesso int         `json:"sucesso"`
	Falha   int         `json:"falha"`
	Falhas  []BulkFalha `json:"falhas,omitempty"`
}

// Planilha é o conteúdo bruto de um CSV/XLSX: cabeçalho + linhas de dados.
type Planilha struct {
	Headers []string
	Rows    [][]string
}

type ImportPreview struct {
	Headers     []string          `json:"headers"`
	Amostra     [][]string        `json:"amostra"`
	TotalLinhas int               `json:"total_linhas"`
	Mapeamento  map[string]string `json:"mapeamento"`
	Campos      []string          `json:"campos"`
}

type ImportErro struct {
	Linha    int    `json:"linha"`
	Mensagem string `json:"mensagem"`
}

type ImportResult struct {
	Total      int          `json:"total"`
	Importados int          `json:"importados"`
	Ignorados  int          `json:"ignorados"`
	Erros      []ImportErro `json:"erros"`
}

type RelatorioFollowUp struct {
	ClienteID string
	Data      string
	Dias      []entity.EstatisticaDia
	Total     int
	Sucesso   int
	Erro      int
}
