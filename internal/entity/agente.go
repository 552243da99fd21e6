package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const HorarioLayout = "15:04"

type TipoAgente struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
}

type Agente struct {
	ID              string    `json:"id"`
	ClienteID       string    `json:"cliente_id"`
	Nome            string    `json:"nome"`
	TipoAgenteID    string    `json:"tipo_agente_id"`
	TipoAgenteNome  string    `json:"tipo_agente_nome,omitempty"`
	Prompt          string    `json:"prompt"`
	BaseIDs         []string  `json:"base_ids"`
	Ativo           bool      `json:"ativo"`
	HorarioInicio   string    `json:"horario_inicio,omitempty"`
	HorarioFim      string    `json:"horario_fim,omitempty"`
	DiasSemana      []int     `json:"dias_semana,omitempty"`
	DentroDoHorario bool      `json:"em_horario"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewAgente(clienteID, nome, tipoAgenteID, prompt string) *Agente {
	now := time.Now()
	return &Agente{
		ID:           uuid.New().String(),
		ClienteID:    clienteID,
		Nome:         nome,
		TipoAgenteID: tipoAgenteID,
		Prompt:       prompt,
		BaseIDs:      []string{},
		Ativo:        true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// EmHorario diz se o agente atende no instante t. Sem janela configurada, atende sempre.
// A janela é [inicio, fim) no fuso de t.
func (a *Agente) EmHorario(t time.Time) bool {
	if len(a.DiasSemana) > 0 {
		hoje := int(t.Weekday())
		ok := false
		for _, d := range a.DiasSemana {
			if d == hoje {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if a.HorarioInicio == "" || a.HorarioFim == "" {
		return true
	}
	inicio, err1 := time.Parse(HorarioLayout, a.HorarioInicio)
	fim, err2 := time.Parse(HorarioLayout, a.HorarioFim)
	if err1 != nil || err2 != nil {
		return true
	}

	agora := t.Hour()*60 + t.Minute()
	return agora >= inicio.Hour()*60+inicio.Minute() && agora < fim.Hour()*60+fim.Minute()
}

type AgenteRepositoryInterface interface {
	List(ctx context.Context, clienteID string, page PageRequest) ([]Agente, int, error)
	FindByID(ctx context.Context, clienteID, id string) (*Agente, error)
	Create(ctx context.Context, a *Agente) error
	Update(ctx context.Context, a *Agente) error
	Delete(ctx context.Context, clienteID, id string) error
	SetAtivo(ctx context.Context, clienteID, id string, ativo bool) error
	CountByBase(ctx context.Context, clienteID, baseID string) (int, error)
}

type TipoAgenteRepositoryInterface interface {
	List(ctx context.Context) ([]TipoAgente, error)
	Exists(ctx context.Context, id string) (bool, error)
}
