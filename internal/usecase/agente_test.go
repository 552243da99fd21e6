package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/painel-crm/internal/entity"
)

func validAgenteInput() AgenteInput {
	return AgenteInput{
		Nome:          " Atendente ",
		TipoAgenteID:  "sdr",
		Prompt:        "Você é um atendente",
		BaseIDs:       []string{"b1", "b1", " ", "b2"},
		HorarioInicio: "08:00",
		HorarioFim:    "18:00",
		DiasSemana:    []int{1, 2, 3, 4, 5},
	}
}

func TestCreateAgenteDedupesBases(t *testing.T) {
	repo := new(MockAgenteRepository)
	tipos := new(MockTipoAgenteRepository)
	bases := new(MockBaseRepository)

	tipos.On("Exists", mock.Anything, "sdr").Return(true, nil)
	bases.On("Missing", mock.Anything, "c1", mock.Anything).Return([]string{}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Agente) bool {
		return a.Nome == "Atendente" && assert.ObjectsAreEqual([]string{"b1", "b2"}, a.BaseIDs)
	})).Return(nil)

	a, err := NewAgenteUseCase(repo, tipos, bases).Create(context.Background(), "c1", validAgenteInput())
	require.NoError(t, err)
	assert.True(t, a.Ativo)
	repo.AssertExpectations(t)
}

func TestCreateAgenteUnknownRefs(t *testing.T) {
	repo := new(MockAgenteRepository)
	tipos := new(MockTipoAgenteRepository)
	bases := new(MockBaseRepository)

	tipos.On("Exists", mock.Anything, "sdr").Return(false, nil)
	bases.On("Missing", mock.Anything, "c1", mock.Anything).Return([]string{"b2"}, nil)

	_, err := NewAgenteUseCase(repo, tipos, bases).Create(context.Background(), "c1", validAgenteInput())

	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve, 2)
	assert.Contains(t, ve[1].Message, "b2")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestValidateAgenteHorario(t *testing.T) {
	in := validAgenteInput()
	in.HorarioInicio, in.HorarioFim = "18:00", "08:00"
	assert.Error(t, ValidateAgenteInput(in))

	in.HorarioInicio, in.HorarioFim = "08:00", ""
	assert.Error(t, ValidateAgenteInput(in))

	in.HorarioInicio, in.HorarioFim = "", ""
	assert.NoError(t, ValidateAgenteInput(in))

	in.DiasSemana = []int{7}
	assert.Error(t, ValidateAgenteInput(in))
}

func TestSetAtivoNotFound(t *testing.T) {
	repo := new(MockAgenteRepository)
	repo.On("SetAtivo", mock.Anything, "c1", "x", false).Return(entity.ErrNotFound)

	err := NewAgenteUseCase(repo, nil, nil).SetAtivo(context.Background(), "c1", "x", false)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
	assert.Equal(t, "Agente não encontrado", err.Error())
}

func TestCreateMensagemUnknownAgente(t *testing.T) {
	repo := new(MockMensagemRepository)
	agentes := new(MockAgenteRepository)
	agentes.On("FindByID", mock.Anything, "c1", "a9").Return(nil, entity.ErrNotFound)

	_, err := NewMensagemUseCase(repo, nil, agentes).Create(context.Background(), "c1", MensagemInput{Dia: 1, Mensagem: "Oi", AgenteID: "a9"})
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestAgenteReadsFillEmHorario(t *testing.T) {
	repo := new(MockAgenteRepository)
	req := entity.NewPageRequest(1, 10)
	comercial := entity.Agente{ID: "a1", HorarioInicio: "08:00", HorarioFim: "18:00", DiasSemana: []int{1, 2, 3, 4, 5}}
	plantao := entity.Agente{ID: "a2"}

	repo.On("List", mock.Anything, "c1", req).Return([]entity.Agente{comercial, plantao}, 2, nil)
	repo.On("FindByID", mock.Anything, "c1", "a1").Return(&comercial, nil)

	uc := NewAgenteUseCase(repo, nil, nil)
	// sábado, 10h
	uc.Now = func() time.Time { return time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC) }

	out, err := uc.List(context.Background(), "c1", req)
	require.NoError(t, err)
	assert.False(t, out.Items[0].DentroDoHorario)
	assert.True(t, out.Items[1].DentroDoHorario)

	// segunda, 10h
	uc.Now = func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }
	a, err := uc.Get(context.Background(), "c1", "a1")
	require.NoError(t, err)
	assert.True(t, a.DentroDoHorario)
}
