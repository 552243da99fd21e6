package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

type ChatUseCase struct {
	Repo     entity.ChatRepositoryInterface
	LeadRepo entity.LeadRepositoryInterface
	Sender   MessageSender
}

func NewChatUseCase(repo entity.ChatRepositoryInterface, leadRepo entity.LeadRepositoryInterface, sender MessageSender) *ChatUseCase {
	return &ChatUseCase{Repo: repo, LeadRepo: leadRepo, Sender: sender}
}

func (uc *ChatUseCase) Clientes(ctx context.Context, clienteID string, req entity.PageRequest) (*ListOutput[entity.ChatCliente], error) {
	clientes, total, err := uc.Repo.Clientes(ctx, clienteID, req)
	if err != nil {
		return nil, err
	}
	for i := range clientes {
		clientes[i].TelefoneFormatado = FormatPhone(clientes[i].Telefone)
	}
	return &ListOutput[entity.ChatCliente]{Items: clientes, Pagination: entity.NewPagination(req, total)}, nil
}

func telefoneValido(telefone string) (string, error) {
	t := NormalizePhone(telefone)
	if !isValidPhoneNumber(t) {
		return "", ValidationErrors{{Field: "telefone", Message: "deve ter entre 10 e 13 dígitos"}}
	}
	return t, nil
}

func (uc *ChatUseCase) Mensagens(ctx context.Context, clienteID, telefone string, req entity.PageRequest) (*ListOutput[entity.ChatMensagem], error) {
	t, err := telefoneValido(telefone)
	if err != nil {
		return nil, err
	}
	msgs, total, err := uc.Repo.Mensagens(ctx, clienteID, t, req)
	if err != nil {
		return nil, err
	}
	return &ListOutput[entity.ChatMensagem]{Items: msgs, Pagination: entity.NewPagination(req, total)}, nil
}

// Enviar manda uma mensagem humana. Quando o telefone é de um lead, a IA
// desse lead é pausada porque um atendente assumiu a conversa.
func (uc *ChatUseCase) Enviar(ctx context.Context, clienteID, telefone, texto string) (*entity.ChatMensagem, error) {
	t, err := telefoneValido(telefone)
	if err != nil {
		return nil, err
	}
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, ValidationErrors{{Field: "conteudo", Message: "é obrigatório"}}
	}
	if len([]rune(texto)) > maxMensagemChars {
		return nil, ValidationErrors{{Field: "conteudo", Message: fmt.Sprintf("deve ter no máximo %d caracteres", maxMensagemChars)}}
	}

	if err := uc.Sender.SendText(ctx, t, texto); err != nil {
		return nil, Technical("WHATSAPP_ERROR", FriendlyMessage(err), err)
	}

	msg := entity.NewChatMensagem(clienteID, t, entity.RemetenteHumano, texto)
	if err := uc.Repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("erro ao salvar mensagem: %w", err)
	}

	if _, err := uc.LeadRepo.SetIAPausadaByTelefone(ctx, clienteID, t, true); err != nil {
		logger.WithCliente(clienteID).WithError(err).Warnf("⚠️ Não foi possível pausar a IA para %s", t)
	}
	return msg, nil
}

func (uc *ChatUseCase) PausarIA(ctx context.Context, clienteID, telefone string, pausada bool) error {
	t, err := telefoneValido(telefone)
	if err != nil {
		return err
	}
	found, err := uc.LeadRepo.SetIAPausadaByTelefone(ctx, clienteID, t, pausada)
	if err != nil {
		return err
	}
	if !found {
		return NotFound("Lead não encontrado para esse telefone")
	}
	return nil
}

// Registrar grava mensagens vindas do runtime dos agentes (cliente ou agente).
func (uc *ChatUseCase) Registrar(ctx context.Context, clienteID string, in ChatWebhookInput) (*entity.ChatMensagem, error) {
	var errs ValidationErrors
	t := NormalizePhone(in.Telefone)
	if !isValidPhoneNumber(t) {
		errs.add("telefone", "deve ter entre 10 e 13 dígitos")
	}
	if !entity.RemetenteValido(in.Remetente) {
		errs.add("remetente", "use cliente, agente ou humano")
	}
	if strings.TrimSpace(in.Conteudo) == "" {
		errs.add("conteudo", "é obrigatório")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	msg := entity.NewChatMensagem(clienteID, t, in.Remetente, strings.TrimSpace(in.Conteudo))
	if err := uc.Repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("erro ao salvar mensagem: %w", err)
	}
	return msg, nil
}
