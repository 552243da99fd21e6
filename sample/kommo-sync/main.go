package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/integration/kommo"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

// Envia um lead de teste para o Kommo usando as credenciais do .env.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("⚠️ Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	client := kommo.NewClient(os.Getenv("KOMMO_API_TOKEN"), os.Getenv("KOMMO_BASE_URL"))
	if !client.Configured() {
		logger.Log.Fatal("❌ KOMMO_API_TOKEN e KOMMO_BASE_URL devem estar configurados no .env")
	}

	lead := entity.NewLead("teste", "Joao Teste da Silva", "5561997676380")
	lead.Email = "joao.teste@email.com"
	lead.Origem = "Website"

	fmt.Println("🔄 Criando lead no Kommo...")
	fmt.Printf("   Nome: %s\n   Telefone: %s\n   Origem: %s\n\n", lead.Nome, lead.Telefone, lead.Origem)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := client.SyncLead(ctx, lead); err != nil {
		logger.Log.WithError(err).Fatal("❌ Erro ao criar lead")
	}
	fmt.Println("✅ Lead criado com sucesso!")
}
