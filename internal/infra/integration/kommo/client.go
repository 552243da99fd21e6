package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

type Client struct {
	apiToken string
	baseURL  string
	http     *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiToken != "" && c.baseURL != ""
}

// SyncLead espelha o lead no Kommo: reaproveita o contato pelo telefone ou
// cria um novo, e abre um lead ligado a ele.
func (c *Client) SyncLead(ctx context.Context, lead *entity.Lead) error {
	log := logger.WithComponent("kommo").WithField("lead_id", lead.ID)
	if !c.Configured() {
		log.Debug("Kommo não configurado, sincronização ignorada")
		return nil
	}

	contactID, err := c.findOrCreateContact(ctx, lead)
	if err != nil {
		return fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	tags := []Tag{{Name: "painel"}}
	if lead.Origem != "" {
		tags = append(tags, Tag{Name: lead.Origem})
	}
	payload := []LeadInput{{
		Name: lead.Nome,
		Embedded: LeadEmbedded{
			Tags:     tags,
			Contacts: []Ref{{ID: contactID}},
		},
	}}

	var result embeddedResponse
	if err := c.do(ctx, http.MethodPost, "/leads", payload, &result); err != nil {
		return fmt.Errorf("erro ao criar lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return fmt.Errorf("lead não criado")
	}

	log.Infof("✅ Kommo: lead #%d criado para %s", result.Embedded.Leads[0].ID, lead.Nome)
	return nil
}

func (c *Client) findOrCreateContact(ctx context.Context, lead *entity.Lead) (int, error) {
	var found embeddedResponse
	err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(lead.Telefone), nil, &found)
	if err == nil && len(found.Embedded.Contacts) > 0 {
		return found.Embedded.Contacts[0].ID, nil
	}

	fields := []CustomField{{
		FieldCode: "PHONE",
		Values:    []FieldValue{{Value: lead.Telefone, EnumCode: "WORK"}},
	}}
	if lead.Email != "" {
		fields = append(fields, CustomField{
			FieldCode: "EMAIL",
			Values:    []FieldValue{{Value: lead.Email, EnumCode: "WORK"}},
		})
	}

	var created embeddedResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", []ContactInput{{Name: lead.Nome, CustomFields: fields}}, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("erro ao obter ID do contato criado")
	}
	return created.Embedded.Contacts[0].ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("kommo status %d: %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
