package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/painel-crm/internal/infra/http/middleware"
	"github.com/xavierca1/painel-crm/internal/infra/planilha"
	"github.com/xavierca1/painel-crm/internal/usecase"
)

const maxUploadBytes = 10 << 20

type exportFormat struct {
	contentType string
	write       func(w io.Writer, headers []string, rows [][]string) error
}

var exportFormats = map[string]exportFormat{
	"csv":  {contentType: "text/csv; charset=utf-8", write: planilha.WriteCSV},
	"xlsx": {contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", write: writeLeadsXLSX},
}

func writeLeadsXLSX(w io.Writer, headers []string, rows [][]string) error {
	return planilha.WriteXLSX(w, "Leads", headers, rows)
}

type LeadHandler struct {
	UC *usecase.LeadUseCase
}

func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{UC: uc}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.List(r.Context(), clienteID(r), pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.UC.Get(r.Context(), clienteID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.LeadInput
	if !decodeJSON(w, r, &in) {
		return
	}
	lead, err := h.UC.Create(r.Context(), clienteID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, lead, "Lead cadastrado")
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in usecase.LeadInput
	if !decodeJSON(w, r, &in) {
		return
	}
	lead, err := h.UC.Update(r.Context(), clienteID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), clienteID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Lead excluído")
}

func (h *LeadHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.UC.BulkDelete(r.Context(), clienteID(r), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, res)
}

func (h *LeadHandler) SetIAPausada(w http.ResponseWriter, r *http.Request) {
	pausada, ok := decodeFlag(w, r, "ia_pausada")
	if !ok {
		return
	}
	if err := h.UC.SetIAPausada(r.Context(), clienteID(r), chi.URLParam(r, "id"), pausada); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "IA atualizada")
}

func (h *LeadHandler) SetFollowUpAtivo(w http.ResponseWriter, r *http.Request) {
	ativo, ok := decodeFlag(w, r, "followup_ativo")
	if !ok {
		return
	}
	if err := h.UC.SetFollowUpAtivo(r.Context(), clienteID(r), chi.URLParam(r, "id"), ativo); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, "Follow-up atualizado")
}

// Export devolve o arquivo como anexo. ?formato=xlsx, padrão csv.
// O arquivo é montado em memória antes de qualquer header ser enviado.
func (h *LeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	formato := r.URL.Query().Get("formato")
	if formato == "" {
		formato = r.URL.Query().Get("format")
	}
	if formato == "" {
		formato = "csv"
	}
	f, ok := exportFormats[formato]
	if !ok {
		badRequest(w, "Formato inválido, use csv ou xlsx")
		return
	}

	headers, rows, err := h.UC.ExportRows(r.Context(), clienteID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := f.write(&buf, headers, rows); err != nil {
		middleware.RecordIntegrationError("export")
		writeError(w, r, fmt.Errorf("erro ao gerar exportação %s: %w", formato, err))
		return
	}

	w.Header().Set("Content-Type", f.contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=leads_%s.%s", time.Now().Format("20060102"), formato))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// readPlanilha lê o campo multipart "arquivo" (até 10 MiB).
func readPlanilha(w http.ResponseWriter, r *http.Request) (usecase.Planilha, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequest(w, "Arquivo inválido ou maior que 10 MB")
		return usecase.Planilha{}, false
	}

	file, header, err := r.FormFile("arquivo")
	if err != nil {
		badRequest(w, "Envie o arquivo no campo arquivo")
		return usecase.Planilha{}, false
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		badRequest(w, "Arquivo maior que 10 MB")
		return usecase.Planilha{}, false
	}

	p, err := planilha.Read(header.Filename, file)
	if err != nil {
		if errors.Is(err, planilha.ErrFormato) || errors.Is(err, planilha.ErrVazia) {
			writeError(w, r, usecase.ValidationErrors{{Field: "arquivo", Message: err.Error()}})
		} else {
			badRequest(w, "Não foi possível ler a planilha")
		}
		return usecase.Planilha{}, false
	}
	return p, true
}

func (h *LeadHandler) ImportPreview(w http.ResponseWriter, r *http.Request) {
	p, ok := readPlanilha(w, r)
	if !ok {
		return
	}
	preview, err := h.UC.Preview(p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, preview)
}

// Import espera o arquivo e o campo "mapeamento" com um JSON campo -> cabeçalho.
func (h *LeadHandler) Import(w http.ResponseWriter, r *http.Request) {
	p, ok := readPlanilha(w, r)
	if !ok {
		return
	}

	var mapping map[string]string
	if raw := r.FormValue("mapeamento"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			badRequest(w, "Mapeamento inválido")
			return
		}
	} else {
		mapping = usecase.SuggestMapping(p.Headers)
	}

	res, err := h.UC.Import(r.Context(), clienteID(r), p, mapping)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.RecordLeadsImportados(res.Importados)

	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    res,
		Message: fmt.Sprintf("%d lead(s) importados", res.Importados),
	})
}
