// Package extraction turns budget statements into ledger lines, either by
// asking a Gemini model to read the document or by decoding a JSON export.
package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// StatementPrompt instrui o modelo a devolver um array JSON de fichas.
const StatementPrompt = `VOCÊ É UM AUDITOR FISCAL SÊNIOR. EXTRAIA PRECISAMENTE CADA UMA DAS FICHAS DESTE BALANCETE.

REGRAS DE PRECISÃO:
1. NÃO RESUMA. Capture cada linha de despesa individualmente.
2. VALOR DO CRÉDITO: localize a "Dotação Atualizada". Ela está à direita ou abaixo do número da ficha.
3. Capture todos os elementos de pessoal (319011, 319013, 319094, etc.) sem agrupar.

Retorne APENAS um JSON Array. JSON SCHEMA:
- id (string): Número da Ficha
- elemento (string): Código da Despesa
- funcional (string): Código da Ação
- vinculo (string): Fonte de Recurso
- totalCredito (number): Valor da Dotação (use ponto para decimal, remova pontos de milhar)
- empenhadoAcumulado (number): Total Empenhado
- liquidadoMes (number): Liquidado no Mês
- liquidadoAcumulado (number): Liquidado Acumulado
- saldoOrcamentario (number): Saldo disponível`

// generator abstrai a chamada ao modelo.
type generator interface {
	Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// GeminiRepository extracts ledger lines from a statement document.
type GeminiRepository struct {
	cfg types.ExtractionConfig
	gen generator
}

// NewGeminiRepository creates the Gemini client. It fails with
// types.ErrMissingAPIKey when no key is configured.
func NewGeminiRepository(ctx context.Context, cfg types.ExtractionConfig) (*GeminiRepository, error) {
	if cfg.APIKey == "" {
		return nil, types.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newGeminiRepository(cfg, &genaiGenerator{client: client}), nil
}

func newGeminiRepository(cfg types.ExtractionConfig, gen generator) *GeminiRepository {
	if cfg.Model == "" {
		cfg.Model = types.DefaultExtractionModel
	}
	return &GeminiRepository{cfg: cfg, gen: gen}
}

// Extract envia o documento ao modelo numa única chamada, sem retry.
func (r *GeminiRepository) Extract(ctx context.Context, filePath string) entity.ExtractionResult {
	mimeType, err := documentMIMEType(filePath)
	if err != nil {
		return entity.ExtractionFailed(err.Error())
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return entity.ExtractionFailed(fmt.Sprintf("error reading %s: %v", filePath, err))
	}
	if len(data) == 0 {
		return entity.ExtractionFailed(fmt.Sprintf("%s is empty", filePath))
	}

	if r.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(StatementPrompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	genCfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	if r.cfg.ThinkingBudget > 0 {
		genCfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(r.cfg.ThinkingBudget))}
	}

	text, err := r.gen.Generate(ctx, r.cfg.Model, contents, genCfg)
	if err != nil {
		return entity.ExtractionFailed(describeServiceError(err))
	}

	return entity.ParseExtraction([]byte(text))
}

// describeServiceError distingue chave inválida de falha genérica de leitura.
func describeServiceError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"), strings.Contains(msg, "Requested entity was not found"):
		return "the configured API key is not valid for this project or has expired: " + msg
	case strings.Contains(msg, "context deadline exceeded"):
		return "the extraction service did not answer in time: " + msg
	default:
		return "could not process the document, make sure it is a legible statement: " + msg
	}
}

func documentMIMEType(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return "application/pdf", nil
	case ".png":
		return "image/png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	default:
		return "", fmt.Errorf("unsupported document type %q (expected .pdf, .png or .jpg)", filepath.Ext(filePath))
	}
}
