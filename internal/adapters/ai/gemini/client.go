// Package gemini implementa los dos puertos de IA (extracción de recetas y
// chequeo de interacciones) contra la API REST generateContent de Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"med-care-tracker/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("gemini client not configured")
	ErrUpstream      = errors.New("gemini upstream error")
	ErrBadResponse   = errors.New("gemini response not parseable")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
)

// Config del cliente Gemini. APIKey normalmente viene de env
// (GEMINI_API_KEY) en quien lo instancia.
type Config struct {
	BaseURL string // opcional; default API pública
	APIKey  string
	Model   string // opcional; default gemini-1.5-flash

	Timeout time.Duration

	// Transport opcional (para tests).
	Transport http.RoundTripper
}

type Client struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}

	var hc *httpclient.Client
	if cfg.Transport != nil {
		hc = httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
		hc.BaseURL = strings.TrimRight(base, "/")
	} else {
		var err error
		hc, err = httpclient.NewWithBaseURL(base, cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  model,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// --- wire types de generateContent ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate manda el prompt (y opcionalmente una imagen inline) y devuelve
// el texto del primer candidato.
func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	headers := map[string]string{
		"x-goog-api-key": c.apiKey,
	}

	var resp generateResponse
	err := c.http.DoJSON(ctx, http.MethodPost, path, headers, generateRequest{
		Contents: []content{{Parts: parts}},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidates", ErrBadResponse)
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// stripFences limpia el fence markdown que los modelos suelen agregar
// alrededor del JSON pedido ("```json ... ```").
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
