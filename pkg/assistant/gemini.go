package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-flash-preview"

	refineSystem  = "Sen profesyonel bir iş stratejistisin. Kullanıcının iş fikirlerini daha net ve etkileyici bir dille özetle."
	suggestSystem = "Sen bir startup mentörüsün. İş fikirleri için somut ve uygulanabilir adımlar öner."
)

// Gemini calls the Google Generative Language REST API.
type Gemini struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{
		APIKey:  apiKey,
		Model:   defaultModel,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Refine(ctx context.Context, summary string) (string, error) {
	prompt := fmt.Sprintf("Lütfen aşağıdaki iş fikri özetini daha profesyonel, vizyoner ve vurucu hale getirerek Türkçeleştir: %q", summary)
	return g.generate(ctx, prompt, refineSystem, 0.7)
}

func (g *Gemini) SuggestNextSteps(ctx context.Context, summary string) ([]string, error) {
	prompt := fmt.Sprintf("Aşağıdaki iş fikri için hayata geçirme aşamasında yapılması gereken en kritik 5 adımı liste halinde ver: %q", summary)
	text, err := g.generate(ctx, prompt, suggestSystem, 0)
	if err != nil {
		return nil, err
	}
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
		if len(steps) == MaxSuggestions {
			break
		}
	}
	return steps, nil
}

func (g *Gemini) generate(ctx context.Context, prompt, system string, temperature float64) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	if temperature > 0 {
		reqBody.GenerationConfig = &generationConfig{Temperature: temperature}
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, g.Model, url.QueryEscape(g.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", fmt.Errorf("assistant: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant: empty response")
	}
	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

var _ Assistant = (*Gemini)(nil)
