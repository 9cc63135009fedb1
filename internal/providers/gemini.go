package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// GeminiAdapter speaks the generateContent contract of the Generative
// Language REST API. The model name comes from the per-device settings, the
// key rides in the query string.
type GeminiAdapter struct {
	baseURL      string
	defaultModel string
	maxTokens    int
	client       *http.Client
}

func NewGeminiAdapter(baseURL, defaultModel string, maxTokens int, client *http.Client) *GeminiAdapter {
	return &GeminiAdapter{
		baseURL:      baseURL,
		defaultModel: defaultModel,
		maxTokens:    maxTokens,
		client:       client,
	}
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

// geminiResponse covers every reply shape observed from the API: the
// documented candidates/content/parts path, an alternative candidate output
// field, a bare top-level text field, and an in-body error despite a 2xx
// status. Resolution tries them in that fixed order.
type geminiResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Candidates []struct {
		FinishReason string `json:"finishReason"`
		Content      *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		Output string `json:"output"`
	} `json:"candidates"`
	Text string `json:"text"`
}

func (a *GeminiAdapter) Describe(ctx context.Context, apiKey, model, prompt, imageURL string) (string, error) {
	if model == "" {
		model = a.defaultModel
	}

	imageData, err := a.imageBase64(ctx, imageURL)
	if err != nil {
		return "", err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: prompt},
					{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageData}},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: a.maxTokens,
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
		},
		SafetySettings: []geminiSafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Network error calling Gemini: %v", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Failed to read Gemini response: %v", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Gemini API failed: %d - %s", resp.StatusCode, string(respBody)),
		}
	}

	return resolveGeminiText(respBody)
}

// imageBase64 turns the image reference into the base64 payload Gemini
// expects. data: URIs carry it inline; anything else is one extra fetch.
func (a *GeminiAdapter) imageBase64(ctx context.Context, imageURL string) (string, error) {
	if strings.HasPrefix(imageURL, "data:") {
		idx := strings.Index(imageURL, ",")
		if idx < 0 {
			return "", &UpstreamError{
				Status:  http.StatusInternalServerError,
				Message: "Failed to process image: malformed data URI",
			}
		}
		return imageURL[idx+1:], nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Failed to process image: %v", err),
		}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Failed to process image: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Failed to process image: failed to fetch image: %d", resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Failed to process image: %v", err),
		}
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

func resolveGeminiText(respBody []byte) (string, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ContractError{Message: "Unexpected Gemini response format"}
	}

	if parsed.Error != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Gemini API error: %s", parsed.Error.Message),
		}
	}

	if len(parsed.Candidates) > 0 {
		first := parsed.Candidates[0]

		// A safety block carries no content; parts must not be consulted.
		if first.FinishReason == "SAFETY" {
			return "", &SafetyBlockError{
				Message: "Content was blocked by safety filters. Please try a different image.",
			}
		}

		if first.Content != nil && len(first.Content.Parts) > 0 && first.Content.Parts[0].Text != "" {
			return first.Content.Parts[0].Text, nil
		}

		if first.Output != "" {
			return first.Output, nil
		}
	}

	if parsed.Text != "" {
		return parsed.Text, nil
	}

	return "", &ContractError{
		Message: "Unexpected Gemini response format",
		Debug:   geminiDebugSummary(respBody, &parsed),
	}
}

// geminiDebugSummary reports which keys were present without ever carrying
// the payload itself.
func geminiDebugSummary(respBody []byte, parsed *geminiResponse) map[string]interface{} {
	debug := map[string]interface{}{
		"hasError":         parsed.Error != nil,
		"hasCandidates":    len(parsed.Candidates) > 0,
		"candidatesLength": len(parsed.Candidates),
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &top); err == nil {
		debug["responseKeys"] = sortedKeys(top)

		if rawCandidates, ok := top["candidates"]; ok {
			var candidates []map[string]json.RawMessage
			if err := json.Unmarshal(rawCandidates, &candidates); err == nil && len(candidates) > 0 {
				debug["firstCandidateKeys"] = sortedKeys(candidates[0])
			}
		}
	}

	return debug
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
