package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIAdapter speaks the OpenAI chat-completions contract. Z.AI exposes
// the same wire format, so both providers are instances of this adapter
// with different base URLs and model names.
type OpenAIAdapter struct {
	name      string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

func NewOpenAIAdapter(name, baseURL, model string, maxTokens int, client *http.Client) *OpenAIAdapter {
	return &OpenAIAdapter{
		name:      name,
		baseURL:   baseURL,
		model:     model,
		maxTokens: maxTokens,
		client:    client,
	}
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string            `json:"role"`
	Content []chatContentPart `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// Describe sends one chat-completion request whose user message carries the
// prompt text and the image by reference. The image is never re-encoded;
// remote URLs and data: URIs both pass through as-is.
func (a *OpenAIAdapter) Describe(ctx context.Context, apiKey, model, prompt, imageURL string) (string, error) {
	if model == "" {
		model = a.model
	}

	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &chatImageURL{URL: imageURL}},
				},
			},
		},
		MaxTokens: a.maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s request: %w", a.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create %s request: %w", a.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &UpstreamError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Network error calling %s: %v", a.name, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return "", &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s API failed: %d - %s", a.name, resp.StatusCode, string(errBody)),
		}
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &ContractError{Message: fmt.Sprintf("Received unexpected response format from %s", a.name)}
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", &ContractError{Message: fmt.Sprintf("Received unexpected response format from %s", a.name)}
	}

	return chatResp.Choices[0].Message.Content, nil
}
