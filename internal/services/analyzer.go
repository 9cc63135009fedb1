package services

import (
	"context"
	"log"
	"time"

	"imagesight-backend/internal/apikeys"
	"imagesight-backend/internal/models"
	"imagesight-backend/internal/prompt"
	"imagesight-backend/internal/providers"
)

// ProviderKeys are the server-side default API keys, used when the device
// settings carry no valid key of their own.
type ProviderKeys struct {
	OpenAI string
	ZAI    string
	Gemini string
}

func (k ProviderKeys) forProvider(provider string) string {
	switch provider {
	case apikeys.ProviderOpenAI:
		return k.OpenAI
	case apikeys.ProviderZAI:
		return k.ZAI
	case apikeys.ProviderGemini:
		return k.Gemini
	}
	return ""
}

// AnalyzerService merges request settings with defaults, composes the
// prompt, and dispatches to the selected provider adapter.
type AnalyzerService struct {
	openai providers.Adapter
	zai    providers.Adapter
	gemini providers.Adapter
	keys   ProviderKeys
}

func NewAnalyzerService(openai, zai, gemini providers.Adapter, keys ProviderKeys) *AnalyzerService {
	return &AnalyzerService{
		openai: openai,
		zai:    zai,
		gemini: gemini,
		keys:   keys,
	}
}

func (s *AnalyzerService) Analyze(ctx context.Context, req models.AnalyzeImageRequest) (*models.AnalyzeImageResult, error) {
	if req.ImageURL == "" {
		return nil, &ValidationError{Message: "Image URL is required"}
	}

	merged := models.DefaultSettings()
	if req.Settings != nil {
		merged = req.Settings.WithDefaults()
	}

	promptText := prompt.Compose(merged.Language, merged.DetailLevel, merged.OutputLength, merged.OutputStyle)
	log.Printf("analyzing image with model %s", merged.Model)

	start := time.Now()

	var description string
	var err error

	switch merged.Model {
	case apikeys.ProviderOpenAI:
		key, keyErr := s.resolveKey(merged, apikeys.ProviderOpenAI)
		if keyErr != nil {
			return nil, keyErr
		}
		description, err = s.openai.Describe(ctx, key, "", promptText, req.ImageURL)

	case apikeys.ProviderZAI:
		key, keyErr := s.resolveKey(merged, apikeys.ProviderZAI)
		if keyErr != nil {
			return nil, keyErr
		}
		description, err = s.zai.Describe(ctx, key, "", promptText, req.ImageURL)

	case apikeys.ProviderGemini:
		key, keyErr := s.resolveKey(merged, apikeys.ProviderGemini)
		if keyErr != nil {
			return nil, keyErr
		}
		description, err = s.gemini.Describe(ctx, key, merged.GeminiModel, promptText, req.ImageURL)

	default:
		return nil, &ValidationError{Message: "Unsupported model. Use 'openai', 'gemini', or 'zai'."}
	}

	if err != nil {
		return nil, err
	}

	return &models.AnalyzeImageResult{
		Description:  description,
		Settings:     merged,
		ProcessingMs: time.Since(start).Milliseconds(),
	}, nil
}

// resolveKey prefers a valid user-supplied key over the configured default.
// When neither is usable, the validator's message for the user key explains
// what is wrong with it (missing, masked, or wrong format).
func (s *AnalyzerService) resolveKey(settings models.Settings, provider string) (string, error) {
	userKey := settings.UserKey(provider)
	envKey := s.keys.forProvider(provider)

	key := apikeys.Resolve(userKey, envKey, provider)
	if key == "" {
		return "", &UnauthorizedError{Message: apikeys.ValidateWithMessage(userKey, provider).Message}
	}

	if apikeys.IsValid(userKey, provider) {
		apikeys.Debug(userKey, provider, "user")
	} else {
		apikeys.Debug(envKey, provider, "env")
	}
	return key, nil
}
