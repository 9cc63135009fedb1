package models

// Settings is the per-device configuration blob. Wire names are camelCase
// because the existing web client owns the contract.
type Settings struct {
	Language     string   `json:"language"`
	DetailLevel  string   `json:"detailLevel"`
	OutputLength string   `json:"outputLength"`
	OutputStyle  string   `json:"outputStyle"`
	Model        string   `json:"model"`
	GeminiModel  string   `json:"geminiModel"`
	APIKeys      *APIKeys `json:"apiKeys,omitempty"`
}

// APIKeys are optional per-provider overrides of the server's default keys.
type APIKeys struct {
	OpenAI string `json:"openai"`
	ZAI    string `json:"zai"`
	Gemini string `json:"gemini"`
}

func DefaultSettings() Settings {
	return Settings{
		Language:     "english",
		DetailLevel:  "detailed",
		OutputLength: "normal",
		OutputStyle:  "basic-ai-image-generator",
		Model:        "openai",
		GeminiModel:  "gemini-2.5-flash",
	}
}

// WithDefaults fills every unset field from the documented defaults. The
// store keeps settings as an opaque blob, so defaulting happens here at the
// API boundary on every read and every analyze request.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.DetailLevel == "" {
		s.DetailLevel = d.DetailLevel
	}
	if s.OutputLength == "" {
		s.OutputLength = d.OutputLength
	}
	if s.OutputStyle == "" {
		s.OutputStyle = d.OutputStyle
	}
	if s.Model == "" {
		s.Model = d.Model
	}
	if s.GeminiModel == "" {
		s.GeminiModel = d.GeminiModel
	}
	return s
}

// UserKey returns the user-supplied key for a provider, if any.
func (s Settings) UserKey(provider string) string {
	if s.APIKeys == nil {
		return ""
	}
	switch provider {
	case "openai":
		return s.APIKeys.OpenAI
	case "zai":
		return s.APIKeys.ZAI
	case "gemini":
		return s.APIKeys.Gemini
	}
	return ""
}
