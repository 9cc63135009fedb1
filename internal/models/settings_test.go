package models

import "testing"

func TestWithDefaults_EmptySettings(t *testing.T) {
	got := Settings{}.WithDefaults()

	want := DefaultSettings()
	if got != want {
		t.Errorf("empty settings should become defaults: got %+v", got)
	}
}

func TestWithDefaults_KeepsSetFields(t *testing.T) {
	s := Settings{
		Language: "german",
		Model:    "zai",
	}

	got := s.WithDefaults()

	if got.Language != "german" {
		t.Errorf("language overwritten: %s", got.Language)
	}
	if got.Model != "zai" {
		t.Errorf("model overwritten: %s", got.Model)
	}
	if got.DetailLevel != "detailed" {
		t.Errorf("expected default detailLevel, got %s", got.DetailLevel)
	}
	if got.OutputLength != "normal" {
		t.Errorf("expected default outputLength, got %s", got.OutputLength)
	}
	if got.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("expected default geminiModel, got %s", got.GeminiModel)
	}
}

func TestWithDefaults_PreservesAPIKeys(t *testing.T) {
	s := Settings{APIKeys: &APIKeys{OpenAI: "sk-1234567890abcdefghij"}}

	got := s.WithDefaults()

	if got.APIKeys == nil || got.APIKeys.OpenAI != "sk-1234567890abcdefghij" {
		t.Errorf("API keys lost during defaulting: %+v", got.APIKeys)
	}
}

func TestUserKey(t *testing.T) {
	s := Settings{APIKeys: &APIKeys{
		OpenAI: "sk-openai",
		ZAI:    "zai-key-123",
		Gemini: "AIza-gemini",
	}}

	tests := []struct {
		provider string
		want     string
	}{
		{provider: "openai", want: "sk-openai"},
		{provider: "zai", want: "zai-key-123"},
		{provider: "gemini", want: "AIza-gemini"},
		{provider: "carrotai", want: ""},
	}

	for _, tt := range tests {
		if got := s.UserKey(tt.provider); got != tt.want {
			t.Errorf("UserKey(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}

	if got := (Settings{}).UserKey("openai"); got != "" {
		t.Errorf("nil APIKeys should yield empty key, got %q", got)
	}
}
