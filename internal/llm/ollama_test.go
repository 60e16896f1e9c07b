// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOllamaGenerate(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "hello there"})
	}))
	defer ts.Close()

	o := &Ollama{BaseURL: ts.URL, Model: "test-model", HTTPClient: ts.Client()}
	got, err := o.Generate(context.Background(), "say hello", Options{
		SystemPrompt: "Be brief.",
		Temperature:  0.3,
		MaxTokens:    100,
		JSONMode:     true,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "hello there" {
		t.Errorf("Generate() = %q", got)
	}

	if gotBody["model"] != "test-model" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["format"] != "json" {
		t.Errorf("format = %v, want json", gotBody["format"])
	}
	if gotBody["stream"] != false {
		t.Errorf("stream = %v, want false", gotBody["stream"])
	}
	prompt, _ := gotBody["prompt"].(string)
	if !strings.HasPrefix(prompt, "Be brief.\n\n") || !strings.Contains(prompt, "say hello") {
		t.Errorf("prompt = %q, want system prompt prepended", prompt)
	}
}

func TestOllamaGenerateOmitsFormatWithoutJSONMode(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer ts.Close()

	o := &Ollama{BaseURL: ts.URL, Model: "m", HTTPClient: ts.Client()}
	if _, err := o.Generate(context.Background(), "hi", Options{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, present := gotBody["format"]; present {
		t.Errorf("format field present without JSONMode: %v", gotBody["format"])
	}
}

func TestOllamaGenerateHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model not found"))
	}))
	defer ts.Close()

	o := &Ollama{BaseURL: ts.URL, Model: "m", HTTPClient: ts.Client()}
	_, err := o.Generate(context.Background(), "hi", Options{})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("Generate() error = %v, want HTTP 500", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("Generate() error = %v, want body included", err)
	}
}

func TestOllamaGenerateTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"response": "late"})
	}))
	defer ts.Close()

	o := &Ollama{BaseURL: ts.URL, Model: "m", Timeout: 20 * time.Millisecond, HTTPClient: ts.Client()}
	_, err := o.Generate(context.Background(), "hi", Options{})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Generate() error = %v, want ErrTimeout", err)
	}
}
