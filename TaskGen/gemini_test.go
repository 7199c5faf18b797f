package TaskGen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeminiClient(serverURL string) *GeminiClient {
	c := NewGeminiClient("test-key", "test-model")
	c.baseURL = serverURL
	c.httpClient = &http.Client{Timeout: 5 * time.Second}
	return c
}

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "  [{\"title\":\"A\"}]  "}},
				}},
			},
		})
	}))
	defer server.Close()

	client := testGeminiClient(server.URL)
	got, err := client.Generate(context.Background(), "make tasks")

	require.NoError(t, err)
	assert.Equal(t, `[{"title":"A"}]`, got)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	// Wire shape: contents/parts/text plus generationConfig
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "make tasks", gotBody.Contents[0].Parts[0].Text)
	assert.Greater(t, gotBody.GenerationConfig.MaxOutputTokens, 0)
	assert.Greater(t, gotBody.GenerationConfig.TopP, 0.0)
}

func TestGeminiClientGenerateJoinsParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "[{\"title\""}, {"text": ":\"A\"}]"}},
				}},
			},
		})
	}))
	defer server.Close()

	got, err := testGeminiClient(server.URL).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"A"}]`, got)
}

func TestGeminiClientGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testGeminiClient(server.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGeminiClientGenerateRetriesRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "ok"}},
				}},
			},
		})
	}))
	defer server.Close()

	got, err := testGeminiClient(server.URL).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, attempts)
}

func TestGeminiClientGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	_, err := testGeminiClient(server.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion returned")
}

func TestGeminiClientGenerateMissingKey(t *testing.T) {
	client := NewGeminiClient("", "test-model")
	_, err := client.Generate(context.Background(), "p")
	require.Error(t, err)
}
