package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateSendsOnlySetFlags(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"ok","track_id":"t1"}`))
	}))
	defer server.Close()

	out, err := run(t, "--url", server.URL, "--compact",
		"generate", "--base-emotion", "joy", "--intensity", "high", "--format", "midi")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","track_id":"t1"}`, out)

	assert.Equal(t, "midi", got["output_format"])
	intent := got["intent"].(map[string]any)
	assert.Equal(t, "joy", intent["base_emotion"])
	assert.Equal(t, "high", intent["intensity"])
	assert.Nil(t, intent["specific_emotion"])
	assert.Nil(t, intent["technical"])
}

func TestGenerateReadsRequestFile(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"intent":{"emotional_intent":"grief"},"output_format":null}`), 0o600))

	_, err := run(t, "--url", server.URL, "generate", "--request", path)
	require.NoError(t, err)
	assert.Equal(t, "grief", got["intent"].(map[string]any)["emotional_intent"])
	assert.Nil(t, got["output_format"])
}

func TestGenerateRejectsInvalidTechnical(t *testing.T) {
	_, err := run(t, "--url", "http://127.0.0.1:1", "generate", "--technical", "{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--technical")
}

func TestInterrogateSession(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interrogate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"reply":"why?"}`))
	}))
	defer server.Close()

	_, err := run(t, "--url", server.URL, "interrogate", "hello", "--session", "abc")
	require.NoError(t, err)
	assert.Equal(t, "hello", got["message"])
	assert.Equal(t, "abc", got["session_id"])

	_, err = run(t, "--url", server.URL, "interrogate", "again")
	require.NoError(t, err)
	value, present := got["session_id"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestEmotionsBridgeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"catalog unavailable"}`))
	}))
	defer server.Close()

	_, err := run(t, "--url", server.URL, "emotions")
	require.Error(t, err)
	assert.Equal(t, "catalog unavailable", err.Error())
}

func TestEmotionsFromCatalogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sad.json"), []byte(`{"grief":{}}`), 0o600))

	out, err := run(t, "--url", "", "--catalog-dir", dir, "--compact", "emotions")
	require.NoError(t, err)
	assert.JSONEq(t, `{"emotions":{"sad":{"grief":{}}}}`, out)
}

func TestCacheBench(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":[1,2,3]}`), 0o600))

	out, err := run(t, "cache", "bench", path, "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Benchmarking: "+path)
	assert.Contains(t, out, "Speedup:")
	assert.Contains(t, out, "hits=5 misses=1")
}

func TestCacheBenchMissingFile(t *testing.T) {
	_, err := run(t, "cache", "bench", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
