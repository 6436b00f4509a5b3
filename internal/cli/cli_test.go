package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/spam-detector/internal/samples"
)

// predictServer records request texts and answers with a fixed status and body
type predictServer struct {
	*httptest.Server

	mu    sync.Mutex
	texts []string
}

func newPredictServer(t *testing.T, status int, body string) *predictServer {
	t.Helper()
	ps := &predictServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "/predict", r.URL.Path)

		ps.mu.Lock()
		ps.texts = append(ps.texts, req.Text)
		ps.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *predictServer) received() []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]string(nil), ps.texts...)
}

const spamBody = `{"prediction":"spam","label":"SPAM","confidence":97.5,"ham_probability":2.5,"spam_probability":97.5,"cleaned_text":"winner click"}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCommand("1.2.3", "abc123", "2024-01-01")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestClassify_TextFlag(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)

	out, err := execute(t, "", "classify", "--server", srv.URL, "--text", "WINNER click")
	require.NoError(t, err)

	assert.Equal(t, []string{"WINNER click"}, srv.received())
	assert.Contains(t, out, "SPAM (Spam)  97.50% Confident")
	assert.Contains(t, out, "winner click")
}

func TestClassify_JSONOutputFromStdin(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)

	out, err := execute(t, "hello from stdin", "classify", "--server", srv.URL, "-o", "json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "success", report["phase"])
	assert.Equal(t, "hello from stdin", report["text"])
	assert.Equal(t, []string{"hello from stdin"}, srv.received())
}

func TestClassify_File(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)
	path := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(path, []byte("from a file"), 0o600))

	_, err := execute(t, "", "classify", "--server", srv.URL, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"from a file"}, srv.received())
}

func TestClassify_EML(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)
	eml := "From: prize@example.com\r\nSubject: You won\r\nContent-Type: text/plain\r\n\r\nClaim your prize now\r\n"

	_, err := execute(t, eml, "classify", "--server", srv.URL, "--eml")
	require.NoError(t, err)
	assert.Equal(t, []string{"You won\n\nClaim your prize now"}, srv.received())
}

func TestClassify_Sample(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)
	sample, err := samples.NewCatalog().Get(2)
	require.NoError(t, err)

	_, err = execute(t, "", "classify", "--server", srv.URL, "--sample", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{sample.Text}, srv.received())
}

func TestClassify_UnknownSample(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)

	_, err := execute(t, "", "classify", "--server", srv.URL, "--sample", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sample id: 42")
	assert.Empty(t, srv.received())
}

func TestClassify_EmptyTextFailsWithoutRequest(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)

	out, err := execute(t, "", "classify", "--server", srv.URL, "--text", "   ")
	require.ErrorIs(t, err, ErrAnalysisFailed)

	assert.Contains(t, out, "Please enter some text to analyze!")
	assert.Empty(t, srv.received())
}

func TestClassify_ServerError(t *testing.T) {
	srv := newPredictServer(t, http.StatusServiceUnavailable, `{"error":"Model unavailable"}`)

	out, err := execute(t, "", "classify", "--server", srv.URL, "--text", "hello")
	require.ErrorIs(t, err, ErrAnalysisFailed)

	assert.Contains(t, err.Error(), "Model unavailable")
	assert.Contains(t, out, "⚠️ Model unavailable")
}

func TestClassify_ServerErrorWithoutMessage(t *testing.T) {
	srv := newPredictServer(t, http.StatusInternalServerError, `{}`)

	out, err := execute(t, "", "classify", "--server", srv.URL, "--text", "hello", "-o", "yaml")
	require.ErrorIs(t, err, ErrAnalysisFailed)
	assert.Contains(t, out, "error: Error connecting to server")
}

func TestClassify_BadOutputFormat(t *testing.T) {
	_, err := execute(t, "", "classify", "--text", "hello", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestClassify_ConfigFile(t *testing.T) {
	srv := newPredictServer(t, http.StatusOK, spamBody)
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "classifier:\n  provider: http\n  base_url: " + srv.URL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	_, err := execute(t, "", "classify", "--config", path, "--text", "hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, srv.received())
}

func TestSamplesCommand(t *testing.T) {
	out, err := execute(t, "", "samples")
	require.NoError(t, err)

	for _, s := range samples.NewCatalog().All() {
		assert.Contains(t, out, s.Title)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "spam-detector 1.2.3 (abc123) built on 2024-01-01")
}
