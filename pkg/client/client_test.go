// 20 Mar 2025

package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/mjcolella/boltzpost/pkg/client"
)

const srvResp = `{
  "structures": [{"structure": "data_model\nloop_\n#\n", "format": "mmcif"}],
  "confidence_scores": [0.9]
}`

// fakeServer plays the prediction service. It checks the headers and
// remembers the decoded request body.
func fakeServer(t *testing.T, got *map[string]any) *httptest.Server {
	t.Helper()
	h := func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer testkey" {
			t.Errorf("authorization header wrong: %q", auth)
		}
		if ct := r.Header.Get("content-type"); ct != "application/json" {
			t.Errorf("content-type wrong: %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Error("decoding request body:", err)
		}
		w.Write([]byte(srvResp))
	}
	srv := httptest.NewServer(http.HandlerFunc(h))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) *Config {
	return &Config{APIKey: "testkey", BaseURL: url, Timeout: 5 * time.Second}
}

func TestPredict(t *testing.T) {
	var got map[string]any
	srv := fakeServer(t, &got)
	c := NewClient(testConfig(srv.URL))
	resp, err := c.Predict(map[string]any{"sampling_steps": 50})
	if err != nil {
		t.Fatal("predict:", err)
	}
	if got["sampling_steps"] != 50.0 {
		t.Error("payload did not arrive at the server:", got)
	}
	if _, ok := resp["structures"]; !ok {
		t.Error("response not decoded:", resp)
	}
}

func TestPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()
	c := NewClient(testConfig(srv.URL))
	_, err := c.Predict(map[string]any{})
	if err == nil {
		t.Fatal("a 402 should be an error")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Error("error should quote the body, got:", err)
	}
}

// Error messages only quote the start of a long body.
func TestPredictLongErrorBody(t *testing.T) {
	long := strings.Repeat("x", 5000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, long, http.StatusBadGateway)
	}))
	defer srv.Close()
	c := NewClient(testConfig(srv.URL))
	_, err := c.Predict(map[string]any{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(err.Error()) > 500 {
		t.Error("error message too long:", len(err.Error()))
	}
}

func TestGenerateFromPayload(t *testing.T) {
	var got map[string]any
	srv := fakeServer(t, &got)
	c := NewClient(testConfig(srv.URL))

	outDir := t.TempDir()
	res, err := c.GenerateFromPayload(map[string]any{"k": 1}, outDir, "myrun", true)
	if err != nil {
		t.Fatal("generating:", err)
	}
	if res.Name != "myrun" {
		t.Error("run name wrong:", res.Name)
	}
	if filepath.Dir(res.Dir) != outDir {
		t.Error("run directory not under the output directory:", res.Dir)
	}
	for _, p := range append([]string{res.JSON}, res.Mmcifs...) {
		if _, err := os.Stat(p); err != nil {
			t.Error("expected file missing:", err)
		}
	}
	if len(res.Mmcifs) != 1 {
		t.Fatal("want 1 structure file, got", len(res.Mmcifs))
	}
	b, err := os.ReadFile(res.Mmcifs[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "data_model") {
		t.Error("structure file content wrong")
	}
	if _, ok := res.Artifacts["confidence_json"]; !ok {
		t.Error("split artifacts missing, got:", res.Artifacts)
	}
}

func TestGenerateProteinLigand(t *testing.T) {
	var got map[string]any
	srv := fakeServer(t, &got)
	c := NewClient(testConfig(srv.URL))

	res, err := c.GenerateProteinLigand("MKTAYIAKQR", "CCO", t.TempDir(), "", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Name, "boltz2_protein_ligand_") {
		t.Error("default run name wrong:", res.Name)
	}
	if _, ok := got["ligands"]; !ok {
		t.Error("ligand missing from payload:", got)
	}
	if res.Artifacts != nil {
		t.Error("no splitting was asked for")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BOLTZ2_API_KEY", "")
	t.Setenv("BOLTZ2_API_URL", "")
	if _, err := LoadConfig("", "", 0); err == nil {
		t.Error("no key anywhere should be an error")
	}

	cfg, err := LoadConfig("explicit", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != DfltBaseURL || cfg.Timeout != DfltTimeout {
		t.Error("defaults not applied:", cfg)
	}

	t.Setenv("BOLTZ2_API_KEY", "fromenv")
	t.Setenv("BOLTZ2_API_URL", "http://example.org/predict")
	cfg, err = LoadConfig("", "", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "fromenv" || cfg.BaseURL != "http://example.org/predict" {
		t.Error("environment not picked up:", cfg)
	}

	cfg, err = LoadConfig("explicit", "http://other/", 0)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "explicit" || cfg.BaseURL != "http://other/" {
		t.Error("explicit values should win over the environment:", cfg)
	}
}
