package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rv32emu/api"
)

func newTestServer(t *testing.T) (*api.Server, *httptest.Server) {
	t.Helper()
	s := api.NewServer(0)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHealthEndpointReportsSessionCount(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestCreateSessionThenStepThenRegisters(t *testing.T) {
	_, ts := newTestServer(t)

	image := []byte{0x93, 0x05, 0x50, 0x00} // addi x11, x0, 5
	createReq := map[string]any{
		"image": base64.StdEncoding.EncodeToString(image),
	}
	var createBody bytes.Buffer
	if err := json.NewEncoder(&createBody).Encode(createReq); err != nil {
		t.Fatalf("encode create request: %v", err)
	}

	resp, err := http.Post(ts.URL+"/api/v1/sessions", "application/json", &createBody)
	if err != nil {
		t.Fatalf("POST /api/v1/sessions: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var created struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.SessionID == "" {
		t.Fatal("empty session id returned")
	}

	stepResp, err := http.Post(ts.URL+"/api/v1/sessions/"+created.SessionID+"/step", "application/json", nil)
	if err != nil {
		t.Fatalf("POST .../step: %v", err)
	}
	defer stepResp.Body.Close()
	if stepResp.StatusCode != http.StatusOK {
		t.Fatalf("step status = %d, want 200", stepResp.StatusCode)
	}

	regResp, err := http.Get(ts.URL + "/api/v1/sessions/" + created.SessionID + "/registers")
	if err != nil {
		t.Fatalf("GET .../registers: %v", err)
	}
	defer regResp.Body.Close()

	var regs struct {
		Registers [32]uint32 `json:"registers"`
		Cycles    uint64     `json:"cycles"`
	}
	if err := json.NewDecoder(regResp.Body).Decode(&regs); err != nil {
		t.Fatalf("decode registers response: %v", err)
	}
	if regs.Registers[11] != 5 {
		t.Errorf("x11 = %d, want 5", regs.Registers[11])
	}
	if regs.Cycles != 1 {
		t.Errorf("cycles = %d, want 1", regs.Cycles)
	}
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/sessions/does-not-exist/registers")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDestroySessionThenGetReturnsNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/sessions", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var created struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/sessions/"+created.SessionID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", delResp.StatusCode)
	}

	getResp, err := http.Get(ts.URL + "/api/v1/sessions/" + created.SessionID + "/registers")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 after destroy", getResp.StatusCode)
	}
}

func TestCORSRejectsNonLocalOrigin(t *testing.T) {
	_, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no Access-Control-Allow-Origin header for a remote origin")
	}
}
