package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/madewira/tripdesk/internal/intake"
	"github.com/madewira/tripdesk/internal/intent"
	"github.com/madewira/tripdesk/internal/logger"
	"github.com/madewira/tripdesk/internal/parser/gemini"
	"github.com/madewira/tripdesk/internal/storage/memory"
)

type seqIDGen struct {
	next int
}

func (g *seqIDGen) GetID(_ context.Context) (string, error) {
	g.next++

	return fmt.Sprintf("id-%d", g.next), nil
}

type fakeParser struct {
	parsed intent.Parsed
	err    error
}

func (f *fakeParser) Parse(_ context.Context, _ string) (intent.Parsed, error) {
	return f.parsed, f.err
}

func newTestServer(t *testing.T, parser textParser) *httptest.Server {
	t.Helper()

	l := logger.New(log.New(io.Discard, "", 0))

	manager := intake.New(l, memory.New(memory.Config{L: l}), &seqIDGen{})

	conf := Conf{
		L:                 l,
		ServerLogger:      log.New(io.Discard, "", 0),
		Host:              "localhost",
		Port:              "0",
		ReadHeaderTimeout: 3 * time.Second,
		LivenessEndpoint:  "/liveness",
	}

	srv, err := New(context.Background(), conf, manager, parser)
	if err != nil {
		t.Fatalf("init server: %v", err)
	}

	ts := httptest.NewServer(srv.Srv().Handler)
	t.Cleanup(ts.Close)

	return ts
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}

	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	return resp, payload
}

func TestIntakeRoundTrip(t *testing.T) {
	ts := newTestServer(t, &fakeParser{})

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1", nil, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create intake: status=%d, body=%s", resp.StatusCode, payload)
	}

	var created struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1/"+created.ID+"/items", map[string]any{
		"type": "open-trips",
		"values": map[string]string{
			"destination": "Gili Trawangan",
			"date":        "2026-09-14",
			"pax":         "4",
			"duration":    "2 days 1 night",
		},
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: status=%d, body=%s", resp.StatusCode, payload)
	}

	var itemResp struct {
		Summary string `json:"summary"`
		Date    string `json:"date"`
		Icon    string `json:"icon"`
	}

	if err := json.Unmarshal(payload, &itemResp); err != nil {
		t.Fatalf("decode item response: %v", err)
	}

	if itemResp.Summary != "Gili Trawangan • 4 pax • 2 days 1 night" {
		t.Fatalf("summary=%q", itemResp.Summary)
	}

	if itemResp.Date != "Sep 14, 2026" || itemResp.Icon != "MapPin" {
		t.Fatalf("unexpected projection: %+v", itemResp)
	}

	resp, payload = doJSON(t, http.MethodPut, ts.URL+"/api/intakes/v1/"+created.ID+"/customer", map[string]string{
		"name":  "Made",
		"phone": "+62 812",
	}, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("set customer: status=%d, body=%s", resp.StatusCode, payload)
	}

	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1/"+created.ID+"/save",
		map[string]string{"mode": "confirm"},
		map[string]string{"Idempotency-Key": "key-1"},
	)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save: status=%d, body=%s", resp.StatusCode, payload)
	}

	var saved struct {
		ID    string `json:"id"`
		Items []struct {
			Status string `json:"status"`
		} `json:"items"`
	}

	if err := json.Unmarshal(payload, &saved); err != nil {
		t.Fatalf("decode save response: %v", err)
	}

	if len(saved.Items) != 1 || saved.Items[0].Status != "confirmed" {
		t.Fatalf("unexpected saved reservation: %s", payload)
	}

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/reservations/v1/"+saved.ID, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get reservation: status=%d, body=%s", resp.StatusCode, payload)
	}
}

func TestSaveRequiresIdempotencyKey(t *testing.T) {
	ts := newTestServer(t, &fakeParser{})

	_, payload := doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1", nil, nil)

	var created struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1/"+created.ID+"/save",
		map[string]string{"mode": "draft"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestSaveConfirmValidation(t *testing.T) {
	ts := newTestServer(t, &fakeParser{})

	_, payload := doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1", nil, nil)

	var created struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/intakes/v1/"+created.ID+"/save",
		map[string]string{"mode": "confirm"},
		map[string]string{"Idempotency-Key": "key-1"},
	)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}

	var fields map[string]string

	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("decode validation response: %v", err)
	}

	if _, ok := fields["items"]; !ok {
		t.Fatalf("validation fields=%v, want items gate", fields)
	}
}

func TestGetUnknownIntake(t *testing.T) {
	ts := newTestServer(t, &fakeParser{})

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/intakes/v1/missing", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", resp.StatusCode)
	}
}

func TestCatalogHandler(t *testing.T) {
	ts := newTestServer(t, &fakeParser{})

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/catalog/v1", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, body=%s", resp.StatusCode, payload)
	}

	var catalogResp struct {
		Types           []json.RawMessage `json:"types"`
		QuickCategories []json.RawMessage `json:"quickCategories"`
	}

	if err := json.Unmarshal(payload, &catalogResp); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}

	if len(catalogResp.Types) != 8 || len(catalogResp.QuickCategories) != 4 {
		t.Fatalf("got %d types and %d quick categories, want 8 and 4",
			len(catalogResp.Types), len(catalogResp.QuickCategories))
	}
}

func TestQuickParse(t *testing.T) {
	pax := 3

	ts := newTestServer(t, &fakeParser{
		parsed: intent.Parsed{Category: "FAST_BOAT", GuestName: "Sarah", Pax: &pax, Date: "2026-09-14", Time: "17:30"},
	})

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/quick/v1/parse", map[string]any{
		"text":     "fast boat to gili for sarah, 3 people, sep 14 5.30pm",
		"category": "TOUR",
		"fields":   map[string]any{"contactNumber": "+62 812"},
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, body=%s", resp.StatusCode, payload)
	}

	var parsed quickParseResponse

	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("decode parse response: %v", err)
	}

	if parsed.Category != "FAST_BOAT" {
		t.Fatalf("category=%v, want FAST_BOAT", parsed.Category)
	}

	if parsed.Fields.GuestName != "Sarah" || parsed.Fields.Pax != 3 {
		t.Fatalf("unexpected fields: %+v", parsed.Fields)
	}

	if parsed.Fields.ContactNumber != "+62 812" {
		t.Fatalf("current field values must survive an absent parse: %+v", parsed.Fields)
	}

	if parsed.Display.Date != "Sep 14, 2026" || parsed.Display.Time != "5:30 PM" {
		t.Fatalf("unexpected display block: %+v", parsed.Display)
	}
}

func TestQuickParseFailures(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"busy", gemini.ErrBusy, http.StatusConflict},
		{"unparseable", gemini.ErrUnparseable, http.StatusUnprocessableEntity},
		{"unavailable", gemini.ErrUnavailable, http.StatusBadGateway},
	}

	for _, tt := range cases {
		ts := newTestServer(t, &fakeParser{err: tt.err})

		resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/quick/v1/parse", map[string]any{
			"text": "boat tomorrow",
		}, nil)
		if resp.StatusCode != tt.wantStatus {
			t.Fatalf("%s: status=%d, want %d", tt.name, resp.StatusCode, tt.wantStatus)
		}

		var msg map[string]string

		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("%s: decode error response: %v", tt.name, err)
		}

		if msg["error"] == "" {
			t.Fatalf("%s: error message missing: %s", tt.name, payload)
		}
	}
}

func TestLiveness(t *testing.T) {
	ts := newTestServer(t, &fakeParser{})

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/liveness", nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status=%d, want 204", resp.StatusCode)
	}
}
