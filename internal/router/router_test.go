package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pnicolasgiordano/hb-emergencias/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func validPayload() map[string]any {
	return map[string]any{
		"socio":    "4171",
		"nombre":   "Ana",
		"sintomas": "dolor de pecho",
		"lat":      -34.9,
		"lng":      -56.2,
	}
}

func TestHTTP_EndToEnd_IntakeLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// 1) Socio envía la emergencia
	st, body := doReq(t, ts.URL, "POST", "/emergencies", validPayload())
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
	}

	var created map[string]any
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("create response not json: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("missing id in %s", string(body))
	}
	if created["status"] != "nuevo" {
		t.Fatalf("status = %v, want nuevo", created["status"])
	}
	if created["telefono"] != "" || created["observaciones"] != "" {
		t.Fatalf("optional fields should be empty strings: %s", string(body))
	}
	if created["createdAt"] == nil || created["createdAt"] == "" {
		t.Fatalf("missing createdAt: %s", string(body))
	}
	if _, present := created["takenAt"]; present {
		t.Fatalf("takenAt should not be present at creation: %s", string(body))
	}

	// 2) Recepción toma el caso
	st, body = doReq(t, ts.URL, "PATCH", "/emergencies/"+id+"/status", map[string]any{
		"status": "en_atencion",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
	}

	var taken map[string]any
	_ = json.Unmarshal(body, &taken)
	if taken["status"] != "en_atencion" {
		t.Fatalf("status = %v, want en_atencion", taken["status"])
	}
	if s, _ := taken["takenAt"].(string); s == "" {
		t.Fatalf("takenAt missing after en_atencion: %s", string(body))
	}
	if _, present := taken["closedAt"]; present {
		t.Fatalf("closedAt should stay unset: %s", string(body))
	}

	// 3) El caso figura en el listado con el estado actualizado
	st, body = doReq(t, ts.URL, "GET", "/emergencies", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", st)
	}
	var list []map[string]any
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 || list[0]["id"] != id || list[0]["status"] != "en_atencion" {
		t.Fatalf("unexpected list: %s", string(body))
	}

	// 4) Recepción cierra el caso
	st, body = doReq(t, ts.URL, "PATCH", "/emergencies/"+id+"/status", map[string]any{
		"status": "finalizado",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 close, got %d body=%s", st, string(body))
	}
	var closed map[string]any
	_ = json.Unmarshal(body, &closed)
	if s, _ := closed["closedAt"].(string); s == "" {
		t.Fatalf("closedAt missing after finalizado: %s", string(body))
	}
}

func TestHTTP_Create_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	for _, field := range []string{"socio", "nombre", "sintomas", "lat", "lng"} {
		payload := validPayload()
		delete(payload, field)

		st, body := doReq(t, ts.URL, "POST", "/emergencies", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("sin %s: expected 400, got %d body=%s", field, st, string(body))
		}

		var resp struct {
			Error    string   `json:"error"`
			Required []string `json:"required"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Error != "Faltan datos" || len(resp.Required) == 0 {
			t.Fatalf("sin %s: unexpected error body %s", field, string(body))
		}
	}

	// Nada quedó guardado.
	st, body := doReq(t, ts.URL, "GET", "/emergencies", nil)
	if st != http.StatusOK {
		t.Fatalf("list: %d", st)
	}
	var list []map[string]any
	_ = json.Unmarshal(body, &list)
	if len(list) != 0 {
		t.Fatalf("store should be empty after rejected creates, got %d", len(list))
	}
}

func TestHTTP_Create_NonNumericCoordinates(t *testing.T) {
	ts := newTestServer(t)

	payload := validPayload()
	payload["lat"] = "-34.9" // string, no número

	st, body := doReq(t, ts.URL, "POST", "/emergencies", payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Error != "Faltan datos" {
		t.Fatalf("error = %q, want Faltan datos", resp.Error)
	}
}

func TestHTTP_Create_CarriesAdvisoryFields(t *testing.T) {
	ts := newTestServer(t)

	payload := validPayload()
	payload["telefono"] = "099123456"
	payload["observaciones"] = "toma anticoagulantes"
	payload["distanceKm"] = 3.25
	payload["etaMin"] = 7

	st, body := doReq(t, ts.URL, "POST", "/emergencies", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var created struct {
		Telefono      string   `json:"telefono"`
		Observaciones string   `json:"observaciones"`
		DistanceKm    *float64 `json:"distanceKm"`
		EtaMin        *float64 `json:"etaMin"`
	}
	_ = json.Unmarshal(body, &created)
	if created.Telefono != "099123456" || created.Observaciones != "toma anticoagulantes" {
		t.Fatalf("optional fields lost: %s", string(body))
	}
	if created.DistanceKm == nil || *created.DistanceKm != 3.25 {
		t.Fatalf("distanceKm = %v, want 3.25", created.DistanceKm)
	}
	if created.EtaMin == nil || *created.EtaMin != 7 {
		t.Fatalf("etaMin = %v, want 7", created.EtaMin)
	}
}

func TestHTTP_List_NewestFirst(t *testing.T) {
	ts := newTestServer(t)

	var ids []string
	for i := 0; i < 3; i++ {
		st, body := doReq(t, ts.URL, "POST", "/emergencies", validPayload())
		if st != http.StatusCreated {
			t.Fatalf("create %d: %d", i, st)
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		ids = append(ids, resp.ID)
	}

	_, body := doReq(t, ts.URL, "GET", "/emergencies", nil)
	var list []struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &list)

	if len(list) != 3 {
		t.Fatalf("list size = %d, want 3", len(list))
	}
	for i := range list {
		want := ids[len(ids)-1-i]
		if list[i].ID != want {
			t.Fatalf("pos %d: id = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestHTTP_ChangeStatus_UnknownID(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "PATCH", "/emergencies/no-such-id/status", map[string]any{
		"status": "en_atencion",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", st, string(body))
	}
}

func TestHTTP_ChangeStatus_InvalidStatus(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/emergencies", validPayload())
	if st != http.StatusCreated {
		t.Fatalf("create: %d", st)
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &created)

	st, body = doReq(t, ts.URL, "PATCH", "/emergencies/"+created.ID+"/status", map[string]any{
		"status": "resuelto",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}

	// El registro no cambió.
	_, body = doReq(t, ts.URL, "GET", "/emergencies", nil)
	var list []struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 || list[0].Status != "nuevo" {
		t.Fatalf("record mutated by invalid status: %s", string(body))
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %q", st, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, bytes.TrimSpace(raw)
}
