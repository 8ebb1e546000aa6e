package wheel

import (
	"bufio"
	"bytes"
	"context"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/metrics"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/render"
	"fortune_wheel/internal/repository/memory_repo"
	wheelServ "fortune_wheel/internal/service/wheel"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type testWheelConfig struct{}

func (testWheelConfig) FrameInterval() time.Duration { return time.Millisecond }
func (testWheelConfig) Workers() int                 { return 4 }
func (testWheelConfig) PublicURL() string            { return "http://wheel.test" }
func (testWheelConfig) Presets() []model.Preset {
	return []model.Preset{{Name: "coin", Settings: model.WheelSettings{Rewards: []string{"Heads", "Tails"}}}}
}

const operatorHeader = "X-Test-Operator"

// testOperator stands in for the JWT middleware.
func testOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(operatorHeader) == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	rend, err := render.New()
	if err != nil {
		t.Fatal(err)
	}
	serv, err := wheelServ.NewWheelService(
		memory_repo.NewWheelRepository(),
		testWheelConfig{},
		rend,
		metrics.New(prometheus.NewRegistry()),
		zap.NewNop(),
	)
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	Register(r, NewHandler(HandlerDeps{Serv: serv}), testOperator)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		_ = serv.Close()
	})
	return srv
}

func do(t *testing.T, method, url, body string, operator bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if operator {
		req.Header.Set(operatorHeader, "ops")
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func createABCD(t *testing.T, srv *httptest.Server) dto.WheelResponse {
	t.Helper()
	res := do(t, http.MethodPost, srv.URL+"/wheels",
		`{"rewards":["A","B","C","D"],"winner":2,"duration":"50ms"}`, true)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", res.StatusCode)
	}
	return decodeBody[dto.WheelResponse](t, res)
}

func TestSpinOverHTTP(t *testing.T) {
	srv := newServer(t)
	w := createABCD(t, srv)
	if len(w.Segments) != 4 || !w.Ready || w.Phase != "idle" {
		t.Fatalf("created wheel = %+v", w)
	}

	res := do(t, http.MethodPost, srv.URL+"/wheels/"+w.ID+"/spin", "", false)
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("spin status = %d", res.StatusCode)
	}
	started := decodeBody[dto.SpinResponse](t, res)
	if started.Target != 545 || started.Winner != 2 {
		t.Errorf("spin = %+v", started)
	}

	res = do(t, http.MethodPost, srv.URL+"/wheels/"+w.ID+"/spin", "", false)
	if res.StatusCode != http.StatusConflict {
		t.Errorf("double spin status = %d, want 409", res.StatusCode)
	}

	res = do(t, http.MethodGet, srv.URL+"/wheels/"+w.ID+"/result?wait=5s", "", false)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("result status = %d", res.StatusCode)
	}
	result := decodeBody[dto.ResultResponse](t, res)
	if result.Index != 2 || result.Value != "C" {
		t.Errorf("result = %+v", result)
	}

	res = do(t, http.MethodPost, srv.URL+"/wheels/"+w.ID+"/reset", "", false)
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("reset status = %d", res.StatusCode)
	}
}

func TestErrorMapping(t *testing.T) {
	srv := newServer(t)
	w := createABCD(t, srv)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		operator bool
		want     int
	}{
		{"create without operator", http.MethodPost, "/wheels", `{"rewards":["A"]}`, false, http.StatusUnauthorized},
		{"empty rewards", http.MethodPost, "/wheels", `{"rewards":[]}`, true, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/wheels", `{"prizes":["A"]}`, true, http.StatusBadRequest},
		{"bad duration", http.MethodPost, "/wheels", `{"rewards":["A"],"duration":"soon"}`, true, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/wheels/nope", "", false, http.StatusBadRequest},
		{"missing wheel", http.MethodGet, "/wheels/00000000-0000-0000-0000-000000000001", "", false, http.StatusNotFound},
		{"unknown preset", http.MethodPost, "/wheels/preset/dice", "", true, http.StatusNotFound},
		{"result before spin", http.MethodGet, "/wheels/" + w.ID + "/result", "", false, http.StatusConflict},
		{"reset while idle", http.MethodPost, "/wheels/" + w.ID + "/reset", "", false, http.StatusConflict},
		{"bad angle", http.MethodGet, "/wheels/" + w.ID + "/image.png?angle=x", "", false, http.StatusBadRequest},
		{"bad wait", http.MethodGet, "/wheels/" + w.ID + "/result?wait=1h", "", false, http.StatusBadRequest},
		{"delete without operator", http.MethodDelete, "/wheels/" + w.ID, "", false, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, tt.method, srv.URL+tt.path, tt.body, tt.operator)
			if res.StatusCode != tt.want {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("status = %d, want %d (%s)", res.StatusCode, tt.want, body)
			}
		})
	}
}

func TestPresetsAndImages(t *testing.T) {
	srv := newServer(t)

	res := do(t, http.MethodGet, srv.URL+"/presets", "", false)
	presets := decodeBody[[]dto.PresetResponse](t, res)
	if len(presets) != 1 || presets[0].Name != "coin" {
		t.Fatalf("presets = %+v", presets)
	}

	res = do(t, http.MethodPost, srv.URL+"/wheels/preset/coin", "", true)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("preset create status = %d", res.StatusCode)
	}
	w := decodeBody[dto.WheelResponse](t, res)

	for _, path := range []string{"/image.png", "/image.png?angle=90", "/qr.png"} {
		res := do(t, http.MethodGet, srv.URL+"/wheels/"+w.ID+path, "", false)
		if res.StatusCode != http.StatusOK || res.Header.Get("Content-Type") != "image/png" {
			t.Errorf("%s: status %d type %q", path, res.StatusCode, res.Header.Get("Content-Type"))
			continue
		}
		body, _ := io.ReadAll(res.Body)
		if !bytes.HasPrefix(body, []byte("\x89PNG")) {
			t.Errorf("%s: body is not a PNG", path)
		}
	}

	res = do(t, http.MethodDelete, srv.URL+"/wheels/"+w.ID, "", true)
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", res.StatusCode)
	}
	res = do(t, http.MethodGet, srv.URL+"/wheels/"+w.ID, "", false)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", res.StatusCode)
	}
}

func TestEventStream(t *testing.T) {
	srv := newServer(t)
	w := createABCD(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/wheels/"+w.ID+"/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	spin := do(t, http.MethodPost, srv.URL+"/wheels/"+w.ID+"/spin", "", false)
	if spin.StatusCode != http.StatusAccepted {
		t.Fatalf("spin status = %d", spin.StatusCode)
	}

	sc := bufio.NewScanner(res.Body)
	var settle bool
	for sc.Scan() {
		line := sc.Text()
		if line == "event: settle" {
			settle = true
			continue
		}
		if settle && strings.HasPrefix(line, "data: ") {
			var ev dto.EventResponse
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
				t.Fatal(err)
			}
			if ev.Result == nil || ev.Result.Value != "C" || ev.Nearest != 2 {
				t.Errorf("settle event = %+v", ev)
			}
			return
		}
	}
	t.Fatalf("stream ended without settle event: %v", sc.Err())
}
