package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"zion-impact-fm/internal/api"
	"zion-impact-fm/internal/config"
	"zion-impact-fm/internal/page"
	"zion-impact-fm/internal/site"
)

type fakeHandle struct {
	mu      sync.Mutex
	fail    bool
	seekTo  float64
	volume  float64
	playing bool
}

func (h *fakeHandle) Play(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail {
		return fmt.Errorf("connection refused")
	}
	h.playing = true
	return nil
}

func (h *fakeHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
}

func (h *fakeHandle) CurrentTime() float64 { return 0 }
func (h *fakeHandle) Duration() float64    { return 200 }

func (h *fakeHandle) Seek(s float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seekTo = s
}

func (h *fakeHandle) SetVolume(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.volume = v
}

func (h *fakeHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.volume
}

type fixture struct {
	mux    *http.ServeMux
	site   *site.Site
	handle *fakeHandle

	mu      sync.Mutex
	posted  []string
	uploads []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{handle: &fakeHandle{}}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/testimonies", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"Mary","content":"God healed my mother"},{"name":"John","content":"I found a job"}]`)
	})
	apiMux.HandleFunc("GET /api/schedule", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"start_time":"06:00","end_time":"09:00","show_name":"Show %s","presenter_name":"Ruth"}]`, r.URL.Query().Get("day"))
	})
	apiMux.HandleFunc("POST /api/{endpoint}", func(w http.ResponseWriter, r *http.Request) {
		fx.mu.Lock()
		defer fx.mu.Unlock()
		fx.posted = append(fx.posted, r.PathValue("endpoint"))
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				for _, files := range r.MultipartForm.File {
					fx.uploads = append(fx.uploads, files[0].Filename)
				}
			}
		}
		if r.PathValue("endpoint") == "partners" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	apiSrv := httptest.NewServer(apiMux)
	t.Cleanup(apiSrv.Close)

	doc, err := page.Default()
	if err != nil {
		t.Fatal(err)
	}
	client := api.NewClient(apiSrv.URL+"/api", apiSrv.Client(), 0)
	s, err := site.New(config.DefaultConfig(), doc, client, fx.handle)
	if err != nil {
		t.Fatal(err)
	}
	fx.site = s

	fx.mux = http.NewServeMux()
	New(s).RegisterRoutes(fx.mux)
	return fx
}

func (fx *fixture) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	fx.mux.ServeHTTP(rec, req)

	var resp Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	return rec, resp
}

func (fx *fixture) post(t *testing.T, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	return fx.do(t, httptest.NewRequest("POST", target, nil))
}

func TestIndexServesLiveDocument(t *testing.T) {
	fx := newFixture(t)
	fx.site.Nav.ToggleMenu()

	rec, _ := fx.do(t, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("Cache-Control = %q", got)
	}
	if !strings.Contains(rec.Body.String(), `id="navMenu" class="nav-menu active"`) {
		t.Error("index should reflect the current document state")
	}

	rec, _ = fx.do(t, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	fx := newFixture(t)

	rec, _ := fx.do(t, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}

	fx.site.Registry.RefreshAll(context.Background())
	rec, _ = fx.do(t, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "zion_refresh_total") {
		t.Error("metrics should expose refresh counters")
	}
}

func TestNavRoutes(t *testing.T) {
	fx := newFixture(t)

	_, resp := fx.post(t, "/nav/toggle")
	if resp.Message != "open" {
		t.Errorf("toggle = %+v", resp)
	}
	_, resp = fx.post(t, "/nav/links")
	if resp.Message != "closed" {
		t.Errorf("link = %+v", resp)
	}

	_, resp = fx.post(t, "/nav/dropdowns/0?width=500")
	if resp.Message != "open" {
		t.Errorf("mobile dropdown = %+v", resp)
	}
	_, resp = fx.post(t, "/nav/dropdowns/1?width=1280")
	if resp.Message != "closed" {
		t.Errorf("desktop dropdown = %+v", resp)
	}

	rec, _ := fx.post(t, "/nav/dropdowns/9?width=500")
	if rec.Code != http.StatusNotFound {
		t.Errorf("out of range dropdown status = %d", rec.Code)
	}
	rec, _ = fx.post(t, "/nav/dropdowns/0")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing width status = %d", rec.Code)
	}

	rec, _ = fx.post(t, "/nav/filters/2")
	if rec.Code != http.StatusOK {
		t.Errorf("filter status = %d", rec.Code)
	}
}

func TestPlayerRoutes(t *testing.T) {
	fx := newFixture(t)

	_, resp := fx.post(t, "/player/toggle")
	if resp.Message != "playing" {
		t.Errorf("first toggle = %+v", resp)
	}
	_, resp = fx.post(t, "/player/toggle")
	if resp.Message != "paused" {
		t.Errorf("second toggle = %+v", resp)
	}

	fx.handle.mu.Lock()
	fx.handle.fail = true
	fx.handle.mu.Unlock()
	rec, resp := fx.post(t, "/player/toggle")
	if rec.Code != http.StatusBadGateway || resp.Status != "error" {
		t.Errorf("failed play = %d %+v", rec.Code, resp)
	}
	if fx.site.Player.IsPlaying() {
		t.Error("failed play must leave the player stopped")
	}

	fx.post(t, "/player/seek?value=50")
	fx.post(t, "/player/volume?value=40")
	fx.handle.mu.Lock()
	seek, volume := fx.handle.seekTo, fx.handle.volume
	fx.handle.mu.Unlock()
	if seek != 100 {
		t.Errorf("seek = %v, want 100", seek)
	}
	if math.Abs(volume-0.4) > 1e-9 {
		t.Errorf("volume = %v, want 0.4", volume)
	}

	rec, _ = fx.post(t, "/player/volume?value=loud")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad volume status = %d", rec.Code)
	}
}

func TestScheduleAndTestimonyRoutes(t *testing.T) {
	fx := newFixture(t)

	rec, _ := fx.post(t, "/schedule/4")
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule status = %d", rec.Code)
	}
	html, _ := fx.site.Doc.HTML()
	if !strings.Contains(html, "Show 4") {
		t.Error("schedule for day 4 not rendered")
	}
	rec, _ = fx.post(t, "/schedule/8")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("day 8 status = %d", rec.Code)
	}

	fx.site.Testimonies.Refresh(context.Background())
	_, resp := fx.post(t, "/testimonies/next")
	if resp.Message != "I found a job" {
		t.Errorf("next = %+v", resp)
	}
	_, resp = fx.post(t, "/testimonies/prev")
	if resp.Message != "God healed my mother" {
		t.Errorf("prev = %+v", resp)
	}
}

func TestFormRoutes(t *testing.T) {
	fx := newFixture(t)

	contact := url.Values{
		"name": {"Ruth"}, "email": {"ruth@example.org"}, "subject": {"Prayer"}, "message": {"Hello"},
	}
	req := httptest.NewRequest("POST", "/forms/contact", strings.NewReader(contact.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, resp := fx.do(t, req)
	if rec.Code != http.StatusOK || resp.Message != "Message sent successfully! We will reply soon." {
		t.Errorf("contact = %d %+v", rec.Code, resp)
	}

	invalid := url.Values{"name": {"Ruth"}, "email": {"nope"}}
	req = httptest.NewRequest("POST", "/forms/contact", strings.NewReader(invalid.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, resp = fx.do(t, req)
	if rec.Code != http.StatusUnprocessableEntity || resp.Message != "Error sending message. Please try again." {
		t.Errorf("invalid contact = %d %+v", rec.Code, resp)
	}

	partner := url.Values{"name": {"Grace"}, "email": {"grace@example.org"}, "phone": {"0700"}, "level": {"gold"}}
	req = httptest.NewRequest("POST", "/forms/partner", strings.NewReader(partner.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, resp = fx.do(t, req)
	if rec.Code != http.StatusBadGateway || resp.Status != "error" {
		t.Errorf("partner = %d %+v", rec.Code, resp)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("name", "Mary")
	mw.WriteField("email", "mary@example.org")
	mw.WriteField("content", "God healed my mother")
	fw, _ := mw.CreateFormFile("audio", "praise.mp3")
	fw.Write([]byte("ID3"))
	mw.Close()
	req = httptest.NewRequest("POST", "/forms/testimony", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec, resp = fx.do(t, req)
	if rec.Code != http.StatusOK || resp.Status != "ok" {
		t.Errorf("testimony = %d %+v", rec.Code, resp)
	}

	fx.mu.Lock()
	posted, uploads := fx.posted, fx.uploads
	fx.mu.Unlock()
	if strings.Join(posted, ",") != "contact,partners,testimonies" {
		t.Errorf("API received %v", posted)
	}
	if len(uploads) != 1 || uploads[0] != "praise.mp3" {
		t.Errorf("uploads = %v", uploads)
	}

	rec, _ = fx.post(t, "/forms/newsletter")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown form status = %d", rec.Code)
	}
}

func TestAudioOptInRoute(t *testing.T) {
	fx := newFixture(t)

	fx.post(t, "/forms/testimony/audio?checked=true")
	section, _ := fx.site.Doc.Region("#audioUploadSection")
	if !section.Visible() {
		t.Error("audio section should be shown")
	}
	fx.post(t, "/forms/testimony/audio?checked=false")
	if section.Visible() {
		t.Error("audio section should be hidden")
	}
	rec, _ := fx.post(t, "/forms/testimony/audio?checked=maybe")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad checked status = %d", rec.Code)
	}
}
