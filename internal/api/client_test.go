package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"zion-impact-fm/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", srv.Client(), 0)
}

func TestCurrentProgram(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/programs/current" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"show_name":"Morning Glory","presenter":"Pastor Ruth","start_time":"06:00","end_time":"09:00","description":"Praise and prayer","song_name":"Way Maker"}`))
	})

	p, ok := c.CurrentProgram(context.Background())
	if !ok {
		t.Fatal("expected program")
	}
	want := model.ProgramInfo{
		ShowName: "Morning Glory", Presenter: "Pastor Ruth", StartTime: "06:00",
		EndTime: "09:00", Description: "Praise and prayer", SongName: "Way Maker",
	}
	if *p != want {
		t.Errorf("got %+v, want %+v", *p, want)
	}
}

func TestCurrentProgramNull(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})
	if _, ok := c.CurrentProgram(context.Background()); ok {
		t.Error("null body should count as no data")
	}
}

func TestListQueries(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.URL.RequestURI())
		mu.Unlock()
		w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	c.Sermons(ctx, 3)
	c.Testimonies(ctx, 10)
	c.News(ctx, 6)
	c.Schedule(ctx, 4)

	mu.Lock()
	defer mu.Unlock()
	want := []string{
		"/api/sermons?limit=3",
		"/api/testimonies?approved=1&limit=10",
		"/api/news?limit=6",
		"/api/schedule?day=4",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d requests, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFetchFailuresAreNoData(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"title":`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, tt.handler)
			if items, ok := c.Sermons(context.Background(), 3); ok {
				t.Errorf("expected no data, got %v", items)
			}
		})
	}
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, nil, time.Second)
	if _, ok := c.News(context.Background(), 6); ok {
		t.Error("expected no data when the API is unreachable")
	}
}

func TestPostJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/contact" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
			return
		}
		if body["name"] != "Ada" || body["subject"] != "Prayer" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	})

	err := c.PostJSON(context.Background(), "/contact", map[string]string{"name": "Ada", "subject": "Prayer"})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
}

func TestPostStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email is invalid", http.StatusUnprocessableEntity)
	})

	err := c.PostJSON(context.Background(), "/partners", map[string]string{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusUnprocessableEntity || se.Body != "email is invalid" {
		t.Errorf("unexpected status error %+v", se)
	}
}

func TestPostMultipart(t *testing.T) {
	tests := []struct {
		name       string
		attachment *model.Attachment
		wantFile   bool
	}{
		{"with audio", &model.Attachment{Field: "audio", Filename: "story.mp3", ContentType: "audio/mpeg", Data: []byte("ID3")}, true},
		{"without audio", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("ParseMultipartForm: %v", err)
					return
				}
				if r.FormValue("name") != "Grace" || r.FormValue("content") != "Healed" {
					t.Errorf("unexpected fields %v", r.MultipartForm.Value)
				}
				files := r.MultipartForm.File["audio"]
				if (len(files) == 1) != tt.wantFile {
					t.Errorf("audio parts = %d, wantFile %v", len(files), tt.wantFile)
					return
				}
				if tt.wantFile {
					f, _ := files[0].Open()
					data, _ := io.ReadAll(f)
					if string(data) != "ID3" || files[0].Filename != "story.mp3" {
						t.Errorf("unexpected file %q %q", files[0].Filename, data)
					}
				}
			})

			fields := []model.Field{{Name: "name", Value: "Grace"}, {Name: "content", Value: "Healed"}}
			if err := c.PostMultipart(context.Background(), "/testimonies", fields, tt.attachment); err != nil {
				t.Fatalf("PostMultipart: %v", err)
			}
		})
	}
}

func TestGetRaw(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Hope"}]`))
	})
	data, err := c.GetRaw(context.Background(), "/sermons?limit=3")
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	if string(data) != `[{"title":"Hope"}]` {
		t.Errorf("unexpected body %q", data)
	}
}
