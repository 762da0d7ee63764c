package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"zion-impact-fm/internal/config"
)

func TestEndpoint(t *testing.T) {
	cfg := config.DefaultConfig()
	tests := []struct {
		target string
		day    int
		want   string
	}{
		{"program", 0, "/programs/current"},
		{"schedule", 3, "/schedule?day=3"},
		{"sermons", 0, "/sermons?limit=3"},
		{"testimonies", 0, "/testimonies?approved=1&limit=10"},
		{"news", 0, "/news?limit=6"},
	}
	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			got, err := endpoint(cfg, tc.target, tc.day)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("endpoint = %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := endpoint(cfg, "weather", 0); err == nil {
		t.Error("expected error for unknown target")
	}
	if _, err := endpoint(cfg, "schedule", 7); err == nil {
		t.Error("expected error for day 7")
	}
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"name=Ruth", "message=a=b", "phone="})
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 || fields[1].Value != "a=b" || fields[2].Value != "" {
		t.Errorf("fields = %+v", fields)
	}

	if _, err := parseFields([]string{"novalue"}); err == nil {
		t.Error("expected error for a pair without =")
	}
	if _, err := parseFields([]string{"=x"}); err == nil {
		t.Error("expected error for an empty name")
	}
}

// run executes the root command against an API stub.
func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("ZION_API_BASE", srv.URL+"/api")

	// Flag values outlive Execute; start every run from the defaults.
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFetchPrintsIndentedJSON(t *testing.T) {
	var path string
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.RequestURI()
		w.Write([]byte(`[{"title":"Faith Over Fear","preacher":"Rev. Grace","date":"2026-10-11"}]`))
	}, "fetch", "sermons")
	if err != nil {
		t.Fatal(err)
	}
	if path != "/api/sermons?limit=3" {
		t.Errorf("requested %q", path)
	}
	if !strings.Contains(out, "\n    \"title\": \"Faith Over Fear\"") {
		t.Errorf("output not indented:\n%s", out)
	}
}

func TestSubmitContact(t *testing.T) {
	var contentType string
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}, "submit", "contact",
		"--field", "name=Ruth", "--field", "email=ruth@example.org",
		"--field", "subject=Prayer", "--field", "message=Hello")
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}
	if strings.TrimSpace(out) != "Message sent successfully! We will reply soon." {
		t.Errorf("output = %q", out)
	}
}

func TestSubmitInvalid(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not reach the API")
	}, "submit", "partner", "--field", "name=Grace")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if strings.TrimSpace(out) != "Error submitting partnership. Please try again." {
		t.Errorf("output = %q", out)
	}
}
