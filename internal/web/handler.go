// Package web serves the live page and turns UI events into controller
// calls.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zion-impact-fm/internal/forms"
	"zion-impact-fm/internal/model"
	"zion-impact-fm/internal/site"
)

const maxUpload = 32 << 20

// Handler holds the HTTP handlers and the site they drive.
type Handler struct {
	site *site.Site
}

// New creates a Handler for s.
func New(s *site.Site) *Handler {
	return &Handler{site: s}
}

// Response is the body of every event endpoint.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RegisterRoutes registers all HTTP routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.noCache(h.handleIndex))
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /nav/toggle", h.handleNavToggle)
	mux.HandleFunc("POST /nav/links", h.handleNavLink)
	mux.HandleFunc("POST /nav/dropdowns/{index}", h.handleDropdown)
	mux.HandleFunc("POST /nav/filters/{index}", h.handleFilter)

	mux.HandleFunc("POST /player/toggle", h.handlePlayerToggle)
	mux.HandleFunc("POST /player/seek", h.handleSeek)
	mux.HandleFunc("POST /player/volume", h.handleVolume)

	mux.HandleFunc("POST /schedule/{day}", h.handleScheduleDay)
	mux.HandleFunc("POST /testimonies/next", h.handleTestimonyStep(1))
	mux.HandleFunc("POST /testimonies/prev", h.handleTestimonyStep(-1))

	mux.HandleFunc("POST /forms/testimony/audio", h.handleAudioOptIn)
	mux.HandleFunc("POST /forms/{kind}", h.handleForm)
}

func (h *Handler) noCache(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next(w, r)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := h.site.Doc.HTML()
	if err != nil {
		log.Printf("web: rendering page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func ok(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Status: "ok", Message: message})
}

func fail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Response{Status: "error", Message: message})
}

func openClosed(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func (h *Handler) handleNavToggle(w http.ResponseWriter, r *http.Request) {
	h.site.Nav.ToggleMenu()
	ok(w, openClosed(h.site.Nav.MenuOpen()))
}

func (h *Handler) handleNavLink(w http.ResponseWriter, r *http.Request) {
	h.site.Nav.LinkActivated()
	ok(w, openClosed(h.site.Nav.MenuOpen()))
}

func (h *Handler) handleDropdown(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid dropdown index")
		return
	}
	width, err := strconv.Atoi(r.URL.Query().Get("width"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid width")
		return
	}
	if _, err := h.site.Nav.DropdownActivated(index, width); err != nil {
		fail(w, http.StatusNotFound, err.Error())
		return
	}
	ok(w, openClosed(h.site.Nav.DropdownExpanded(index)))
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid filter index")
		return
	}
	if err := h.site.Nav.SelectFilter(index); err != nil {
		fail(w, http.StatusNotFound, err.Error())
		return
	}
	ok(w, "")
}

func (h *Handler) handlePlayerToggle(w http.ResponseWriter, r *http.Request) {
	if err := h.site.Player.TogglePlay(r.Context()); err != nil {
		fail(w, http.StatusBadGateway, "stream unavailable")
		return
	}
	if h.site.Player.IsPlaying() {
		ok(w, "playing")
		return
	}
	ok(w, "paused")
}

// sliderValue reads the value parameter of a 0-100 slider.
func sliderValue(r *http.Request) (float64, bool) {
	v, err := strconv.ParseFloat(r.FormValue("value"), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

func (h *Handler) handleSeek(w http.ResponseWriter, r *http.Request) {
	v, valid := sliderValue(r)
	if !valid {
		fail(w, http.StatusBadRequest, "value must be between 0 and 100")
		return
	}
	h.site.Player.Seek(v)
	ok(w, "")
}

func (h *Handler) handleVolume(w http.ResponseWriter, r *http.Request) {
	v, valid := sliderValue(r)
	if !valid {
		fail(w, http.StatusBadRequest, "value must be between 0 and 100")
		return
	}
	h.site.Player.SetVolume(v)
	ok(w, "")
}

func (h *Handler) handleScheduleDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid day")
		return
	}
	if err := h.site.Schedule.SelectDay(r.Context(), day); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	ok(w, "")
}

func (h *Handler) handleTestimonyStep(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if delta > 0 {
			h.site.Testimonies.Next()
		} else {
			h.site.Testimonies.Prev()
		}
		current, _ := h.site.Testimonies.Current()
		ok(w, current.Content)
	}
}

func (h *Handler) handleAudioOptIn(w http.ResponseWriter, r *http.Request) {
	checked, err := strconv.ParseBool(r.URL.Query().Get("checked"))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid checked value")
		return
	}
	f, _ := h.site.Form(forms.Testimony)
	if err := f.SetAudioOptIn(checked); err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	ok(w, "")
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	f, found := h.site.Form(r.PathValue("kind"))
	if !found {
		http.NotFound(w, r)
		return
	}

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxUpload)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid form body")
		return
	}

	spec := f.Spec()
	for _, fs := range spec.Fields {
		f.Set(fs.Name, r.PostFormValue(fs.Name))
	}
	if spec.FileField != "" {
		attachment, err := readAttachment(r, spec.FileField)
		if err != nil {
			fail(w, http.StatusBadRequest, "invalid attachment")
			return
		}
		f.Attach(attachment)
	}

	if err := f.Submit(r.Context()); err != nil {
		code := http.StatusBadGateway
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			code = http.StatusUnprocessableEntity
		}
		fail(w, code, f.Message().Text())
		return
	}
	ok(w, f.Message().Text())
}

// readAttachment returns the uploaded file in field, or nil when none was
// sent.
func readAttachment(r *http.Request, field string) (*model.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &model.Attachment{
		Field:       field,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
