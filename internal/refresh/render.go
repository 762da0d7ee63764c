package refresh

import (
	"bytes"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

const excerptLength = 100

var funcs = template.FuncMap{
	"date":    localeDate,
	"summary": summary,
}

var (
	sermonCard = template.Must(template.New("sermon").Funcs(funcs).Parse(`
<div class="sermon-card">
  <div class="sermon-image"></div>
  <div class="sermon-details">
    <h3>{{.Title}}</h3>
    <p class="sermon-preacher">{{.Preacher}}</p>
    <p class="sermon-date">{{date .Date}}</p>
    <div class="sermon-buttons">
      <button class="sermon-btn">Listen</button>
      <button class="sermon-btn">Download</button>
    </div>
  </div>
</div>`))

	newsCard = template.Must(template.New("news").Funcs(funcs).Parse(`
<div class="news-card">
  <div class="news-image"></div>
  <div class="news-content">
    <p class="news-date">{{date .Date}}</p>
    <h3>{{.Title}}</h3>
    <p>{{summary .Excerpt .Content}}...</p>
  </div>
</div>`))

	scheduleRow = template.Must(template.New("schedule").Parse(`
<div class="schedule-item">
  <div class="schedule-time">{{.StartTime}} - {{.EndTime}}</div>
  <div class="schedule-show">{{.ShowName}}</div>
  <div class="schedule-presenter">Host: {{.PresenterName}}</div>
</div>`))
)

func placeholder(text string) string {
	return `<p class="loading">` + template.HTMLEscapeString(text) + `</p>`
}

// renderAll executes tmpl for every item and concatenates the output.
func renderAll[T any](tmpl *template.Template, items []T) string {
	var buf bytes.Buffer
	for _, item := range items {
		if err := tmpl.Execute(&buf, item); err != nil {
			log.Printf("refresh: rendering %s: %v", tmpl.Name(), err)
		}
	}
	return buf.String()
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// localeDate formats an API date the way en-US browsers show
// toLocaleDateString(): 1/2/2006. Unparseable input is returned as is.
func localeDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return s
}

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

// summary returns the excerpt, or the first characters of content as plain
// text when there is none.
func summary(excerpt, content string) string {
	if excerpt != "" {
		return excerpt
	}
	text := []rune(plainText(content))
	if len(text) > excerptLength {
		text = text[:excerptLength]
	}
	return string(text)
}

// plainText strips Markdown and HTML formatting from s.
func plainText(s string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
