// Package page holds the site document and the region handles controllers
// write to. A Document stands in for the browser DOM: every read and write
// goes through its lock, so each update lands as one atomic step.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

//go:embed templates/index.html
var templates embed.FS

// Document is a mutable HTML document shared by the site controllers.
type Document struct {
	mu  sync.RWMutex
	doc *goquery.Document
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Default returns a fresh copy of the embedded site template.
func Default() (*Document, error) {
	data, err := templates.ReadFile("templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Region resolves the first element matching selector.
func (d *Document) Region(selector string) (*Region, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return &Region{doc: d, sel: sel}, nil
}

// Regions resolves every element matching selector, in document order.
func (d *Document) Regions(selector string) []*Region {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var regions []*Region
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		regions = append(regions, &Region{doc: d, sel: s})
	})
	return regions
}

// HTML renders the whole document.
func (d *Document) HTML() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc.Html()
}

// Region is a handle on one element of a Document.
type Region struct {
	doc *Document
	sel *goquery.Selection
}

// SetText replaces the element's content with escaped text.
func (r *Region) SetText(text string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.sel.SetText(text)
}

// Text returns the combined text of the element and its descendants.
func (r *Region) Text() string {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	return r.sel.Text()
}

// SetHTML replaces the element's content with the given markup.
func (r *Region) SetHTML(html string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.sel.SetHtml(html)
}

// HTML returns the element's inner markup.
func (r *Region) HTML() string {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	html, _ := r.sel.Html()
	return html
}

func (r *Region) AddClass(class string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.sel.AddClass(class)
}

func (r *Region) RemoveClass(class string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.sel.RemoveClass(class)
}

// ToggleClass flips class and reports whether it is now present.
func (r *Region) ToggleClass(class string) bool {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.sel.ToggleClass(class)
	return r.sel.HasClass(class)
}

func (r *Region) HasClass(class string) bool {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	return r.sel.HasClass(class)
}

// SetClass replaces the whole class attribute.
func (r *Region) SetClass(classes ...string) {
	r.SetAttr("class", strings.Join(classes, " "))
}

func (r *Region) SetAttr(name, value string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.sel.SetAttr(name, value)
}

func (r *Region) Attr(name string) string {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	return r.sel.AttrOr(name, "")
}

// Show makes the element visible (display: block).
func (r *Region) Show() {
	r.SetAttr("style", "display: block")
}

// Hide collapses the element (display: none).
func (r *Region) Hide() {
	r.SetAttr("style", "display: none")
}

// Visible reports whether the element is not collapsed by an inline style.
func (r *Region) Visible() bool {
	style := strings.ReplaceAll(r.Attr("style"), " ", "")
	return !strings.Contains(style, "display:none")
}

// Parent returns the immediate containing element.
func (r *Region) Parent() *Region {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	return &Region{doc: r.doc, sel: r.sel.Parent()}
}

// Find resolves the descendants of the element matching selector.
func (r *Region) Find(selector string) []*Region {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()

	var regions []*Region
	r.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		regions = append(regions, &Region{doc: r.doc, sel: s})
	})
	return regions
}

// Value returns a form control's current value. Text areas keep it as
// content, every other control in the value attribute.
func (r *Region) Value() string {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	if r.sel.Is("textarea") {
		return r.sel.Text()
	}
	return r.sel.AttrOr("value", "")
}

// SetValue sets a form control's value.
func (r *Region) SetValue(value string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	if r.sel.Is("textarea") {
		r.sel.SetText(value)
		return
	}
	r.sel.SetAttr("value", value)
}

// Checked reports whether a checkbox carries the checked attribute.
func (r *Region) Checked() bool {
	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()
	_, ok := r.sel.Attr("checked")
	return ok
}

func (r *Region) SetChecked(checked bool) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	if checked {
		r.sel.SetAttr("checked", "")
		return
	}
	r.sel.RemoveAttr("checked")
}
