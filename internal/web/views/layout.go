// Package views renders the server side form pages from the state held in
// the session. Submit buttons post to /api/forms/*/submit, every other
// control posts back to its page.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Layout wraps body in the shared page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body><main><h1>%s</h1>`,
			templ.EscapeString(title), templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// page collects markup and keeps the first write error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *page) rawf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// option writes one <option>, marked selected when value equals current.
func (p *page) option(value, label, current string) {
	selected := ""
	if value == current {
		selected = " selected"
	}
	p.rawf(`<option value="%s"%s>%s</option>`, templ.EscapeString(value), selected, templ.EscapeString(label))
}

func (p *page) checkbox(name, value, label string, checked bool) {
	attr := ""
	if checked {
		attr = " checked"
	}
	p.rawf(`<label><input type="checkbox" name="%s" value="%s"%s> %s</label>`,
		templ.EscapeString(name), templ.EscapeString(value), attr, templ.EscapeString(label))
}

func (p *page) input(kind, name, label, value string, required bool) {
	req := ""
	if required {
		req = " required"
	}
	p.rawf(`<label>%s <input type="%s" name="%s" value="%s"%s></label>`,
		templ.EscapeString(label), kind, templ.EscapeString(name), templ.EscapeString(value), req)
}

func joinEscaped(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = templ.EscapeString(item)
	}
	return strings.Join(escaped, ", ")
}
