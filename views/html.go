package views

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
)

// html writes markup and remembers the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s escaped for element content and attribute values.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) num(n int) {
	h.raw(strconv.Itoa(n))
}

// href writes a sanitized, escaped URL for an href or action attribute.
func (h *html) href(u string) {
	h.raw(templ.EscapeString(string(templ.URL(u))))
}

func (h *html) printf(format string, args ...any) {
	h.text(fmt.Sprintf(format, args...))
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

func PlayerPath(name string) string {
	return "/players/" + url.PathEscape(name)
}

func GamePath(id int64) string {
	return "/games/" + strconv.FormatInt(id, 10)
}
