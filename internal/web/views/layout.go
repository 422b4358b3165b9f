// Package views renders the board page. Components are plain templ
// components so handlers and tests can render them to any writer.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "error" or "info"
	Message string
}

// printer accumulates the first write error so components stay linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) render(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// Page wraps body in the shared document shell
func Page(title string, flash *FlashMessage, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>%s</style>
</head>
<body>
<header class="site-header"><a href="/">Darts 501</a></header>
<main>
`, esc(title), stylesheet)
		if flash != nil {
			p.printf(`<div id="flash" class="flash flash-%s" role="alert">%s</div>
`, esc(flash.Type), esc(flash.Message))
		}
		p.render(ctx, body)
		p.printf(`</main>
</body>
</html>
`)
		return p.err
	})
}

// ErrorPage renders a plain message page
func ErrorPage(title, message string) templ.Component {
	return Page(title, nil, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<section id="error" class="error-page"><h1>%s</h1><p>%s</p><p><a href="/">Back to the board</a></p></section>
`, esc(title), esc(message))
		return p.err
	}))
}

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; background: #14281d; color: #f4efe1; }
.site-header { padding: 0.75rem 1.5rem; background: #0b1a12; }
.site-header a { color: #f4efe1; font-weight: 700; text-decoration: none; }
main { padding: 1rem 1.5rem; }
.flash { padding: 0.5rem 1rem; border-radius: 4px; margin-bottom: 1rem; }
.flash-error { background: #8e2b22; }
.flash-info { background: #1f5d8c; }
.game-layout { display: flex; flex-wrap: wrap; gap: 2rem; }
#dartboard { width: min(90vw, 520px); height: auto; cursor: crosshair; }
.zone:hover { opacity: 0.8; }
.board-number { fill: #f4efe1; font-size: 20px; text-anchor: middle; dominant-baseline: middle; pointer-events: none; }
.player-card { padding: 0.5rem 0.75rem; margin-bottom: 0.5rem; border-radius: 4px; background: #1e3a2a; }
.player-card.current { outline: 2px solid #e8c547; }
.player-score { font-size: 2rem; font-weight: 700; }
.throw-item.rejected { text-decoration: line-through; opacity: 0.7; }
#controls form { display: inline-block; margin-right: 0.5rem; }
`
