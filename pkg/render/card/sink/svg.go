package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/cardpress/pkg/render/card/layout"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	comments bool
	header   bool
}

// WithComments labels each region with an XML comment.
func WithComments() SVGOption { return func(r *svgRenderer) { r.comments = true } }

// WithoutHeader omits the <?xml ...?> declaration, for inline embedding.
func WithoutHeader() SVGOption { return func(r *svgRenderer) { r.header = false } }

func RenderSVG(doc layout.Document, opts ...SVGOption) []byte {
	r := svgRenderer{header: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.header {
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	}
	fmt.Fprintf(&buf, `<svg width="%dpx" height="%dpx" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		doc.Width, doc.Height, doc.Width, doc.Height)

	renderDefs(&buf, doc.Clips)
	for _, reg := range doc.Regions {
		if r.comments {
			fmt.Fprintf(&buf, "  <!-- %s -->\n", reg.Name)
		}
		renderRegion(&buf, reg)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, clips []layout.Clip) {
	if len(clips) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, c := range clips {
		fmt.Fprintf(buf, `    <clipPath id="%s"><rect x="%d" y="%d" rx="%d" ry="%d" width="%d" height="%d"/></clipPath>`+"\n",
			attr(c.ID), c.Rect.X, c.Rect.Y, c.Radius, c.Radius, c.Rect.W, c.Rect.H)
	}
	buf.WriteString("  </defs>\n")
}

func renderRegion(buf *bytes.Buffer, reg layout.Region) {
	if len(reg.Shapes)+len(reg.Overlay)+len(reg.Texts) == 0 && reg.Image == nil {
		return
	}
	fmt.Fprintf(buf, `  <g id="%s">`+"\n", attr(reg.Name))
	for _, s := range reg.Shapes {
		renderShape(buf, s)
	}
	if img := reg.Image; img != nil {
		fmt.Fprintf(buf, `    <image href="%s" x="%d" y="%d" width="%d" height="%d" preserveAspectRatio="xMidYMid slice" clip-path="url(#%s)"/>`+"\n",
			attr(img.Href), img.Rect.X, img.Rect.Y, img.Rect.W, img.Rect.H, attr(img.ClipID))
	}
	for _, s := range reg.Overlay {
		renderShape(buf, s)
	}
	for _, t := range reg.Texts {
		renderText(buf, t)
	}
	buf.WriteString("  </g>\n")
}

func renderShape(buf *bytes.Buffer, s layout.Shape) {
	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" rx="%d" ry="%d"`,
		s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H, s.Radius, s.Radius)
	if s.Fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, attr(s.Fill))
	} else {
		buf.WriteString(` fill="none"`)
	}
	if s.Stroke != "" && s.StrokeWidth > 0 {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%d"`, attr(s.Stroke), s.StrokeWidth)
	}
	buf.WriteString("/>\n")
}

func renderText(buf *bytes.Buffer, t layout.Text) {
	if len(t.Lines) == 0 {
		return
	}
	fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="%s" font-size="%d"`, t.X, t.Y, attr(t.Family), t.Size)
	if t.Weight != "" {
		fmt.Fprintf(buf, ` font-weight="%s"`, attr(t.Weight))
	}
	if t.Style != "" {
		fmt.Fprintf(buf, ` font-style="%s"`, attr(t.Style))
	}
	if t.Anchor != "" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, attr(t.Anchor))
	}
	fmt.Fprintf(buf, ` fill="%s">`, attr(t.Fill))

	if len(t.Lines) == 1 {
		buf.WriteString(escapeText(t.Lines[0]))
	} else {
		for i, y := range t.Baselines() {
			fmt.Fprintf(buf, `<tspan x="%d" y="%d">%s</tspan>`, t.X, y, escapeText(t.Lines[i]))
		}
	}
	buf.WriteString("</text>\n")
}

func escapeText(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func attr(s string) string { return attrEscaper.Replace(s) }
