package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/observability"
	"github.com/matzehuels/cardpress/pkg/render/card/art"
	"github.com/matzehuels/cardpress/pkg/render/card/layout"
	"github.com/matzehuels/cardpress/pkg/render/card/sink"
	"github.com/matzehuels/cardpress/pkg/render/card/theme"
	"github.com/matzehuels/cardpress/pkg/render/raster"
)

// Runner holds the collaborators shared by every pipeline run.
//
// The Runner is stateless apart from these collaborators, so multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Rasterizer raster.Rasterizer
	Themes     *theme.Registry
	Art        art.Resolver
	Logger     *log.Logger
}

// NewRunner creates a runner. A nil registry gets the built-in themes and a
// nil logger uses log.Default(). Art references resolve as file paths
// relative to the working directory until Art is replaced.
func NewRunner(rz raster.Rasterizer, themes *theme.Registry, logger *log.Logger) *Runner {
	if themes == nil {
		themes = theme.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Rasterizer: rz,
		Themes:     themes,
		Art:        art.Memo(art.Files{}),
		Logger:     logger,
	}
}

// Layout builds the vector document for one card. A non-empty themeName
// forces that base theme; otherwise the card's own theme_name is used.
func (r *Runner) Layout(ctx context.Context, c card.Card, themeName string) (layout.Document, error) {
	id := c.WithDefaults().ID()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, id)
	start := time.Now()

	opts := []layout.Option{layout.WithArt(r.Art), layout.WithRegistry(r.Themes)}
	if themeName != "" {
		base, err := r.Themes.Lookup(themeName)
		if err != nil {
			hooks.OnLayoutComplete(ctx, id, 0, time.Since(start), err)
			return layout.Document{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "card %q", c.Name)
		}
		opts = append(opts, layout.WithTheme(base))
	}

	doc, err := layout.Build(c, opts...)
	hooks.OnLayoutComplete(ctx, id, len(doc.Warnings), time.Since(start), err)
	return doc, err
}

// RenderSVG lays out c with its own theme and renders it to SVG bytes.
func (r *Runner) RenderSVG(ctx context.Context, c card.Card) ([]byte, error) {
	doc, err := r.Layout(ctx, c, "")
	if err != nil {
		return nil, err
	}
	r.logWarnings(c, doc)
	return sink.RenderSVG(doc), nil
}

func (r *Runner) logWarnings(c card.Card, doc layout.Document) {
	for _, w := range doc.Warnings {
		r.Logger.Warn(errors.UserMessage(w), "card", c.WithDefaults().Name, "code", errors.GetCode(w))
	}
}
