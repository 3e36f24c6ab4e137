package pipeline

import (
	"context"
	stderrors "errors"
	"image"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/observability"
	"github.com/matzehuels/cardpress/pkg/printjob"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
	"github.com/matzehuels/cardpress/pkg/render/sheet/compose"
	sheetsink "github.com/matzehuels/cardpress/pkg/render/sheet/sink"
)

// Print resolves reqs against catalog and writes the packed sheets.
//
// Every request is resolved before the first rasterizer call. Each distinct
// card is rasterized once; the first failure cancels the rest and is
// returned with the offending card id. Nothing is written unless every card
// rasterized.
func (r *Runner) Print(ctx context.Context, catalog printjob.Catalog, reqs []printjob.Request, opts PrintOptions) (*PrintResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	job, err := printjob.Resolve(reqs, catalog)
	if err != nil {
		return nil, err
	}
	if r.Rasterizer == nil {
		return nil, errors.New(errors.ErrCodeRasterization, "no rasterizer configured")
	}

	spec := opts.Sheet
	res := &PrintResult{Job: job, Page: spec.Page}
	logger := r.Logger.With("job", job.ID.String())
	logger.Info("resolved print job", "cards", job.Len(), "distinct", len(job.Distinct()))

	grid := sheet.NewGrid(spec)
	if !grid.Fits() {
		res.Overflow = true
		logger.Warn("grid exceeds page margins",
			"grid_w", grid.Block.W, "grid_h", grid.Block.H,
			"page_w", spec.Page.Width, "page_h", spec.Page.Height,
			"margin", spec.Margin,
			"off_page", grid.Overflows())
	}

	// Rasterize
	start := time.Now()
	images, err := r.rasterize(ctx, catalog, job, spec, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.RasterTime = time.Since(start)

	items := make([]image.Image, len(job.Items))
	for i, key := range job.Items {
		items[i] = images[key]
	}

	// Pack
	start = time.Now()
	pages := sheet.Pack(items, spec)
	res.Pages = len(pages)
	res.Stats.PackTime = time.Since(start)
	observability.Pipeline().OnPackComplete(ctx, len(items), len(pages), res.Stats.PackTime)

	// Compose
	start = time.Now()
	rendered, err := compose.Pages(ctx, spec.Page, pages, opts.Workers)
	if err != nil {
		return nil, err
	}
	res.Stats.ComposeTime = time.Since(start)

	// Write
	start = time.Now()
	switch opts.Output {
	case OutputPNG:
		files, err := sheetsink.WritePNGs(opts.Out, rendered)
		if err != nil {
			return nil, err
		}
		res.Files = files
	default:
		if err := sheetsink.WritePDFFile(opts.Out, rendered, spec.Page.DPI); err != nil {
			return nil, err
		}
		res.Files = []string{opts.Out}
	}
	res.Stats.WriteTime = time.Since(start)

	logger.Info("printed sheets",
		"cards", job.Len(),
		"pages", res.Pages,
		"output", opts.Output,
		"duration", res.Stats.RasterTime+res.Stats.PackTime+res.Stats.ComposeTime+res.Stats.WriteTime)
	return res, nil
}

// rasterize renders each distinct card of job once.
func (r *Runner) rasterize(ctx context.Context, catalog printjob.Catalog, job *printjob.Job, spec sheet.Spec, opts PrintOptions) (map[string]image.Image, error) {
	keys := job.Distinct()
	hooks := observability.Pipeline()

	var (
		mu     sync.Mutex
		images = make(map[string]image.Image, len(keys))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, key := range keys {
		g.Go(func() error {
			hooks.OnRasterStart(gctx, key)
			start := time.Now()
			img, err := r.rasterizeOne(gctx, catalog, key, spec)
			hooks.OnRasterComplete(gctx, key, time.Since(start), err)
			if err != nil {
				return err
			}

			mu.Lock()
			images[key] = img
			done := len(images)
			mu.Unlock()
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(keys))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *Runner) rasterizeOne(ctx context.Context, catalog printjob.Catalog, key string, spec sheet.Spec) (image.Image, error) {
	svg, err := catalog.SVG(ctx, key)
	if err != nil {
		return nil, err
	}
	img, err := r.Rasterizer.Rasterize(ctx, svg, spec.CardW, spec.CardH, spec.Page.DPI)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, errors.ErrCodeRasterization) {
			return nil, err
		}
		return nil, withCardID(err, key)
	}
	return img, nil
}

// withCardID names the card on a rasterization failure.
func withCardID(err error, key string) error {
	var re *errors.RasterError
	if stderrors.As(err, &re) {
		if re.CardID == "" {
			re.CardID = key
		}
		return err
	}
	return errors.Wrap(errors.ErrCodeRasterization, &errors.RasterError{CardID: key, Err: err}, "card %s", key)
}
