package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/config"
	"github.com/matzehuels/cardpress/pkg/pipeline"
	"github.com/matzehuels/cardpress/pkg/printjob"
	"github.com/matzehuels/cardpress/pkg/render/raster"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

// DefaultCardsDir is where print looks for rendered card SVGs.
const DefaultCardsDir = "cards"

// sheetFlags are the print flags that override the [print] config section.
type sheetFlags struct {
	dpi         int
	orientation string
	cols, rows  int
	margin      int
	gutter      int
	crop        bool
	cardW       int
	cardH       int
}

func (f *sheetFlags) register(fs *pflag.FlagSet) {
	d := config.Default().Print
	fs.IntVar(&f.dpi, "dpi", d.DPI, "output resolution")
	fs.StringVar(&f.orientation, "orientation", d.Orientation, "page format: a4portrait or a4landscape")
	fs.IntVar(&f.cols, "cols", d.Cols, "cards per row")
	fs.IntVar(&f.rows, "rows", d.Rows, "cards per column")
	fs.IntVar(&f.margin, "margin", d.Margin, "page margin in pixels (used for the fit check)")
	fs.IntVar(&f.gutter, "gutter", d.Gutter, "space between cards in pixels")
	fs.BoolVar(&f.crop, "crop", d.Crop, "draw crop marks around each card")
	fs.IntVar(&f.cardW, "card-width", d.CardWidth, "card width in pixels")
	fs.IntVar(&f.cardH, "card-height", d.CardHeight, "card height in pixels")
}

// apply overlays the flags the user set on base. Unset flags keep the
// configured value.
func (f *sheetFlags) apply(fs *pflag.FlagSet, base config.Print) config.Print {
	if fs.Changed("dpi") {
		base.DPI = f.dpi
	}
	if fs.Changed("orientation") {
		base.Orientation = f.orientation
	}
	if fs.Changed("cols") {
		base.Cols = f.cols
	}
	if fs.Changed("rows") {
		base.Rows = f.rows
	}
	if fs.Changed("margin") {
		base.Margin = f.margin
	}
	if fs.Changed("gutter") {
		base.Gutter = f.gutter
	}
	if fs.Changed("crop") {
		base.Crop = f.crop
	}
	if fs.Changed("card-width") {
		base.CardWidth = f.cardW
	}
	if fs.Changed("card-height") {
		base.CardHeight = f.cardH
	}
	return base
}

// printOpts holds the flags of the print command.
type printOpts struct {
	sheet    sheetFlags
	cards    string
	add      []string
	out      string
	fromDefs string
	artRoot  string
	backend  string
	timeout  time.Duration
	noCache  bool
	workers  int
}

// printCommand creates the print command for packing cards onto sheets.
func (c *CLI) printCommand() *cobra.Command {
	opts := printOpts{}

	cmd := &cobra.Command{
		Use:   "print [Name=count...]",
		Short: "Pack rendered cards onto printable A4 sheets",
		Long: `Print rasterizes the requested cards and tiles them onto A4 pages, row by
row, centered on the page. Requests are Name=count pairs given as arguments
or with --add; names match card file stems case-insensitively.

The output is a multi-page PDF, or one PNG per page when --out ends in .png.
Every requested card is checked before anything is rasterized.`,
		Example: `  cardpress print --add "Goblin Scout=3" --add "Cursed Scroll=2"
  cardpress print "Ember Drake=9" --crop --out sheet.png
  cardpress print --from-defs card-db "Ember Drake=4" --orientation a4landscape --cols 4 --rows 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(cmd.Context(), cmd.Flags(), opts, args)
		},
	}

	opts.sheet.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.cards, "cards", DefaultCardsDir, "directory of rendered card SVGs")
	cmd.Flags().StringArrayVar(&opts.add, "add", nil, "add a card request Name=count (repeatable)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", pipeline.DefaultPrintOut, "output file (.pdf, or .png for one file per page)")
	cmd.Flags().StringVar(&opts.fromDefs, "from-defs", "", "render cards straight from this definition file or directory")
	cmd.Flags().StringVar(&opts.artRoot, "art-root", "", "directory art paths are relative to (with --from-defs)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", fmt.Sprintf("rasterizer backend %v (default from config)", raster.Backends()))
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-card rasterizer timeout (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the raster cache")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel rasterizer runs (default from config, 0 = one per CPU)")

	return cmd
}

func (c *CLI) runPrint(ctx context.Context, fs *pflag.FlagSet, opts printOpts, args []string) error {
	reqs, err := printjob.ParseRequests(append(append([]string{}, args...), opts.add...))
	if err != nil {
		return err
	}

	spec, err := opts.sheet.apply(fs, c.config().Print).Spec()
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, runnerOpts{
		raster:  true,
		backend: opts.backend,
		timeout: opts.timeout,
		noCache: opts.noCache,
		artRoot: opts.artRoot,
	})
	if err != nil {
		return err
	}
	defer closeRunner()

	catalog, err := c.newCatalog(ctx, runner, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rasterizing cards...")
	spinner.Start()
	res, err := runner.Print(ctx, catalog, reqs, pipeline.PrintOptions{
		Sheet:   spec,
		Out:     opts.out,
		Workers: c.workers(opts.workers),
		Logger:  c.Logger,
		OnProgress: func(done, total int) {
			spinner.SetMessage(fmt.Sprintf("Rasterizing cards %d/%d...", done, total))
		},
	})
	if err != nil {
		spinner.StopWithError("Print failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Wrote %s for %s", pluralize(res.Pages, "page"), pluralize(res.Job.Len(), "card")))

	for _, f := range res.Files {
		printFile(f)
	}
	printStats(len(res.Job.Distinct()), "distinct", res.Pages, "pages")
	if res.Overflow {
		printWarning("The card grid extends past the page margin; check --cols, --rows and --gutter")
	}
	c.Logger.Debug("print timings",
		"raster", res.Stats.RasterTime,
		"pack", res.Stats.PackTime,
		"compose", res.Stats.ComposeTime,
		"write", res.Stats.WriteTime)
	if c.hooks != nil {
		hits, misses := c.hooks.CacheStats()
		c.Logger.Debug("raster cache", "hits", hits, "misses", misses)
	}
	return nil
}

// newCatalog returns the SVG directory catalog, or a catalog rendering
// cards from definitions when --from-defs is set.
func (c *CLI) newCatalog(ctx context.Context, runner *pipeline.Runner, opts printOpts) (printjob.Catalog, error) {
	if opts.fromDefs == "" {
		dir, err := printjob.NewSVGDir(opts.cards)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("card catalog", "dir", dir, "cards", len(dir.Keys()))
		return dir, nil
	}
	cards, err := c.loadCards(ctx, sourceFlags{input: opts.fromDefs})
	if err != nil {
		return nil, err
	}
	return printjob.NewDefs(cards, func(cd card.Card) ([]byte, error) {
		return runner.RenderSVG(ctx, cd)
	}), nil
}

// sheetSpec resolves the effective sheet for a flag set, used by inspect.
func (c *CLI) sheetSpec(fs *pflag.FlagSet, f *sheetFlags) (sheet.Spec, error) {
	return f.apply(fs, c.config().Print).Spec()
}
