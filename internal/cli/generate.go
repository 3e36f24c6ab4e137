package cli

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/card/source"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/pipeline"
)

// DefaultInput is where generate looks for card definitions.
const DefaultInput = "card-db"

// mongoFromConfig is the value of a bare --mongo flag.
const mongoFromConfig = "config"

// sourceFlags select where card definitions come from.
type sourceFlags struct {
	input    string
	mongoURI string
	database string
	set      string
}

func (f *sourceFlags) register(cmd *cobra.Command, inputUsage string) {
	cmd.Flags().StringVarP(&f.input, "input", "i", DefaultInput, inputUsage)
	cmd.Flags().StringVar(&f.mongoURI, "mongo", "", "read cards from this MongoDB URI instead of files (bare --mongo uses mongo.uri from the config)")
	cmd.Flags().Lookup("mongo").NoOptDefVal = mongoFromConfig
	cmd.Flags().StringVar(&f.database, "database", "", "MongoDB database (default from config)")
	cmd.Flags().StringVar(&f.set, "set", "", "only cards with this set code (MongoDB only)")
}

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	src      sourceFlags
	output   string
	formats  []string
	theme    string
	artRoot  string
	comments bool
	workers  int
}

// generateCommand creates the generate command for laying out card definitions.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render card definitions to SVG",
		Long: `Generate lays out every card in a definition file (or a directory of
.json/.yaml files) and writes one <name>.svg per card.

Files that fail to decode are reported and skipped. Missing art is replaced by
a placeholder and reported as a warning.`,
		Example: `  cardpress generate
  cardpress generate -i card-db/core.yaml -o out_cards --format svg,json
  cardpress generate --mongo mongodb://localhost:27017 --database tcg --set CORE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	opts.src.register(cmd, "card definition file or directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", pipeline.DefaultOutDir, "output directory")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{pipeline.FormatSVG}, "output formats: svg, json")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "force a named theme for every card")
	cmd.Flags().StringVar(&opts.artRoot, "art-root", "", "directory art paths are relative to (default: working directory)")
	cmd.Flags().BoolVar(&opts.comments, "comments", false, "annotate SVG regions with comments")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel layouts (default from config, 0 = one per CPU)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	cards, err := c.loadCards(ctx, opts.src)
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, runnerOpts{artRoot: opts.artRoot})
	if err != nil {
		return err
	}
	defer closeRunner()

	res, err := runner.Generate(ctx, cards, pipeline.GenerateOptions{
		OutDir:   opts.output,
		Formats:  opts.formats,
		Theme:    opts.theme,
		Comments: opts.comments,
		Workers:  c.workers(opts.workers),
		Logger:   c.Logger,
	})
	if res == nil {
		return err
	}

	if res.Cards > 0 {
		printSuccess("Generated %d cards in %s", res.Cards, opts.output)
		for _, f := range res.Files {
			printFile(f)
		}
	}
	printStats(res.Cards, "cards", res.Warnings, "warnings", len(res.Failed), "failed")
	for _, f := range res.Failed {
		printWarning("%s: %s", f.Card, errors.UserMessage(f.Err))
	}
	if err == nil && res.Cards > 0 {
		printNextStep("Print them", "cardpress print --cards "+opts.output+" --add 'Name=3'")
	}
	return err
}

// loadCards reads definitions from MongoDB when --mongo is given and from
// files otherwise.
func (c *CLI) loadCards(ctx context.Context, f sourceFlags) ([]card.Card, error) {
	prog := newProgress(c.Logger)
	cfg := c.config().Mongo

	uri := f.mongoURI
	if uri == mongoFromConfig {
		if cfg.URI == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--mongo without a URI needs mongo.uri in the config")
		}
		uri = cfg.URI
	}

	var (
		cards []card.Card
		err   error
		from  string
	)
	if uri != "" {
		database := f.database
		if database == "" {
			database = cfg.Database
		}
		var m *source.Mongo
		m, err = source.OpenMongo(ctx, uri, source.MongoOptions{
			Database:   database,
			Collection: cfg.Collection,
			Set:        f.set,
		})
		if err != nil {
			return nil, err
		}
		defer m.Close(context.Background())
		cards, err = m.Load(ctx)
		from = database + "." + cfg.Collection
	} else {
		cards, err = source.Dir{Path: f.input, Logger: c.Logger}.Load(ctx)
		from = filepath.Clean(f.input)
	}
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no card definitions found in %s", from)
	}

	prog.done("Loaded " + pluralize(len(cards), "card") + " from " + from)
	return cards, nil
}

// workers returns the flag value, or the configured raster.workers.
func (c *CLI) workers(flag int) int {
	if flag > 0 {
		return flag
	}
	return c.config().Raster.Workers
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
