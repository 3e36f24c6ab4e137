// Package pipeline runs the two cardpress workflows.
//
// Generate lays out card definitions and writes one SVG per card. Print
// resolves card requests against a catalog, rasterizes each distinct card,
// packs the images onto pages, and writes a PDF or PNG pages. The CLI and
// the HTTP service share this package so both apply the same defaults.
//
// # Usage
//
//	runner := pipeline.NewRunner(rasterizer, theme.NewRegistry(), logger)
//	gen, err := runner.Generate(ctx, cards, pipeline.GenerateOptions{OutDir: "out_cards"})
//
//	reqs, _ := printjob.ParseRequests([]string{"Ember_Drake=3"})
//	res, err := runner.Print(ctx, catalog, reqs, pipeline.PrintOptions{Out: "cards_print.pdf"})
//
// Validation errors (EMPTY_INPUT, CARD_NOT_FOUND, bad options) are reported
// before any rasterizer runs and before any output file is created.
package pipeline

import (
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/printjob"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultOutDir is where generate writes SVGs.
	DefaultOutDir = "out_cards"

	// DefaultPrintOut is the print output path.
	DefaultPrintOut = "cards_print.pdf"
)

// Format constants for generate outputs.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Output constants for print outputs.
const (
	OutputPDF = "pdf"
	OutputPNG = "png"
)

// ValidFormats is the set of per-card outputs generate can write.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidOutputs is the set of sheet outputs print can write.
var ValidOutputs = map[string]bool{
	OutputPDF: true,
	OutputPNG: true,
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a generate format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutput checks that a print output kind is valid.
func ValidateOutput(output string) error {
	if !ValidOutputs[output] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid output: %q (must be one of: pdf, png)", output)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// GenerateOptions configures Runner.Generate.
type GenerateOptions struct {
	OutDir   string   `json:"out_dir,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Theme    string   `json:"theme,omitempty"` // Forces a named base theme for every card
	Comments bool     `json:"comments,omitempty"`
	Workers  int      `json:"workers,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *GenerateOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Workers = defaultWorkers(o.Workers)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PrintOptions configures Runner.Print.
type PrintOptions struct {
	Sheet   sheet.Spec `json:"sheet"`
	Out     string     `json:"out,omitempty"`
	Output  string     `json:"output,omitempty"` // pdf or png; inferred from Out when empty
	Workers int        `json:"workers,omitempty"`

	// OnProgress, when set, is called after each distinct card is rasterized.
	OnProgress func(done, total int) `json:"-"`
	Logger     *log.Logger           `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. A zero
// Sheet becomes sheet.DefaultSpec().
func (o *PrintOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Sheet == (sheet.Spec{}) {
		o.Sheet = sheet.DefaultSpec()
	}
	if err := o.Sheet.Validate(); err != nil {
		return err
	}
	if o.Out == "" {
		o.Out = DefaultPrintOut
	}
	if o.Output == "" {
		o.Output = OutputPDF
		if strings.EqualFold(filepath.Ext(o.Out), ".png") {
			o.Output = OutputPNG
		}
	}
	if err := ValidateOutput(o.Output); err != nil {
		return err
	}
	o.Workers = defaultWorkers(o.Workers)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func defaultWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// =============================================================================
// Results
// =============================================================================

// CardFailure records a card that could not be laid out.
type CardFailure struct {
	Card string
	Err  error
}

// GenerateResult describes a generate run.
type GenerateResult struct {
	Files    []string // Written paths, in card order
	Cards    int      // Cards laid out successfully
	Warnings int      // Soft problems such as missing art
	Failed   []CardFailure
	Duration time.Duration
}

// PrintResult describes a print run.
type PrintResult struct {
	Job   *printjob.Job
	Page  sheet.PageSpec
	Pages int
	Files []string

	// Overflow is set when the grid does not fit inside the page margins.
	Overflow bool

	Stats Stats
}

// Stats contains print timing information.
type Stats struct {
	RasterTime  time.Duration
	PackTime    time.Duration
	ComposeTime time.Duration
	WriteTime   time.Duration
}
