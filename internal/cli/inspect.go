package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/pipeline"
	"github.com/matzehuels/cardpress/pkg/render/card/layout"
	"github.com/matzehuels/cardpress/pkg/render/card/sink"
)

// inspectCommand creates the inspect command for debugging layouts.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show computed card regions or sheet cells",
	}
	cmd.AddCommand(c.inspectCardCommand())
	cmd.AddCommand(c.inspectSheetCommand())
	return cmd
}

func (c *CLI) inspectCardCommand() *cobra.Command {
	var (
		src     sourceFlags
		theme   string
		artRoot string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "card NAME",
		Short: "List the regions of one card's layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cards, err := c.loadCards(ctx, src)
			if err != nil {
				return err
			}
			cd, ok := findCard(cards, args[0])
			if !ok {
				return errors.New(errors.ErrCodeCardNotFound, "card %q not found in %s", args[0], src.input)
			}
			return c.runInspectCard(ctx, cd, theme, artRoot, asJSON)
		},
	}
	src.register(cmd, "card definition file or directory")
	cmd.Flags().StringVar(&theme, "theme", "", "force a named theme")
	cmd.Flags().StringVar(&artRoot, "art-root", "", "directory art paths are relative to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the region listing as JSON")
	return cmd
}

func (c *CLI) runInspectCard(ctx context.Context, cd card.Card, theme, artRoot string, asJSON bool) error {
	runner, closeRunner, err := c.newRunner(ctx, runnerOpts{artRoot: artRoot})
	if err != nil {
		return err
	}
	defer closeRunner()

	doc, err := runner.Layout(ctx, cd, theme)
	if err != nil {
		return err
	}
	if asJSON {
		data, err := sink.RenderJSON(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	fmt.Fprintln(stdout, StyleTitle.Render(cd.WithDefaults().Name)+" "+StyleDim.Render(fmt.Sprintf("%d×%d", doc.Width, doc.Height)))
	printTable([]string{"Region", "X", "Y", "W", "H", "Content"}, regionRows(doc))
	for _, w := range doc.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}
	return nil
}

// regionRows lists one table row per region.
func regionRows(doc layout.Document) [][]string {
	rows := make([][]string, 0, len(doc.Regions))
	for _, r := range doc.Regions {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.Rect.X), strconv.Itoa(r.Rect.Y),
			strconv.Itoa(r.Rect.W), strconv.Itoa(r.Rect.H),
			regionContent(r),
		})
	}
	return rows
}

func regionContent(r layout.Region) string {
	if r.Image != nil {
		if strings.HasPrefix(r.Image.Href, "data:") {
			return "art (embedded)"
		}
		return "art " + r.Image.Href
	}
	var lines []string
	for _, t := range r.Texts {
		lines = append(lines, t.Lines...)
	}
	if len(lines) == 0 {
		return ""
	}
	s := lines[0]
	if len(lines) > 1 {
		s += fmt.Sprintf(" (+%d lines)", len(lines)-1)
	}
	const maxWidth = 48
	if runes := []rune(s); len(runes) > maxWidth {
		s = string(runes[:maxWidth-1]) + "…"
	}
	return s
}

// findCard matches name against card names and slugs, ignoring case.
func findCard(cards []card.Card, name string) (card.Card, bool) {
	want := strings.ToLower(card.Slug(name))
	var found card.Card
	ok := false
	for _, cd := range cards {
		if cd.WithDefaults().ID() == want {
			found, ok = cd, true
		}
	}
	return found, ok
}

func (c *CLI) inspectSheetCommand() *cobra.Command {
	var (
		flags sheetFlags
		count int
	)
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Show the page grid and how many cards land on each page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspectSheet(cmd.Flags(), &flags, count)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of cards to pack")
	return cmd
}

func (c *CLI) runInspectSheet(fs *pflag.FlagSet, flags *sheetFlags, count int) error {
	spec, err := c.sheetSpec(fs, flags)
	if err != nil {
		return err
	}
	plan, err := pipeline.PlanSheet(spec, count)
	if err != nil {
		return err
	}

	printKeyValue("Page", fmt.Sprintf("%s %d×%d px @ %d dpi", plan.Page.Format, plan.Page.Width, plan.Page.Height, plan.Page.DPI))
	printKeyValue("Grid", fmt.Sprintf("%d×%d, %d per page", spec.Cols, spec.Rows, plan.PerPage))
	printKeyValue("Origin", fmt.Sprintf("(%d, %d)", plan.Origin.X, plan.Origin.Y))
	if count > 0 {
		counts := make([]string, len(plan.Pages))
		for i, n := range plan.Pages {
			counts[i] = strconv.Itoa(n)
		}
		printKeyValue("Pages", fmt.Sprintf("%d [%s]", len(plan.Pages), strings.Join(counts, " ")))
	}

	rows := make([][]string, 0, len(plan.Cells))
	for _, cell := range plan.Cells {
		rows = append(rows, []string{
			strconv.Itoa(cell.Index),
			strconv.Itoa(cell.Row), strconv.Itoa(cell.Col),
			strconv.Itoa(cell.X), strconv.Itoa(cell.Y),
			strconv.Itoa(cell.W), strconv.Itoa(cell.H),
		})
	}
	printTable([]string{"#", "Row", "Col", "X", "Y", "W", "H"}, rows)

	switch {
	case plan.Overflows:
		printWarning("Cards extend beyond the page")
	case !plan.Fits:
		printWarning("Cards extend into the %d px margin", spec.Margin)
	}
	return nil
}
