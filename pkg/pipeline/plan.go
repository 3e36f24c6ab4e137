package pipeline

import (
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/geom"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

// MaxPlanCards bounds the card count of a plan.
const MaxPlanCards = 10000

// SheetPlan describes how a number of cards would be packed, without
// rasterizing anything.
type SheetPlan struct {
	Page      sheet.PageSpec `json:"page"`
	PerPage   int            `json:"per_page"`
	Origin    geom.Point     `json:"origin"` // Top-left of the card block
	Cells     []sheet.Cell   `json:"cells"`
	Pages     []int          `json:"pages"` // Cards on each page
	Fits      bool           `json:"fits"`
	Overflows bool           `json:"overflows"`
}

// PlanSheet computes the grid for spec and the per-page card counts for n
// cards. A zero spec uses sheet.DefaultSpec().
func PlanSheet(spec sheet.Spec, n int) (SheetPlan, error) {
	if spec == (sheet.Spec{}) {
		spec = sheet.DefaultSpec()
	}
	if err := spec.Validate(); err != nil {
		return SheetPlan{}, err
	}
	if n < 0 || n > MaxPlanCards {
		return SheetPlan{}, errors.New(errors.ErrCodeInvalidInput, "card count must be between 0 and %d, got %d", MaxPlanCards, n)
	}

	grid := sheet.NewGrid(spec)
	plan := SheetPlan{
		Page:      spec.Page,
		PerPage:   spec.PerPage(),
		Origin:    grid.Origin(),
		Cells:     grid.Cells,
		Pages:     []int{},
		Fits:      grid.Fits(),
		Overflows: grid.Overflows(),
	}
	for _, p := range sheet.Pack(make([]struct{}, n), spec) {
		plan.Pages = append(plan.Pages, len(p.Placements))
	}
	return plan, nil
}
