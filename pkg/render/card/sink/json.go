package sink

import (
	"encoding/json"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/render/card/layout"
)

type jsonOutput struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Regions  []jsonRegion `json:"regions"`
	Warnings []jsonIssue  `json:"warnings,omitempty"`
}

type jsonRegion struct {
	Name   string     `json:"name"`
	X      int        `json:"x"`
	Y      int        `json:"y"`
	W      int        `json:"w"`
	H      int        `json:"h"`
	Shapes int        `json:"shapes"`
	Image  bool       `json:"image,omitempty"`
	Texts  []jsonText `json:"texts,omitempty"`
}

type jsonText struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Size  int      `json:"size"`
	Lines []string `json:"lines"`
}

type jsonIssue struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// RenderJSON lists the document's regions with their rectangles and text.
// Image data is not included.
func RenderJSON(doc layout.Document) ([]byte, error) {
	out := jsonOutput{Width: doc.Width, Height: doc.Height, Regions: make([]jsonRegion, 0, len(doc.Regions))}
	for _, r := range doc.Regions {
		jr := jsonRegion{
			Name: r.Name,
			X:    r.Rect.X, Y: r.Rect.Y, W: r.Rect.W, H: r.Rect.H,
			Shapes: len(r.Shapes),
			Image:  r.Image != nil,
		}
		for _, t := range r.Texts {
			if len(t.Lines) == 0 {
				continue
			}
			jr.Texts = append(jr.Texts, jsonText{X: t.X, Y: t.Y, Size: t.Size, Lines: t.Lines})
		}
		out.Regions = append(out.Regions, jr)
	}
	for _, w := range doc.Warnings {
		out.Warnings = append(out.Warnings, jsonIssue{Code: string(errors.GetCode(w)), Message: errors.UserMessage(w)})
	}
	return json.MarshalIndent(out, "", "  ")
}
