// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package neuroglancer

import (
	"fmt"

	"github.com/dandiviz/dandidash/internal/asset"
	"github.com/dandiviz/dandidash/internal/frame"
	"github.com/dandiviz/dandidash/internal/palette"
)

// OverlapStain is the stain label of the row that links all stains of a
// (subject, sample) pair together.
const OverlapStain = "OVERLAP"

// Row is one stain image of a sample. Before Links it carries the Zarr
// location in URL; after Links URL is the viewer link.
type Row struct {
	Sub      string `json:"sub"`
	Sample   string `json:"sample"`
	Stain    string `json:"stain"`
	Modality string `json:"modality"`
	URL      string `json:"url"`
}

// Get implements frame.Getter.
func (r Row) Get(col string) (string, bool) {
	switch col {
	case asset.ColSub:
		return r.Sub, true
	case asset.ColSample:
		return r.Sample, true
	case asset.ColStain:
		return r.Stain, true
	case asset.ColModality:
		return r.Modality, true
	case "url":
		return r.URL, r.URL != ""
	}
	return "", false
}

// LayerName is the viewer layer label for a row.
func (r Row) LayerName() string {
	return fmt.Sprintf("%s-%s-%s-%s", r.Sub, r.Sample, r.Stain, r.Modality)
}

// Links replaces each row's Zarr location with a single-layer viewer link and
// appends, after the rows of every (subject, sample) group, an OVERLAP row
// whose link shows all of the group's stains tinted with distinct colors.
// Groups are emitted in (subject, sample) order.
func Links(rows []Row, opts Options) ([]Row, error) {
	opts = opts.WithDefaults()

	var out []Row
	for _, g := range frame.GroupBy(rows, asset.ColSub, asset.ColSample) {
		for _, r := range g.Rows {
			u, err := BuildURL([]Layer{singleLayer(r, opts)}, opts)
			if err != nil {
				return nil, err
			}
			linked := r
			linked.URL = u
			out = append(out, linked)
		}

		colors := palette.RGBPriority(len(g.Rows))
		layers := make([]Layer, len(g.Rows))
		for i, r := range g.Rows {
			shader, err := Shader(colors[i], opts.Contrast, opts.Intensity)
			if err != nil {
				return nil, err
			}
			layers[i] = Layer{
				Type:   "image",
				Source: "zarr://" + r.URL,
				Tab:    "rendering",
				Shader: shader,
				Name:   r.LayerName(),
			}
		}
		u, err := BuildURL(layers, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, Row{
			Sub:      g.Keys[0],
			Sample:   g.Keys[1],
			Stain:    OverlapStain,
			Modality: g.Rows[0].Modality,
			URL:      u,
		})
	}
	return out, nil
}

func singleLayer(r Row, opts Options) Layer {
	return Layer{
		Type:           "image",
		Source:         "zarr://" + r.URL,
		Tab:            "rendering",
		ShaderControls: &ShaderControls{Normalized: NormalizedControl{Range: opts.NormalizedRange}},
		Name:           r.LayerName(),
	}
}
