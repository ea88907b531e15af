// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package plot

import "math"

const (
	// labelAngle is the x label rotation in radians.
	labelAngle = 1.2
	// cellFill is the share of a band a cell covers on each axis.
	cellFill = 0.9

	titleHeight  = 36.0
	charWidth    = 7.0
	labelPadding = 12.0
	edgePadding  = 16.0
)

type rect struct {
	X, Y, W, H float64
	Fill       string
	Cell       Cell
}

type label struct {
	X, Y float64
	Text string
}

type layout struct {
	Width, Height  int
	PlotX, PlotY   float64
	PlotW, PlotH   float64
	Rects          []rect
	XLabels        []label
	YLabels        []label
	XLabelRotation float64
}

func longest(ss []string) int {
	n := 0
	for _, s := range ss {
		if l := len([]rune(s)); l > n {
			n = l
		}
	}
	return n
}

// computeLayout places every cell and axis label on the canvas.
func (g *Grid) computeLayout() layout {
	w, h := float64(g.Width), float64(g.Height)

	left := edgePadding + labelPadding + float64(longest(g.YFactors))*charWidth
	bottom := edgePadding + labelPadding + float64(longest(g.XFactors))*charWidth*math.Sin(labelAngle)
	left = math.Min(left, w/3)
	bottom = math.Min(bottom, h/2)

	l := layout{
		Width:          g.Width,
		Height:         g.Height,
		PlotX:          left,
		PlotY:          titleHeight,
		PlotW:          math.Max(w-left-edgePadding, 1),
		PlotH:          math.Max(h-titleHeight-bottom, 1),
		XLabelRotation: -labelAngle * 180 / math.Pi,
	}
	if len(g.XFactors) == 0 || len(g.YFactors) == 0 {
		return l
	}

	bandX := l.PlotW / float64(len(g.XFactors))
	bandY := l.PlotH / float64(len(g.YFactors))

	xi := make(map[string]int, len(g.XFactors))
	for i, f := range g.XFactors {
		xi[f] = i
		l.XLabels = append(l.XLabels, label{
			X:    l.PlotX + (float64(i)+0.5)*bandX,
			Y:    l.PlotY + l.PlotH + labelPadding,
			Text: f,
		})
	}
	yi := make(map[string]int, len(g.YFactors))
	for i, f := range g.YFactors {
		yi[f] = i
		l.YLabels = append(l.YLabels, label{
			X:    l.PlotX - labelPadding/2,
			Y:    l.PlotY + l.PlotH - (float64(i)+0.5)*bandY,
			Text: f,
		})
	}

	inset := (1 - cellFill) / 2
	for _, c := range g.Cells {
		x := l.PlotX + (float64(xi[c.X])+inset)*bandX
		y := l.PlotY + l.PlotH - (float64(yi[c.Y])+1-inset)*bandY
		l.Rects = append(l.Rects, rect{
			X:    x,
			Y:    y,
			W:    bandX * cellFill,
			H:    bandY * cellFill,
			Fill: g.Colors[c.Y],
			Cell: c,
		})
	}
	return l
}
