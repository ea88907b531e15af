// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package palette holds the categorical color palettes used by the plots and
// the Neuroglancer overlap shaders.
package palette

// Category10 is the ten-color categorical palette (d3 "category10").
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Category20 is the twenty-color categorical palette (d3 "category20").
var Category20 = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// RGB is the pure red, green, blue triple used first for overlap layers so
// the first three stains of a sample are easy to tell apart.
var RGB = []string{"#FF0000", "#00FF00", "#0000FF"}

// ForFactors returns n colors for n categorical factors: the Category20
// prefix, repeating the sequence when n exceeds 20.
func ForFactors(n int) []string {
	return cycle(Category20, n)
}

// RGBPriority returns n colors starting with red, green and blue, followed by
// Category20 colors in order.
func RGBPriority(n int) []string {
	if n <= 0 {
		return nil
	}
	if n <= len(RGB) {
		return append([]string(nil), RGB[:n]...)
	}
	out := append([]string(nil), RGB...)
	return append(out, cycle(Category20, n-len(RGB))...)
}

func cycle(src []string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = src[i%len(src)]
	}
	return out
}
