// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package neuroglancer

import (
	"fmt"
	"strconv"
	"strings"
)

// Shader returns a GLSL shader that tints a single-channel image with color
// (a "#rrggbb" hex string). contrast scales the normalized data value and
// intensity scales the final color; a brightness slider (0-100, default 50)
// is exposed in the viewer.
func Shader(color string, contrast, intensity float64) (string, error) {
	r, g, b, err := parseHex(color)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`#uicontrol float brightness slider(min=0.0, max=100.0, default=50.0)
void main() {
  float intensity = toNormalized(getDataValue()) * %s;
  float brightness_adjusted = intensity * (brightness / 50.0);
  vec3 result = vec3(%s, %s, %s) * brightness_adjusted * %s;
  emitRGB(result);
}
`, glslFloat(contrast), glslFloat(r), glslFloat(g), glslFloat(b), glslFloat(intensity)), nil
}

// parseHex converts "#rrggbb" to channel values in [0, 1].
func parseHex(color string) (r, g, b float64, err error) {
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: want #rrggbb", color)
	}
	var ch [3]float64
	for i := range ch {
		v, perr := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("invalid color %q: %w", color, perr)
		}
		ch[i] = float64(v) / 255.0
	}
	return ch[0], ch[1], ch[2], nil
}

// glslFloat formats v as a GLSL float literal; integral values keep a ".0"
// suffix because GLSL does not promote int literals in float expressions.
func glslFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
