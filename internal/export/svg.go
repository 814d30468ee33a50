// Package export renders phase snapshots to standalone SVG scenes. Like the
// live terminal view it is a render sink; the engine hands it copies and
// nothing more.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/glowsim/internal/config"
	"github.com/san-kum/glowsim/internal/engine"
)

const (
	backgroundColor = "#0a0a1a"
	groundColor     = "#00ffff"
	trailColor      = "#ff69b4"
	particleColor   = "#00ffff"
	fallbackColor   = "#00ffff"

	glowLayers  = 4
	glowSpacing = 12.0
	glowPulse   = 5.0
)

// SnapshotSVG draws one snapshot in arena coordinates: arena lines, trail,
// particles, then each body with its pulsing glow halo and a highlight.
func SnapshotSVG(cfg *config.PhaseConfig, snap engine.Snapshot) string {
	a := cfg.Arena
	top := 0.0
	if a.YCeiling != nil {
		top = *a.YCeiling
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.0f %.0f %.0f %.0f">
`, a.XMax-a.XMin, a.YGround-top, a.XMin, top, a.XMax-a.XMin, a.YGround-top))
	sb.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="100%%" height="100%%" fill="%s"/>
`, a.XMin, top, backgroundColor))

	line := func(x1, y1, x2, y2 float64) {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"/>
`, x1, y1, x2, y2, groundColor))
	}
	line(a.XMin, a.YGround, a.XMax, a.YGround)
	if a.YCeiling != nil {
		line(a.XMin, *a.YCeiling, a.XMax, *a.YCeiling)
		line(a.XMin, *a.YCeiling, a.XMin, a.YGround)
		line(a.XMax, *a.YCeiling, a.XMax, a.YGround)
	}

	for _, t := range snap.Trail {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="8" fill="%s" fill-opacity="0.35"/>
`, t.X, t.Y, trailColor))
	}

	for _, p := range snap.Particles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X, p.Y, p.Radius, particleColor))
	}

	for _, b := range snap.Bodies {
		color := b.Color
		if color == "" {
			color = fallbackColor
		}
		// Glow halo: concentric outlines that breathe with the frame pulse.
		for j := 1; j <= glowLayers; j++ {
			r := b.Radius + float64(j)*glowSpacing + snap.Glow*glowPulse
			opacity := 0.3 - 0.06*float64(j)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="2"/>
`, b.X, b.Y, r, color, opacity))
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#ffffff" stroke-width="2"/>
`, b.X, b.Y, b.Radius, color))
		// Highlight, offset up-left like a light source.
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="#ffffff" fill-opacity="0.45"/>
`, b.X-b.Radius*0.25, b.Y-b.Radius*0.35, b.Radius*0.3, b.Radius*0.2))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
