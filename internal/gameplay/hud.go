package gameplay

import (
	"math"

	"clipforge/internal/media"
)

// hudRegion is a screen area, in normalized coordinates, where a HUD element
// is expected to live for standard layouts.
type hudRegion struct {
	name                     string
	left, top, right, bottom float64
}

// The three regions cover the common MOBA/shooter layout: minimap bottom
// right, ability bar bottom center, health cluster bottom left.
var hudRegions = []hudRegion{
	{name: "minimap", left: 0.75, top: 0.75, right: 1.0, bottom: 1.0},
	{name: "abilities", left: 0.35, top: 0.85, right: 0.65, bottom: 1.0},
	{name: "health", left: 0.0, top: 0.85, right: 0.35, bottom: 1.0},
}

// colorRange is a hue band with saturation and value floors. Hue uses the
// half-degree scale (0..179) so the bands match common reference values.
type colorRange struct {
	hueMin, hueMax float64
	satMin, valMin float64
}

// uiColorRanges covers the saturated palette HUD chrome is drawn with:
// team blue, team red, gold accents, and health-bar green.
var uiColorRanges = []colorRange{
	{hueMin: 100, hueMax: 130, satMin: 0.35, valMin: 0.25},
	{hueMin: 0, hueMax: 10, satMin: 0.35, valMin: 0.25},
	{hueMin: 20, hueMax: 30, satMin: 0.40, valMin: 0.30},
	{hueMin: 40, hueMax: 80, satMin: 0.35, valMin: 0.25},
}

// rgbToHSV converts 8-bit RGB to hue in [0, 180), saturation and value in
// [0, 1].
func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	v = maxC
	if maxC > 0 {
		s = delta / maxC
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxC {
	case rf:
		h = math.Mod((gf-bf)/delta, 6)
	case gf:
		h = (bf-rf)/delta + 2
	default:
		h = (rf-gf)/delta + 4
	}
	h *= 30 // 60 degrees per sector on the half-degree scale
	if h < 0 {
		h += 180
	}
	return h, s, v
}

func (cr colorRange) contains(h, s, v float64) bool {
	return h >= cr.hueMin && h <= cr.hueMax && s >= cr.satMin && v >= cr.valMin
}

// regionUIFraction returns the fraction of the region's pixels that look
// like HUD chrome.
func regionUIFraction(frame media.Frame, region hudRegion) float64 {
	crop := frame.Crop(region.left, region.top, region.right, region.bottom)
	if crop.Width == 0 || crop.Height == 0 {
		return 0
	}
	matched := 0
	for y := 0; y < crop.Height; y++ {
		for x := 0; x < crop.Width; x++ {
			r, g, b := crop.RGBAt(x, y)
			h, s, v := rgbToHSV(r, g, b)
			for _, cr := range uiColorRanges {
				if cr.contains(h, s, v) {
					matched++
					break
				}
			}
		}
	}
	return float64(matched) / float64(crop.Width*crop.Height)
}
