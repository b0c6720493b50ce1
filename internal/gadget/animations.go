package gadget

import "github.com/distrubuted-game-mechanic/hello-buttons/internal/models"

// Colors used by the catalog (RRGGBB)
const (
	ColorBlack   = "000000"
	ColorRed     = "FF0000"
	ColorYellow  = "FFFF00"
	ColorGreen   = "00FF00"
	ColorCyan    = "00FFFF"
	ColorBlue    = "0000FF"
	ColorMagenta = "FF00FF"
)

// defaultLights addresses the single light on an Echo Button
var defaultLights = []string{"1"}

// IntroAnimation is the rainbow sequence played on launch and on first discovery.
var IntroAnimation = models.LightAnimation{
	Repeat:       15,
	TargetLights: defaultLights,
	Sequence: []models.AnimationStep{
		{DurationMs: 200, Color: ColorBlack, Blend: true},
		{DurationMs: 300, Color: ColorRed, Blend: true},
		{DurationMs: 300, Color: ColorYellow, Blend: true},
		{DurationMs: 300, Color: ColorGreen, Blend: true},
		{DurationMs: 300, Color: ColorCyan, Blend: true},
		{DurationMs: 300, Color: ColorBlue, Blend: true},
		{DurationMs: 300, Color: ColorMagenta, Blend: true},
	},
}

// ButtonDownFlash plays while a button is held.
var ButtonDownFlash = models.LightAnimation{
	Repeat:       1,
	TargetLights: defaultLights,
	Sequence:     []models.AnimationStep{{DurationMs: 300, Color: ColorYellow, Blend: false}},
}

// ButtonUpFlash plays when a button is released.
var ButtonUpFlash = models.LightAnimation{
	Repeat:       1,
	TargetLights: defaultLights,
	Sequence:     []models.AnimationStep{{DurationMs: 300, Color: ColorCyan, Blend: false}},
}

// AnimationCycle is the ordered set of idle animations a button steps through
// on each release.
var AnimationCycle = [...]models.LightAnimation{
	BreatheAnimation(30, ColorRed, 1000),
	BreatheAnimation(30, ColorGreen, 1000),
	BreatheAnimation(30, ColorBlue, 1000),
}

// CycleLength is the number of entries in AnimationCycle
const CycleLength = len(AnimationCycle)

// BreatheAnimation builds a pulse that fades in to color, holds, and fades out.
func BreatheAnimation(cycles int, color string, peakDurationMs int) models.LightAnimation {
	return models.LightAnimation{
		Repeat:       cycles,
		TargetLights: defaultLights,
		Sequence: []models.AnimationStep{
			{DurationMs: 1, Color: ColorBlack, Blend: true},
			{DurationMs: peakDurationMs, Color: color, Blend: true},
			{DurationMs: 300, Color: color, Blend: true},
			{DurationMs: 300, Color: ColorBlack, Blend: true},
		},
	}
}

// CycleAnimation returns the idle animation for a cycle index.
// Indices outside the cycle wrap.
func CycleAnimation(index int) models.LightAnimation {
	i := index % CycleLength
	if i < 0 {
		i += CycleLength
	}
	return AnimationCycle[i]
}
