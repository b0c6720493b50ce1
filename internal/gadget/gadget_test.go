package gadget

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

func TestIntroAnimation(t *testing.T) {
	assert.Equal(t, 15, IntroAnimation.Repeat)
	require.Len(t, IntroAnimation.Sequence, 7)

	wantColors := []string{ColorBlack, ColorRed, ColorYellow, ColorGreen, ColorCyan, ColorBlue, ColorMagenta}
	for i, step := range IntroAnimation.Sequence {
		assert.Equal(t, wantColors[i], step.Color, "step %d", i)
		assert.True(t, step.Blend, "step %d", i)
		assert.GreaterOrEqual(t, step.DurationMs, 200)
		assert.LessOrEqual(t, step.DurationMs, 300)
	}
}

func TestBreatheAnimation(t *testing.T) {
	a := BreatheAnimation(30, ColorGreen, 1000)

	assert.Equal(t, 30, a.Repeat)
	assert.Equal(t, []string{"1"}, a.TargetLights)
	assert.Equal(t, []models.AnimationStep{
		{DurationMs: 1, Color: ColorBlack, Blend: true},
		{DurationMs: 1000, Color: ColorGreen, Blend: true},
		{DurationMs: 300, Color: ColorGreen, Blend: true},
		{DurationMs: 300, Color: ColorBlack, Blend: true},
	}, a.Sequence)
}

func TestAnimationCycleOrder(t *testing.T) {
	require.Equal(t, 3, CycleLength)
	assert.Equal(t, ColorRed, AnimationCycle[0].Sequence[1].Color)
	assert.Equal(t, ColorGreen, AnimationCycle[1].Sequence[1].Color)
	assert.Equal(t, ColorBlue, AnimationCycle[2].Sequence[1].Color)
	assert.Equal(t, AnimationCycle[0], CycleAnimation(3))
	assert.Equal(t, AnimationCycle[2], CycleAnimation(-1))
}

func TestFlashes(t *testing.T) {
	tests := []struct {
		name      string
		animation models.LightAnimation
		color     string
	}{
		{name: "down", animation: ButtonDownFlash, color: ColorYellow},
		{name: "up", animation: ButtonUpFlash, color: ColorCyan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.animation.Sequence, 1)
			step := tt.animation.Sequence[0]
			assert.Equal(t, 300, step.DurationMs)
			assert.Equal(t, tt.color, step.Color)
			assert.False(t, step.Blend)
			assert.Equal(t, []string{"1"}, tt.animation.TargetLights)
		})
	}
}

func TestSetLightWireShape(t *testing.T) {
	d := ButtonDownAnimation([]string{"gadget-A"})

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, models.DirectiveSetLight, got["type"])
	assert.EqualValues(t, 1, got["version"])
	assert.Equal(t, []any{"gadget-A"}, got["targetGadgets"])

	params := got["parameters"].(map[string]any)
	assert.Equal(t, "buttonDown", params["triggerEvent"])
	assert.EqualValues(t, 0, params["triggerEventTimeMs"])

	animations := params["animations"].([]any)
	require.Len(t, animations, 1)
	anim := animations[0].(map[string]any)
	assert.EqualValues(t, 1, anim["repeat"])
	assert.Equal(t, []any{"1"}, anim["targetLights"])
	seq := anim["sequence"].([]any)
	require.Len(t, seq, 1)
	assert.Equal(t, map[string]any{"durationMs": float64(300), "color": "FFFF00", "blend": false}, seq[0])
}

func TestBroadcastTargetsEncodeAsEmptyArray(t *testing.T) {
	raw, err := json.Marshal(IdleAnimation(nil, IntroAnimation))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"targetGadgets":[]`)
	assert.Contains(t, string(raw), `"triggerEvent":"none"`)
}

func TestSetLightDoesNotShareCatalog(t *testing.T) {
	d := IdleAnimation([]string{"A"}, IntroAnimation)
	d.Parameters.Animations[0].Sequence[0].Color = "123456"
	assert.Equal(t, ColorBlack, IntroAnimation.Sequence[0].Color)
}

func TestStartInputHandlerWireShape(t *testing.T) {
	raw, err := json.Marshal(StartInputHandler())
	require.NoError(t, err)

	var got struct {
		Type        string `json:"type"`
		Timeout     int    `json:"timeout"`
		Recognizers map[string]struct {
			Anchor  string              `json:"anchor"`
			Fuzzy   bool                `json:"fuzzy"`
			Pattern []map[string]string `json:"pattern"`
		} `json:"recognizers"`
		Events map[string]struct {
			Meets                 []string `json:"meets"`
			Reports               string   `json:"reports"`
			ShouldEndInputHandler bool     `json:"shouldEndInputHandler"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, models.DirectiveStartInputHandler, got.Type)
	assert.Equal(t, 30000, got.Timeout)

	require.Len(t, got.Recognizers, 2)
	down := got.Recognizers["button_down_recognizer"]
	assert.Equal(t, "end", down.Anchor)
	assert.False(t, down.Fuzzy)
	assert.Equal(t, []map[string]string{{"action": "down"}}, down.Pattern)
	assert.Equal(t, []map[string]string{{"action": "up"}}, got.Recognizers["button_up_recognizer"].Pattern)

	require.Len(t, got.Events, 3)
	assert.Equal(t, []string{"button_down_recognizer"}, got.Events["button_down_event"].Meets)
	assert.Equal(t, "matches", got.Events["button_down_event"].Reports)
	assert.False(t, got.Events["button_down_event"].ShouldEndInputHandler)
	assert.Equal(t, []string{"button_up_recognizer"}, got.Events["button_up_event"].Meets)
	assert.False(t, got.Events["button_up_event"].ShouldEndInputHandler)
	assert.Equal(t, []string{"timed out"}, got.Events["timeout"].Meets)
	assert.Equal(t, "history", got.Events["timeout"].Reports)
	assert.True(t, got.Events["timeout"].ShouldEndInputHandler)
}

func TestStopInputHandler(t *testing.T) {
	raw, err := json.Marshal(StopInputHandler("req-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"GameEngine.StopInputHandler","originatingRequestId":"req-1"}`, string(raw))
}

func TestDeviceSetupOrder(t *testing.T) {
	ds := DeviceSetup([]string{"A"})
	require.Len(t, ds, 3)

	triggers := []string{models.TriggerNone, models.TriggerButtonDown, models.TriggerButtonUp}
	for i, d := range ds {
		sl, ok := d.(*models.SetLightDirective)
		require.True(t, ok)
		assert.Equal(t, triggers[i], sl.Parameters.TriggerEvent)
		assert.Equal(t, []string{"A"}, sl.TargetGadgets)
	}
}
