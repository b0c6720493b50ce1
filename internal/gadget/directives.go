package gadget

import "github.com/distrubuted-game-mechanic/hello-buttons/internal/models"

// Input handler event and recognizer names. The dispatcher switches on the
// event names, so they must stay in sync with StartInputHandler.
const (
	EventButtonDown = "button_down_event"
	EventButtonUp   = "button_up_event"
	EventTimeout    = "timeout"

	RecognizerButtonDown = "button_down_recognizer"
	RecognizerButtonUp   = "button_up_recognizer"

	// recognizerTimedOut is the built-in recognizer that fires on handler timeout
	recognizerTimedOut = "timed out"
)

// InputHandlerTimeoutMs bounds how long the gadgets report events
const InputHandlerTimeoutMs = 30000

// StartInputHandler listens for press and release on every attached gadget.
func StartInputHandler() *models.StartInputHandlerDirective {
	return &models.StartInputHandlerDirective{
		Type:    models.DirectiveStartInputHandler,
		Timeout: InputHandlerTimeoutMs,
		Recognizers: map[string]models.PatternRecognizer{
			RecognizerButtonDown: actionRecognizer("down"),
			RecognizerButtonUp:   actionRecognizer("up"),
		},
		Events: map[string]models.InputHandlerEvent{
			EventButtonDown: {
				Meets:                 []string{RecognizerButtonDown},
				Reports:               "matches",
				ShouldEndInputHandler: false,
			},
			EventButtonUp: {
				Meets:                 []string{RecognizerButtonUp},
				Reports:               "matches",
				ShouldEndInputHandler: false,
			},
			EventTimeout: {
				Meets:                 []string{recognizerTimedOut},
				Reports:               "history",
				ShouldEndInputHandler: true,
			},
		},
	}
}

func actionRecognizer(action string) models.PatternRecognizer {
	return models.PatternRecognizer{
		Type:    "match",
		Anchor:  "end",
		Fuzzy:   false,
		Pattern: []models.Pattern{{Action: action}},
	}
}

// StopInputHandler cancels the input handler started by originatingRequestID.
func StopInputHandler(originatingRequestID string) *models.StopInputHandlerDirective {
	return &models.StopInputHandlerDirective{
		Type:                 models.DirectiveStopInputHandler,
		OriginatingRequestID: originatingRequestID,
	}
}

// IdleAnimation plays animation immediately on the targets.
func IdleAnimation(targets []string, animation models.LightAnimation) *models.SetLightDirective {
	return setLight(targets, models.TriggerNone, animation)
}

// ButtonDownAnimation binds the down flash to the press trigger.
func ButtonDownAnimation(targets []string) *models.SetLightDirective {
	return setLight(targets, models.TriggerButtonDown, ButtonDownFlash)
}

// ButtonUpAnimation binds the up flash to the release trigger.
func ButtonUpAnimation(targets []string) *models.SetLightDirective {
	return setLight(targets, models.TriggerButtonUp, ButtonUpFlash)
}

// DeviceSetup returns the idle, down and up directives, in that order, for targets.
func DeviceSetup(targets []string) []models.Directive {
	return []models.Directive{
		IdleAnimation(targets, IntroAnimation),
		ButtonDownAnimation(targets),
		ButtonUpAnimation(targets),
	}
}

func setLight(targets []string, trigger string, animation models.LightAnimation) *models.SetLightDirective {
	gadgets := make([]string, len(targets))
	copy(gadgets, targets)
	return &models.SetLightDirective{
		Type:          models.DirectiveSetLight,
		Version:       1,
		TargetGadgets: gadgets,
		Parameters: models.SetLightParameters{
			TriggerEvent:       trigger,
			TriggerEventTimeMs: 0,
			Animations:         []models.LightAnimation{cloneAnimation(animation)},
		},
	}
}

// cloneAnimation detaches a directive's animation from the shared catalog entry.
func cloneAnimation(a models.LightAnimation) models.LightAnimation {
	out := a
	out.TargetLights = append([]string(nil), a.TargetLights...)
	out.Sequence = append([]models.AnimationStep(nil), a.Sequence...)
	return out
}
