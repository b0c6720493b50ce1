package models

// Directive type discriminators
const (
	DirectiveSetLight          = "GadgetController.SetLight"
	DirectiveStartInputHandler = "GameEngine.StartInputHandler"
	DirectiveStopInputHandler  = "GameEngine.StopInputHandler"
)

// Trigger events for SetLight
const (
	TriggerNone       = "none"
	TriggerButtonDown = "buttonDown"
	TriggerButtonUp   = "buttonUp"
)

// Directive is an instruction to a companion device embedded in a response
type Directive interface {
	DirectiveType() string
}

// SetLightDirective plays an animation on the targeted gadgets.
// An empty TargetGadgets broadcasts to every attached gadget.
type SetLightDirective struct {
	Type          string             `json:"type"`
	Version       int                `json:"version"`
	TargetGadgets []string           `json:"targetGadgets"`
	Parameters    SetLightParameters `json:"parameters"`
}

// DirectiveType implements Directive
func (d *SetLightDirective) DirectiveType() string { return DirectiveSetLight }

// SetLightParameters binds animations to a trigger
type SetLightParameters struct {
	TriggerEvent       string           `json:"triggerEvent"`
	TriggerEventTimeMs int              `json:"triggerEventTimeMs"`
	Animations         []LightAnimation `json:"animations"`
}

// LightAnimation is a repeated sequence of color steps
type LightAnimation struct {
	Repeat       int             `json:"repeat"`
	TargetLights []string        `json:"targetLights"`
	Sequence     []AnimationStep `json:"sequence"`
}

// AnimationStep is a single color held for DurationMs
type AnimationStep struct {
	DurationMs int    `json:"durationMs"`
	Color      string `json:"color"`
	Blend      bool   `json:"blend"`
}

// StartInputHandlerDirective opens a time-bounded input handler on the gadgets
type StartInputHandlerDirective struct {
	Type        string                       `json:"type"`
	Timeout     int                          `json:"timeout"`
	Recognizers map[string]PatternRecognizer `json:"recognizers"`
	Events      map[string]InputHandlerEvent `json:"events"`
}

// DirectiveType implements Directive
func (d *StartInputHandlerDirective) DirectiveType() string { return DirectiveStartInputHandler }

// PatternRecognizer matches a sequence of raw input events
type PatternRecognizer struct {
	Type    string    `json:"type"`
	Anchor  string    `json:"anchor"`
	Fuzzy   bool      `json:"fuzzy"`
	Pattern []Pattern `json:"pattern"`
}

// Pattern is one element of a recognizer pattern
type Pattern struct {
	Action string `json:"action"`
}

// InputHandlerEvent declares when the input handler reports back to the skill
type InputHandlerEvent struct {
	Meets                 []string `json:"meets"`
	Reports               string   `json:"reports"`
	ShouldEndInputHandler bool     `json:"shouldEndInputHandler"`
}

// StopInputHandlerDirective cancels an input handler started by an earlier request
type StopInputHandlerDirective struct {
	Type                 string `json:"type"`
	OriginatingRequestID string `json:"originatingRequestId"`
}

// DirectiveType implements Directive
func (d *StopInputHandlerDirective) DirectiveType() string { return DirectiveStopInputHandler }
