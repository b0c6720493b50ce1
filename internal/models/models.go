package models

import "encoding/json"

// Request types
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
	RequestTypeInputHandler = "GameEngine.InputHandlerEvent"
)

// Built-in intent names
const (
	IntentHelp   = "AMAZON.HelpIntent"
	IntentCancel = "AMAZON.CancelIntent"
	IntentStop   = "AMAZON.StopIntent"
)

// Attributes is the flat session-attribute mapping as it travels on the wire
type Attributes map[string]json.RawMessage

// Clone returns a copy of the mapping; values are shared but never mutated
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// RequestEnvelope is the inbound invocation
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session carries conversation-scoped data supplied by the runtime
type Session struct {
	New         bool        `json:"new"`
	SessionID   string      `json:"sessionId"`
	Application Application `json:"application"`
	User        User        `json:"user"`
	Attributes  Attributes  `json:"attributes,omitempty"`
}

// Application identifies the skill
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User identifies the account invoking the skill
type User struct {
	UserID string `json:"userId"`
}

// Request is the kind-specific payload; only the fields for Type are populated
type Request struct {
	Type                 string            `json:"type"`
	RequestID            string            `json:"requestId"`
	Timestamp            string            `json:"timestamp,omitempty"`
	Locale               string            `json:"locale,omitempty"`
	Intent               *Intent           `json:"intent,omitempty"`
	Reason               string            `json:"reason,omitempty"`
	Error                *SessionError     `json:"error,omitempty"`
	OriginatingRequestID string            `json:"originatingRequestId,omitempty"`
	Events               []GameEngineEvent `json:"events,omitempty"`
}

// Intent is the upstream-classified user intent
type Intent struct {
	Name string `json:"name"`
}

// SessionError describes why a session ended abnormally
type SessionError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// GameEngineEvent is one named event reported by an input handler
type GameEngineEvent struct {
	Name        string       `json:"name"`
	InputEvents []InputEvent `json:"inputEvents"`
}

// InputEvent is a raw press/release reported by a gadget
type InputEvent struct {
	GadgetID  string `json:"gadgetId"`
	Timestamp string `json:"timestamp,omitempty"`
	Action    string `json:"action,omitempty"`
	Color     string `json:"color,omitempty"`
	Feature   string `json:"feature,omitempty"`
}

// ResponseEnvelope is the outbound result returned to the runtime
type ResponseEnvelope struct {
	Version           string     `json:"version"`
	SessionAttributes Attributes `json:"sessionAttributes,omitempty"`
	Response          Response   `json:"response"`
}

// Response carries speech, directives and the session-continuation flag.
// A nil ShouldEndSession keeps the session open without opening the microphone.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
}

// OutputSpeech is SSML speech
type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

// Reprompt is spoken when the microphone reopens without user input
type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
