package skill

import (
	"strings"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

// ResponseBuilder accumulates the outgoing response for a single invocation.
//
// Speech is last-write-wins, directives are appended in order and the
// session-continuation flag is tri-state: unset/KeepOpen leaves the session
// open without opening the microphone, Reprompt opens it, EndSession closes it.
type ResponseBuilder struct {
	speech     string
	reprompt   string
	shouldEnd  *bool
	directives []models.Directive
}

// NewResponseBuilder returns an empty builder.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// Speak sets the spoken output. text may contain SSML such as audio tags.
func (b *ResponseBuilder) Speak(text string) *ResponseBuilder {
	b.speech = text
	return b
}

// Reprompt sets the reprompt and reopens the microphone.
func (b *ResponseBuilder) Reprompt(text string) *ResponseBuilder {
	b.reprompt = text
	open := false
	b.shouldEnd = &open
	return b
}

// KeepOpen keeps the session alive without listening for voice input.
func (b *ResponseBuilder) KeepOpen() *ResponseBuilder {
	b.shouldEnd = nil
	return b
}

// EndSession closes the session after the response is delivered.
func (b *ResponseBuilder) EndSession() *ResponseBuilder {
	end := true
	b.shouldEnd = &end
	return b
}

// AddDirective appends directives in order.
func (b *ResponseBuilder) AddDirective(ds ...models.Directive) *ResponseBuilder {
	b.directives = append(b.directives, ds...)
	return b
}

// Build renders the accumulated state.
func (b *ResponseBuilder) Build() models.Response {
	var resp models.Response
	if b.speech != "" {
		resp.OutputSpeech = ssml(b.speech)
	}
	if b.reprompt != "" {
		resp.Reprompt = &models.Reprompt{OutputSpeech: ssml(b.reprompt)}
	}
	if b.shouldEnd != nil {
		v := *b.shouldEnd
		resp.ShouldEndSession = &v
	}
	if len(b.directives) > 0 {
		resp.Directives = append([]models.Directive(nil), b.directives...)
	}
	return resp
}

func ssml(text string) *models.OutputSpeech {
	if !strings.HasPrefix(text, "<speak>") {
		text = "<speak>" + text + "</speak>"
	}
	return &models.OutputSpeech{Type: "SSML", SSML: text}
}
