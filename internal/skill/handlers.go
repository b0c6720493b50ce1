package skill

import (
	"context"
	"errors"
	"fmt"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/gadget"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
	"github.com/distrubuted-game-mechanic/hello-buttons/pkg/logger"
)

// ErrMalformedEvent is returned when a gadget event carries no input events.
var ErrMalformedEvent = errors.New("game engine event has no input events")

// IsRequestType matches the request kind.
func IsRequestType(requestType string) Predicate {
	return func(env *models.RequestEnvelope) bool {
		return env.Request.Type == requestType
	}
}

// IsIntent matches an IntentRequest carrying any of names.
func IsIntent(names ...string) Predicate {
	return func(env *models.RequestEnvelope) bool {
		if env.Request.Type != models.RequestTypeIntent || env.Request.Intent == nil {
			return false
		}
		for _, n := range names {
			if env.Request.Intent.Name == n {
				return true
			}
		}
		return false
	}
}

// Always matches every request.
func Always(*models.RequestEnvelope) bool { return true }

// DefaultRoutes is the handler table in priority order.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "launch", Match: IsRequestType(models.RequestTypeLaunch), Handle: Launch},
		{Name: "help", Match: IsIntent(models.IntentHelp), Handle: Help},
		{Name: "stop", Match: IsIntent(models.IntentCancel, models.IntentStop), Handle: Stop},
		{Name: "session_ended", Match: IsRequestType(models.RequestTypeSessionEnded), Handle: SessionEnded},
		{Name: "game_engine", Match: IsRequestType(models.RequestTypeInputHandler), Handle: GameEngine},
		{Name: "default", Match: Always, Handle: Default},
	}
}

// Launch starts a roll call: it resets the counters, opens an input handler
// and lights every attached button.
func Launch(_ context.Context, in *Input) error {
	in.Attributes.Reset(in.Envelope.Request.RequestID)

	in.Response.
		AddDirective(gadget.StartInputHandler()).
		AddDirective(gadget.DeviceSetup(nil)...).
		KeepOpen().
		Speak(speechWelcome)
	return nil
}

func Help(_ context.Context, in *Input) error {
	in.Response.Speak(speechHelp).KeepOpen()
	return nil
}

// Stop cancels the running input handler, if any, and says goodbye.
func Stop(_ context.Context, in *Input) error {
	if id, ok := in.Attributes.InputHandlerToStop(); ok {
		in.Response.AddDirective(gadget.StopInputHandler(id))
	}
	in.Response.Speak(speechGoodbye).EndSession()
	return nil
}

func SessionEnded(_ context.Context, in *Input) error {
	req := in.Envelope.Request
	fields := []logger.Field{logger.F("reason", req.Reason)}
	if req.Error != nil {
		fields = append(fields,
			logger.F("error_type", req.Error.Type),
			logger.F("error_message", req.Error.Message))
	}
	in.Logger.Info("Session ended", fields...)
	return nil
}

// GameEngine applies each reported event in order.
func GameEngine(_ context.Context, in *Input) error {
	for i, ev := range in.Envelope.Request.Events {
		switch ev.Name {
		case gadget.EventButtonDown:
			id, err := firstGadget(ev)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			if count, isNew := in.Attributes.Discover(id); isNew {
				in.Logger.Info("Button discovered", logger.F("gadget_id", id), logger.F("button_count", fmt.Sprint(count)))
				in.Response.
					Speak(speechNewButton(count)).
					AddDirective(gadget.DeviceSetup([]string{id})...)
			}
			in.Response.KeepOpen()

		case gadget.EventButtonUp:
			id, err := firstGadget(ev)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			index := in.Attributes.AdvanceAnimation(id)
			in.Response.
				AddDirective(gadget.IdleAnimation([]string{id}, gadget.CycleAnimation(index))).
				KeepOpen()

		case gadget.EventTimeout:
			if in.Attributes.ButtonCount == 0 {
				in.Response.Speak(speechNoButtons)
			} else {
				in.Response.Speak(speechTimeoutGoodbye)
			}
			in.Response.EndSession()

		default:
			in.Logger.Debug("Ignoring unknown game engine event", logger.F("event", ev.Name))
		}
	}
	return nil
}

func Default(_ context.Context, in *Input) error {
	in.Response.Speak(speechDefault).KeepOpen()
	return nil
}

// ErrorHandler apologises and reopens the microphone.
func ErrorHandler(_ context.Context, in *Input, err error) {
	in.Logger.Error("Returning error response", logger.Err(err))
	in.Response.Speak(speechError).Reprompt(speechError)
}

func firstGadget(ev models.GameEngineEvent) (string, error) {
	if len(ev.InputEvents) == 0 {
		return "", fmt.Errorf("%s: %w", ev.Name, ErrMalformedEvent)
	}
	id := ev.InputEvents[0].GadgetID
	if id == "" {
		return "", fmt.Errorf("%s: empty gadget id", ev.Name)
	}
	return id, nil
}
