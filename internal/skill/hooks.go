package skill

import (
	"context"
	"encoding/json"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/gadget"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/metrics"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
	"github.com/distrubuted-game-mechanic/hello-buttons/pkg/logger"
)

// LogRequest logs the raw inbound envelope.
func LogRequest(log *logger.Logger) RequestHook {
	return func(_ context.Context, env models.RequestEnvelope) {
		log.Info("==Request==", logger.F("envelope", marshal(env)))
	}
}

// LogResponse logs the raw outbound envelope and the final attributes.
func LogResponse(log *logger.Logger) ResponseHook {
	return func(_ context.Context, out Outcome) {
		log.Info("==Response==", logger.F("handler", out.Handler), logger.F("envelope", marshal(out.Envelope.Response)))
		log.Info("==Session Attributes==", logger.F("attributes", marshal(out.Envelope.SessionAttributes)))
	}
}

// RecordMetrics counts dispatch outcomes, emitted directives and gadget events.
func RecordMetrics() ResponseHook {
	return func(_ context.Context, out Outcome) {
		metrics.ObserveDispatch(out.Handler, out.Err != nil)
		for _, d := range out.Envelope.Response.Directives {
			metrics.ObserveDirective(d.DirectiveType())
		}
		if out.Err != nil {
			return
		}
		for _, ev := range out.Request.Request.Events {
			metrics.ObserveGadgetEvent(eventLabel(ev.Name))
		}
	}
}

func eventLabel(name string) string {
	switch name {
	case gadget.EventButtonDown, gadget.EventButtonUp, gadget.EventTimeout:
		return name
	}
	return "other"
}

func marshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "<unserializable: " + err.Error() + ">"
	}
	return string(b)
}
