package session

import "github.com/distrubuted-game-mechanic/hello-buttons/internal/gadget"

// CycleLength is the number of idle animations a gadget steps through.
const CycleLength = gadget.CycleLength

// Reset starts a fresh roll call: the counter and every per-gadget state are
// cleared and requestID becomes the input handler to cancel on exit.
func (a *Attributes) Reset(requestID string) {
	a.ButtonCount = 0
	a.Devices = make(map[string]*Device)
	id := requestID
	a.CurrentInputHandlerID = &id
}

// Discover records a button press from gadgetID. It reports whether the
// gadget was seen for the first time and the button count afterwards.
// The initialized flag and the counter always change together.
func (a *Attributes) Discover(gadgetID string) (count int, isNew bool) {
	d := a.device(gadgetID)
	if d.Initialized {
		return a.ButtonCount, false
	}
	d.Initialized = true
	a.ButtonCount++
	return a.ButtonCount, true
}

// AdvanceAnimation moves gadgetID to its next idle animation and returns the
// new index. The sequence is 0,1,2,0,1,2,... starting from an unset cursor.
func (a *Attributes) AdvanceAnimation(gadgetID string) int {
	d := a.device(gadgetID)
	if d.HasAnimation && d.Animation >= 0 && d.Animation < CycleLength {
		d.Animation = (d.Animation + 1) % CycleLength
	} else {
		// unset or out of range
		d.Animation = 0
	}
	d.HasAnimation = true
	return d.Animation
}

// InputHandlerToStop returns the input handler that must be cancelled when
// the skill exits, if any.
func (a *Attributes) InputHandlerToStop() (string, bool) {
	if a.CurrentInputHandlerID == nil {
		return "", false
	}
	return *a.CurrentInputHandlerID, true
}
