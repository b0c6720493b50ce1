package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

// Wire keys of the flat attribute mapping
const (
	KeyButtonCount           = "button_count"
	KeyCurrentInputHandlerID = "current_input_handler_id"

	suffixInitialized = "_initialized"
	suffixAnimation   = "_animation"
)

// Device is the per-gadget sub-state.
type Device struct {
	// Initialized marks a gadget that has already been counted.
	Initialized bool
	// Animation is the current index into the idle animation cycle.
	// Only meaningful when HasAnimation is set.
	Animation    int
	HasAnimation bool
}

// Attributes is the typed view of the session-attribute mapping.
type Attributes struct {
	ButtonCount           int
	CurrentInputHandlerID *string
	Devices               map[string]*Device

	// extra holds keys this skill does not own; they round-trip untouched
	extra models.Attributes
}

// New returns empty attributes.
func New() *Attributes {
	return &Attributes{Devices: make(map[string]*Device)}
}

// Decode parses the flat wire mapping. A nil mapping yields empty attributes.
func Decode(raw models.Attributes) (*Attributes, error) {
	a := New()
	for key, value := range raw {
		switch {
		case key == KeyButtonCount:
			n, err := decodeCount(value)
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
			a.ButtonCount = n
		case key == KeyCurrentInputHandlerID:
			var id *string
			if err := json.Unmarshal(value, &id); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
			a.CurrentInputHandlerID = id
		case strings.HasSuffix(key, suffixInitialized) && len(key) > len(suffixInitialized):
			// presence alone marks the gadget as counted
			a.device(strings.TrimSuffix(key, suffixInitialized)).Initialized = true
		case strings.HasSuffix(key, suffixAnimation) && len(key) > len(suffixAnimation):
			n, err := decodeCount(value)
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
			d := a.device(strings.TrimSuffix(key, suffixAnimation))
			d.Animation = n
			d.HasAnimation = true
		default:
			if a.extra == nil {
				a.extra = make(models.Attributes)
			}
			a.extra[key] = value
		}
	}
	return a, nil
}

// Encode renders the attributes back into the flat wire mapping.
func (a *Attributes) Encode() models.Attributes {
	out := make(models.Attributes, len(a.extra)+2*len(a.Devices)+2)
	for k, v := range a.extra {
		out[k] = v
	}
	out[KeyButtonCount] = mustMarshal(a.ButtonCount)
	if a.CurrentInputHandlerID != nil {
		out[KeyCurrentInputHandlerID] = mustMarshal(*a.CurrentInputHandlerID)
	}
	for id, d := range a.Devices {
		if d.Initialized {
			out[id+suffixInitialized] = mustMarshal(true)
		}
		if d.HasAnimation {
			out[id+suffixAnimation] = mustMarshal(d.Animation)
		}
	}
	return out
}

// Clone returns a deep copy.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{
		ButtonCount: a.ButtonCount,
		Devices:     make(map[string]*Device, len(a.Devices)),
		extra:       a.extra.Clone(),
	}
	if a.CurrentInputHandlerID != nil {
		id := *a.CurrentInputHandlerID
		c.CurrentInputHandlerID = &id
	}
	for id, d := range a.Devices {
		dc := *d
		c.Devices[id] = &dc
	}
	return c
}

func (a *Attributes) device(id string) *Device {
	if a.Devices == nil {
		a.Devices = make(map[string]*Device)
	}
	d, ok := a.Devices[id]
	if !ok {
		d = &Device{}
		a.Devices[id] = d
	}
	return d
}

// decodeCount accepts any JSON number holding a non-negative integer.
func decodeCount(raw json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("not a non-negative integer: %s", string(raw))
	}
	return int(f), nil
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// only called with bools, ints and strings
		panic(err)
	}
	return b
}
