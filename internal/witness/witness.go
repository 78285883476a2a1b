package witness

import "time"

// Assignment is the canonical input model for one evaluation request: a
// concrete value for each (or some) of the circuit's declared inputs.
type Assignment struct {
	ID         string            `json:"id"`
	Inputs     map[string]uint32 `json:"inputs"`
	ReceivedAt time.Time         `json:"-"`
	Meta       map[string]string `json:"meta,omitempty"` // tenant, origin, etc.
}
