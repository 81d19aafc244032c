package schema

import "time"

// CompileEvent describes one finished compilation, successful or not.
type CompileEvent struct {
	Type        string        `json:"type"`
	Hash        string        `json:"hash,omitempty"`
	Controllers []string      `json:"controllers,omitempty"`
	Duration    time.Duration `json:"duration"`
	Err         error         `json:"-"`
}

// RejectEvent describes a value rejected by Validate or Normalize.
type RejectEvent struct {
	Type       string      `json:"type"`
	Hash       string      `json:"hash"`
	Descriptor *Descriptor `json:"descriptor"`
}

// Hooks defines callbacks for compiler and schema observability.
// Hooks must not mutate the events they receive.
type Hooks struct {
	OnCompile func(*CompileEvent)
	OnReject  func(*RejectEvent)
}

// MergeHooks returns hooks that call each non-nil callback in order.
func MergeHooks(all ...Hooks) Hooks {
	var compiles []func(*CompileEvent)
	var rejects []func(*RejectEvent)
	for _, h := range all {
		if h.OnCompile != nil {
			compiles = append(compiles, h.OnCompile)
		}
		if h.OnReject != nil {
			rejects = append(rejects, h.OnReject)
		}
	}

	var merged Hooks
	if len(compiles) > 0 {
		merged.OnCompile = func(e *CompileEvent) {
			for _, fn := range compiles {
				fn(e)
			}
		}
	}
	if len(rejects) > 0 {
		merged.OnReject = func(e *RejectEvent) {
			for _, fn := range rejects {
				fn(e)
			}
		}
	}
	return merged
}

func (h Hooks) reject(typ, hash string, d *Descriptor) {
	if h.OnReject != nil {
		h.OnReject(&RejectEvent{Type: typ, Hash: hash, Descriptor: d})
	}
}
