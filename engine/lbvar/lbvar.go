package lbvar

import (
	"expvar"
	"sync"

	"github.com/lunabridge/lunabridge/engine/lifecycle"
)

// Bool is a boolean published through expvar
type Bool struct {
	val *expvar.Int
}

// NewBool publishes a new Bool under name. It panics if name is already published.
func NewBool(name string) *Bool {
	return &Bool{
		val: expvar.NewInt(name),
	}
}

func (b *Bool) Value() bool {
	return b.val.Value() > 0
}

func (b *Bool) Set(v bool) {
	if v {
		b.val.Set(1)
	} else {
		b.val.Set(0)
	}
}

// EngineSource is what the "engine" variable reads its gauges from
type EngineSource interface {
	State() lifecycle.State
	Frames() uint64
	FPS() int
	GameName() string
	QueuedTouches() int
}

var (
	IsEngineInitialized = NewBool("IsEngineInitialized")

	publishOnce sync.Once
)

// PublishEngine publishes the gauges of src under "engine" in /debug/vars.
// Only the first call has effect.
func PublishEngine(src EngineSource) {
	publishOnce.Do(func() {
		expvar.Publish("engine", expvar.Func(func() interface{} {
			return Snapshot(src)
		}))
	})
}

// Snapshot reads the current gauges of src
func Snapshot(src EngineSource) map[string]interface{} {
	return map[string]interface{}{
		"state":          src.State().String(),
		"frames":         src.Frames(),
		"fps":            src.FPS(),
		"game":           src.GameName(),
		"queued_touches": src.QueuedTouches(),
	}
}
