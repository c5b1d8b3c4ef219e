package lbvar

import (
	"encoding/json"
	"expvar"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
)

type fakeEngine struct {
	state lifecycle.State
}

func (e *fakeEngine) State() lifecycle.State { return e.state }
func (e *fakeEngine) Frames() uint64         { return 42 }
func (e *fakeEngine) FPS() int               { return 60 }
func (e *fakeEngine) GameName() string       { return "Demo" }
func (e *fakeEngine) QueuedTouches() int     { return 3 }

func TestBool(t *testing.T) {
	b := NewBool("TestBool")
	assert.Equal(t, false, b.Value())
	b.Set(true)
	assert.Equal(t, true, b.Value())
	assert.Equal(t, "1", expvar.Get("TestBool").String())
	b.Set(false)
	assert.Equal(t, false, b.Value())
}

func TestPublishEngine(t *testing.T) {
	e := &fakeEngine{state: lifecycle.Running}
	PublishEngine(e)
	PublishEngine(&fakeEngine{state: lifecycle.Destroyed})

	var vars map[string]interface{}
	if err := json.Unmarshal([]byte(expvar.Get("engine").String()), &vars); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Running", vars["state"])
	assert.Equal(t, float64(42), vars["frames"])
	assert.Equal(t, float64(60), vars["fps"])
	assert.Equal(t, "Demo", vars["game"])

	e.state = lifecycle.Paused
	assert.Equal(t, "Paused", Snapshot(e)["state"])
}
