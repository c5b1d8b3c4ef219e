package hostmobile

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/bridge"
	"github.com/lunabridge/lunabridge/engine/input"
	lc "github.com/lunabridge/lunabridge/engine/lifecycle"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
)

type sendRecorder struct {
	sent []interface{}
}

func (s *sendRecorder) Send(event interface{}) {
	s.sent = append(s.sent, event)
}

type touchGame struct {
	touches []input.TouchEvent
}

func (g *touchGame) HandleTouch(ev input.TouchEvent, fr *bridge.Frame) {
	g.touches = append(g.touches, ev)
}

func (g *touchGame) Update(fr *bridge.Frame) {}

func newAdapter() (*Adapter, *bridge.Bridge, *touchGame, *sendRecorder) {
	game := &touchGame{}
	b := bridge.New(bridge.Options{
		Game: game,
		Loader: assets.LoaderFunc(func(req assets.LoadRequest) (*assets.ResourceSet, error) {
			return assets.NewResourceSet(req.Version), nil
		}),
	})
	sender := &sendRecorder{}
	return New(b, lc.InitParams{AppName: "Mobile"}, sender), b, game, sender
}

var (
	becomeVisible = lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageFocused}
	becomeHidden  = lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageAlive}
	die           = lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageDead}
)

func handle(t *testing.T, a *Adapter, e interface{}) bool {
	dead, err := a.Handle(e)
	if err != nil {
		t.Fatalf("handle %v: %v", e, err)
	}
	return dead
}

func TestLifecycle(t *testing.T) {
	a, b, game, sender := newAdapter()

	handle(t, a, size.Event{WidthPx: 1080, HeightPx: 1920})
	assert.Equal(t, false, b.IsInitialized())
	handle(t, a, becomeVisible)
	assert.Equal(t, lc.Running, b.State())
	params, _ := b.Params()
	assert.Equal(t, 1080, params.ScreenWidth)
	assert.Equal(t, "Mobile", params.AppName)
	assert.Equal(t, 1, len(sender.sent))

	handle(t, a, touch.Event{X: 10, Y: 20, Sequence: 3, Type: touch.TypeBegin})
	handle(t, a, touch.Event{X: 11, Y: 21, Sequence: 3, Type: touch.TypeMove})
	handle(t, a, touch.Event{X: 12, Y: 22, Sequence: 3, Type: touch.TypeEnd})
	handle(t, a, paint.Event{})
	assert.Equal(t, uint64(1), b.Frames())
	assert.Equal(t, 3, len(game.touches))
	assert.Equal(t, 3, game.touches[0].Index)
	assert.Equal(t, input.TouchUp, game.touches[2].Kind)
	assert.Equal(t, 2, len(sender.sent))

	// the loop drives itself now, the os repaint is dropped
	handle(t, a, paint.Event{External: true})
	assert.Equal(t, uint64(1), b.Frames())

	handle(t, a, becomeHidden)
	assert.Equal(t, lc.Paused, b.State())
	handle(t, a, paint.Event{External: true})
	assert.Equal(t, uint64(1), b.Frames())

	handle(t, a, becomeVisible)
	assert.Equal(t, lc.Running, b.State())
	handle(t, a, paint.Event{})
	assert.Equal(t, uint64(2), b.Frames())

	assert.Equal(t, true, handle(t, a, die))
	assert.Equal(t, lc.Destroyed, b.State())
}

func TestVisibleBeforeSize(t *testing.T) {
	a, b, _, _ := newAdapter()
	handle(t, a, becomeVisible)
	assert.Equal(t, false, b.IsInitialized())

	handle(t, a, size.Event{WidthPx: 640, HeightPx: 480})
	assert.Equal(t, lc.Running, b.State())
	assert.Equal(t, 480, a.Params().ScreenHeight)
}

func TestDeathWithoutInitialize(t *testing.T) {
	a, b, _, _ := newAdapter()
	assert.Equal(t, true, handle(t, a, die))
	assert.Equal(t, lc.Uninitialized, b.State())
}

func TestInitializeFailureSurfaces(t *testing.T) {
	b := bridge.New(bridge.Options{
		Loader: assets.LoaderFunc(func(req assets.LoadRequest) (*assets.ResourceSet, error) {
			return assets.NewResourceSet(req.Version), nil
		}),
	})
	a := New(b, lc.InitParams{}, nil)
	handle(t, a, size.Event{WidthPx: 640, HeightPx: 480})
	_, err := a.Handle(becomeVisible)
	assert.T(t, err != nil, "empty app name should fail")
	assert.Equal(t, lc.Uninitialized, b.State())
}
