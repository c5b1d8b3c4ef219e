package bridge

import (
	"github.com/lunabridge/lunabridge/engine/input"
)

// OnTouchDown queues a touch-down event. It never blocks on a running frame.
func (b *Bridge) OnTouchDown(x, y float32, touchIndex int) {
	b.touches.Push(input.TouchDown, x, y, touchIndex)
}

// OnTouchMoved queues a touch-moved event
func (b *Bridge) OnTouchMoved(x, y float32, touchIndex int) {
	b.touches.Push(input.TouchMoved, x, y, touchIndex)
}

// OnTouchUp queues a touch-up event
func (b *Bridge) OnTouchUp(x, y float32, touchIndex int) {
	b.touches.Push(input.TouchUp, x, y, touchIndex)
}
