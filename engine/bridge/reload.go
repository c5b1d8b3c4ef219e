package bridge

import (
	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/lunabridge/lunabridge/engine/lbutils"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
)

// ReloadAssets loads a fresh resource set and swaps it in between two frames.
//
// Loading happens outside the bridge lock, so frames keep running on the previous set
// meanwhile. If loading fails the previous set stays active and a *ReloadFailedError is
// returned. If the engine is torn down or reinitialized while loading, or a reload started
// later has already swapped in a newer set, the fresh set is discarded.
func (b *Bridge) ReloadAssets() error {
	op := b.monitor.StartOperation("reload")
	defer op.Finish(consts.LIFECYCLE_OP_WARN_THRESHOLD)

	b.lock.Lock()
	state := b.machine.State()
	if !state.IsInitialized() {
		b.lock.Unlock()
		return b.reloadRejected(state)
	}
	params, _ := b.Params()
	session := b.session
	version := b.holder.NextVersion()
	b.lock.Unlock()

	set, err := b.loadResources(params, version)

	b.lock.Lock()
	defer b.lock.Unlock()
	return b.finishReloadLocked(session, set, err)
}

// ReloadAssetsAsync loads a fresh resource set in the background and swaps it in on the
// frame context. cb, if not nil, is called exactly once with the outcome: on the frame
// context once the load finished, or by Deinitialize if the engine is torn down first.
// The returned error only reports a reload that could not be started.
func (b *Bridge) ReloadAssetsAsync(cb func(err error)) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.reloadAsyncLocked(cb)
}

// asyncReload is a background reload whose outcome has not been reported yet
type asyncReload struct {
	session uint64
	cb      func(err error)
}

func (b *Bridge) reloadAsyncLocked(cb func(err error)) error {
	state := b.machine.State()
	if !state.IsInitialized() || b.pool == nil {
		return b.reloadRejected(state)
	}

	params, _ := b.Params()
	r := &asyncReload{session: b.session, cb: cb}
	version := b.holder.NextVersion()
	err := b.pool.AppendAsyncJob(b.cfg.Assets.AsyncGroup, func() (interface{}, error) {
		return b.loadResources(params, version)
	}, func(res interface{}, err error) {
		if _, ok := b.reloads[r]; !ok {
			// already reported by Deinitialize
			return
		}
		set, _ := res.(*assets.ResourceSet)
		b.completeReload(r, b.finishReloadLocked(r.session, set, err))
	})
	if err != nil {
		return err
	}
	b.reloads[r] = struct{}{}
	return nil
}

func (b *Bridge) completeReload(r *asyncReload, err error) {
	delete(b.reloads, r)
	if r.cb != nil {
		lbutils.RunPanicless(func() {
			r.cb(err)
		})
	}
}

// abortReloads reports every pending background reload as rejected in state
func (b *Bridge) abortReloads(state lifecycle.State) {
	for r := range b.reloads {
		b.completeReload(r, b.reloadRejected(state))
	}
}

func (b *Bridge) finishReloadLocked(session uint64, set *assets.ResourceSet, loadErr error) error {
	state := b.machine.State()
	if session != b.session || !state.IsInitialized() {
		lblog.Warnf("Asset reload finished after the engine session ended, discarding resource set")
		return b.reloadRejected(state)
	}

	if loadErr != nil {
		var kept uint64
		if cur := b.holder.Current(); cur != nil {
			kept = cur.Version
		}
		err := &assets.ReloadFailedError{KeptVersion: kept, Err: loadErr}
		lblog.Errorf("ReloadAssets: %s", err)
		return err
	}

	if cur := b.holder.Current(); cur != nil && set.Version < cur.Version {
		lblog.Infof("Asset reload v%d finished after the newer v%d, discarding it", set.Version, cur.Version)
		return nil
	}

	old := b.holder.Swap(set)
	if r, ok := b.game.(AssetsReloader); ok {
		lbutils.RunPanicless(func() {
			r.OnAssetsReloaded(old, set)
		})
	}
	lblog.Infof("Assets reloaded: %d assets (version %d)", set.Len(), set.Version)
	return nil
}

func (b *Bridge) reloadRejected(state lifecycle.State) error {
	err := &lifecycle.InvalidStateTransitionError{From: state, To: state, Op: "reloadAssets"}
	lblog.Warnf("ReloadAssets: %s", err)
	return err
}
