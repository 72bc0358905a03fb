package bridge

// reloadTolerance absorbs scheduler jitter in the engine clock. Only a
// regression larger than this declares a reload.
const reloadTolerance = 0.1

// ReloadDetector recognizes an out-of-band environment reset by watching
// the engine's monotonic simulation time. A world reset rewinds that clock
// to zero; the controller process may survive with stale task state, so
// callers poll Check once per tick and reset themselves when it fires.
//
// Purely passive: no side effects unless polled.
type ReloadDetector struct {
	last     float64
	onReload func()
}

// NewReloadDetector creates a detector. onReload, if non-nil, is invoked
// from Check on the polling goroutine when a reload is declared.
func NewReloadDetector(onReload func()) *ReloadDetector {
	return &ReloadDetector{onReload: onReload}
}

// Check advances the tracked time. If now regressed past the jitter
// tolerance, the callback fires, tracking restarts from zero, and Check
// reports true.
func (d *ReloadDetector) Check(now float64) bool {
	if now < d.last-reloadTolerance {
		if d.onReload != nil {
			d.onReload()
		}
		d.last = 0
		return true
	}
	d.last = now
	return false
}
