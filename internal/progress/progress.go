// Package progress defines the progress messages exchanged between the
// benchmark harness and its displays.
package progress

// ProgressUpdate reports how far one strategy has come through its runs.
type ProgressUpdate struct {
	// StrategyIndex is the position of the strategy in the run order.
	StrategyIndex int
	// Value is the completed fraction, 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a single strategy.
type ProgressCallback func(value float64)

// ChannelCallback returns a callback that sends updates for index on ch
// without blocking. Updates are dropped while the channel is full, except
// the final 1.0 which is always delivered.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	return func(v float64) {
		u := ProgressUpdate{StrategyIndex: index, Value: v}
		if v >= 1 {
			ch <- u
			return
		}
		select {
		case ch <- u:
		default:
		}
	}
}
