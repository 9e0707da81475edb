package progress

import "testing"

func TestChannelCallback(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	cb := ChannelCallback(ch, 3)

	cb(0.25)
	cb(0.5) // dropped, channel full
	if u := <-ch; u.StrategyIndex != 3 || u.Value != 0.25 {
		t.Errorf("got %+v, want index 3 value 0.25", u)
	}

	done := make(chan struct{})
	go func() {
		cb(1.0)
		close(done)
	}()
	if u := <-ch; u.Value != 1.0 {
		t.Errorf("final update = %+v, want 1.0", u)
	}
	<-done
}
