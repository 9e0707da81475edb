package parallel

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestRecoverAsError_Nil(t *testing.T) {
	if err := RecoverAsError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestRecoverAsError_WrapsErrorValue(t *testing.T) {
	sentinel := errors.New("index out of range")
	err := RecoverAsError(sentinel)

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the panic value")
	}
	if len(pe.Stack) == 0 {
		t.Error("stack should be captured")
	}
}

func TestGo_ReportsPanic(t *testing.T) {
	var ec ErrorCollector
	var wg sync.WaitGroup
	wg.Add(1)
	Go(&ec, wg.Done, func() { panic("boom") })
	wg.Wait()

	err := ec.Err()
	if err == nil {
		t.Fatal("panic should surface as an error")
	}
	if !strings.Contains(err.Error(), "task panicked: boom") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestGo_NoPanic(t *testing.T) {
	var ec ErrorCollector
	var wg sync.WaitGroup
	ran := false
	wg.Add(1)
	Go(&ec, wg.Done, func() { ran = true })
	wg.Wait()

	if !ran {
		t.Error("function should have run")
	}
	if ec.Err() != nil {
		t.Errorf("unexpected error: %v", ec.Err())
	}
}

func TestRun_ReportsPanicAndReturns(t *testing.T) {
	var ec ErrorCollector
	Run(&ec, func() { panic(errors.New("inline")) })
	Run(&ec, func() {})

	var pe *PanicError
	if !errors.As(ec.Err(), &pe) {
		t.Fatalf("expected *PanicError, got %v", ec.Err())
	}
	if !strings.Contains(pe.Error(), "inline") {
		t.Errorf("unexpected message: %v", pe)
	}
}
