package ui

import "testing"

func TestStateUpdated(t *testing.T) {
	s := NewState(false)
	if s.Updated() {
		t.Fatal("new state reports a transition")
	}

	s.Update(true)
	if !s.Current() {
		t.Fatal("current not updated")
	}
	if !s.Updated() {
		t.Fatal("transition false -> true not reported")
	}
	if s.Updated() {
		t.Fatal("second read reported the same transition")
	}
}

func TestStateUpdateSameValue(t *testing.T) {
	s := NewState(true)
	s.Update(true)
	if s.Updated() {
		t.Fatal("update with the same value reported a transition")
	}
}

func TestStateFlipBack(t *testing.T) {
	s := NewState(false)
	s.Update(true)
	s.Update(false)
	if s.Updated() {
		t.Fatal("flip and flip back without a read must not report a transition")
	}
}
