package logging

import "testing"

func TestNewDefaultsToInfo(t *testing.T) {
	logger := New("bogus")
	if logger == nil || logger.Logger == nil {
		t.Fatal("expected a usable logger for unknown level")
	}
}

func TestWithReturnsIndependentLogger(t *testing.T) {
	base := Default()
	child := base.With("component", "test")
	if child == base {
		t.Fatal("With should return a new logger")
	}
	if child.Logger == nil {
		t.Fatal("child logger not initialized")
	}
}
