package vmfacade

import (
	"errors"
	"testing"
)

func TestPanickedReportsNonNilError(t *testing.T) {
	if Panicked(nil) {
		t.Fatal("expected nil error to not be a panic")
	}
	if !Panicked(errors.New("boom")) {
		t.Fatal("expected nonnil error to be treated as a panic")
	}
}
