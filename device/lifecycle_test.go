// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"testing"
)

func TestLifecycle_BuildsOnce(t *testing.T) {
	t.Parallel()

	builds := 0
	l := NewLifecycle(func() (int, error) {
		builds++
		return 42, nil
	})

	if _, ok := l.Peek(); ok || l.State() != Uninitialized {
		t.Fatalf("new lifecycle is %v", l.State())
	}

	for range 3 {
		v, err := l.Ready()
		if v != 42 || err != nil {
			t.Fatalf("Ready() = %d, %v", v, err)
		}
	}
	if builds != 1 || l.State() != Ready {
		t.Errorf("builds = %d, state = %v, want 1, ready", builds, l.State())
	}
}

func TestLifecycle_RetriesFailedBuild(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fail := true
	l := NewLifecycle(func() (string, error) {
		if fail {
			return "", boom
		}
		return "ok", nil
	})

	if _, err := l.Ready(); !errors.Is(err, boom) {
		t.Fatalf("Ready() error = %v, want boom", err)
	}
	if l.State() != Uninitialized {
		t.Fatalf("state after failure = %v", l.State())
	}

	fail = false
	if v, err := l.Ready(); v != "ok" || err != nil {
		t.Errorf("Ready() after retry = %q, %v", v, err)
	}
}
