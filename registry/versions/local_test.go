package versions

import (
	"context"
	"sync"
	"testing"
)

func TestLocalStartsAtZero(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	v, err := c.Current(ctx, "header")
	if err != nil || v != 0 {
		t.Fatalf("Current = %d, %v, want 0", v, err)
	}
}

func TestLocalBumpIncrements(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	for want := uint64(1); want <= 3; want++ {
		v, err := c.Bump(ctx, "header")
		if err != nil || v != want {
			t.Fatalf("Bump = %d, %v, want %d", v, err, want)
		}
	}

	v, err := c.Current(ctx, "header")
	if err != nil || v != 3 {
		t.Fatalf("Current = %d, %v, want 3", v, err)
	}

	// Counters are independent per name.
	v, err = c.Current(ctx, "other")
	if err != nil || v != 0 {
		t.Fatalf("Current(other) = %d, %v, want 0", v, err)
	}
}

func TestLocalConcurrentBumps(t *testing.T) {
	ctx := context.Background()
	c := NewLocal()

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := c.Bump(ctx, "header"); err != nil {
				t.Errorf("Bump: %v", err)
			}
		}()
	}
	wg.Wait()

	v, err := c.Current(ctx, "header")
	if err != nil || v != n {
		t.Fatalf("Current = %d, %v, want %d", v, err, n)
	}
}
