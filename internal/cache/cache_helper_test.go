package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheHelper(client, "report:"), mr
}

func TestCacheHelperRoundtrip(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	type summary struct {
		RollNo  string  `json:"roll_no"`
		Percent float64 `json:"percent"`
	}

	in := []summary{{RollNo: "101", Percent: 75.0}}
	if err := helper.Set(ctx, "summary:BCA", in, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out []summary
	if err := helper.Get(ctx, "summary:BCA", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(out) != 1 || out[0].RollNo != "101" || out[0].Percent != 75.0 {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestCacheHelperMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var dest map[string]any
	err := helper.Get(context.Background(), "missing", &dest)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperDelete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "summary:BCA", "x", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Delete(ctx, "summary:BCA"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var dest string
	if err := helper.Get(ctx, "summary:BCA", &dest); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperFlagExpiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.SetFlag(ctx, "token-jti", time.Minute); err != nil {
		t.Fatalf("SetFlag() error = %v", err)
	}

	exists, err := helper.Exists(ctx, "token-jti")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("flag should exist before expiry")
	}

	mr.FastForward(2 * time.Minute)

	exists, err = helper.Exists(ctx, "token-jti")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("flag should be gone after expiry")
	}
}

func TestCacheHelperNilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "report:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set() with nil client should no-op, got %v", err)
	}

	var dest string
	if err := helper.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() with nil client error = %v, want ErrCacheNotAvailable", err)
	}

	exists, err := helper.Exists(ctx, "k")
	if err != nil || exists {
		t.Errorf("Exists() with nil client = (%v, %v), want (false, nil)", exists, err)
	}
}
