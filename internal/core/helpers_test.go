package core

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/logging"
	"github.com/JonMunkholm/userdir/internal/refdata"
	"github.com/JonMunkholm/userdir/internal/storage"
)

// testConfig returns the default configuration.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	return cfg
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	cfg := testConfig(t)
	v, err := NewValidator(cfg.Validation, cfg.Messages, refdata.NewStatic())
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return v
}

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	s := NewStore(kv, logging.Discard())
	s.Load(context.Background())
	return s
}

// annProfile is the record most tests start from.
func annProfile() Profile {
	return Profile{
		Name:        "Ann Lee",
		Email:       "ann@x.com",
		LinkedinURL: "https://linkedin.com/in/ann",
		Gender:      GenderFemale,
		Address: Address{
			Line1: "1 Main St",
			Line2: "",
			State: "Karnataka",
			City:  "Bangalore",
			Pin:   "560001",
		},
	}
}

// flakyKV fails every Set while failing is true.
type flakyKV struct {
	*storage.MemoryKV
	failing bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failing {
		return errDiskFull
	}
	return f.MemoryKV.Set(ctx, key, value)
}
