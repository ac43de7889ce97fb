package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"lumiere/internal/repos"
	"lumiere/internal/services"
)

type fakeSyncer struct {
	calls atomic.Int32
	done  chan struct{}
}

func (f *fakeSyncer) Register(ctx context.Context, email string) error {
	f.calls.Add(1)
	select {
	case f.done <- struct{}{}:
	default:
	}
	return nil
}

func TestSubscribe_Dedupes(t *testing.T) {
	db := memdb(t)
	syncer := &fakeSyncer{done: make(chan struct{}, 1)}
	svc := services.NewSubscriberService(repos.NewSubscriberRepo(db), syncer)

	created, err := svc.Subscribe("ada@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("first subscribe must create a row")
	}

	// Repeat with different casing: still one row, no error.
	created, err = svc.Subscribe("ADA@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("repeat subscribe must be a silent no-op")
	}

	n, err := svc.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want exactly 1 subscriber, got %d", n)
	}

	// Provider sync fires once, for the insert only.
	select {
	case <-syncer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("list sync was never invoked")
	}
	if got := syncer.calls.Load(); got != 1 {
		t.Fatalf("want 1 sync call, got %d", got)
	}
}

func TestSubscribe_NoSyncerConfigured(t *testing.T) {
	db := memdb(t)
	svc := services.NewSubscriberService(repos.NewSubscriberRepo(db), nil)

	if _, err := svc.Subscribe("quiet@x.com"); err != nil {
		t.Fatal(err)
	}
	n, _ := svc.Count()
	if n != 1 {
		t.Fatalf("want 1 subscriber, got %d", n)
	}
}
