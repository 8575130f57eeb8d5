package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error

	mu      sync.Mutex
	stopped bool
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeService) Stop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeService) wasStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func TestNewRunnerDropsNilServices(t *testing.T) {
	runner := NewRunner(nil, &fakeService{name: "api"}, nil)
	if len(runner.services) != 1 {
		t.Fatalf("nil services should be dropped, got %d", len(runner.services))
	}
}

func TestRunnerStopsEverythingWhenOneServiceFails(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &fakeService{name: "api", startErr: boom}
	blocking := &fakeService{name: "worker"}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want start error back, got %v", err)
	}
	if !failing.wasStopped() || !blocking.wasStopped() {
		t.Fatalf("all services must be stopped, got api=%v worker=%v",
			failing.wasStopped(), blocking.wasStopped())
	}
}

func TestRunnerTreatsCancelAsCleanShutdown(t *testing.T) {
	svc := &fakeService{name: "api"}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("signal shutdown must not be an error, got %v", err)
	}
	if !svc.wasStopped() {
		t.Fatal("service was not stopped on shutdown")
	}
}
