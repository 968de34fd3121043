// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeServer is a test double for HTTPServer.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	block       bool

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
	started       chan struct{}
	stop          chan struct{}
	stopOnce      sync.Once

	// onShutdown runs at the start of Shutdown.
	onShutdown func()
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (s *fakeServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	if s.listenErr != nil {
		return s.listenErr
	}
	if s.block {
		<-s.stop
		return http.ErrServerClosed
	}
	return nil
}

func (s *fakeServer) Shutdown(context.Context) error {
	s.shutdownCalls.Add(1)
	if s.onShutdown != nil {
		s.onShutdown()
	}
	s.stopOnce.Do(func() { close(s.stop) })
	return s.shutdownErr
}

func (s *fakeServer) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-s.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService(t *testing.T) {
	t.Parallel()

	srv := newFakeServer()
	svc := NewHTTPServerService(srv, 3*time.Second)
	if svc.shutdownTimeout != 3*time.Second {
		t.Errorf("shutdownTimeout = %v, want 3s", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q, want http-server", svc.String())
	}

	for _, timeout := range []time.Duration{0, -time.Second} {
		if got := NewHTTPServerService(srv, timeout).shutdownTimeout; got != defaultShutdownTimeout {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", timeout, got, defaultShutdownTimeout)
		}
	}
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newFakeServer()
	srv.block = true

	var drained atomic.Bool
	var drainedBeforeShutdown atomic.Bool
	srv.onShutdown = func() { drainedBeforeShutdown.Store(drained.Load()) }

	svc := NewHTTPServerService(srv, time.Second).WithDrain(func() { drained.Store(true) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	srv.waitStarted(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if srv.shutdownCalls.Load() != 1 {
		t.Errorf("Shutdown calls = %d, want 1", srv.shutdownCalls.Load())
	}
	if !drainedBeforeShutdown.Load() {
		t.Error("drain hook did not run before Shutdown")
	}
}

func TestHTTPServerServiceStartupFailure(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("bind: address already in use")
	srv := newFakeServer()
	srv.listenErr = bindErr

	err := NewHTTPServerService(srv, time.Second).Serve(context.Background())
	if !errors.Is(err, bindErr) {
		t.Errorf("Serve() = %v, want wrapped %v", err, bindErr)
	}
}

func TestHTTPServerServiceShutdownFailure(t *testing.T) {
	t.Parallel()

	shutdownErr := errors.New("shutdown timeout")
	srv := newFakeServer()
	srv.block = true
	srv.shutdownErr = shutdownErr

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- NewHTTPServerService(srv, time.Second).Serve(ctx) }()

	srv.waitStarted(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() = %v, want %v", err, shutdownErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerServiceUnderSupervisor(t *testing.T) {
	t.Parallel()

	srv := newFakeServer()
	srv.block = true

	sup := suture.New("test", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(srv, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	srv.waitStarted(t)
	cancel()
	<-errCh

	if srv.shutdownCalls.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
