// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package server

import (
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

// failingListener always fails Accept, for exercising the backoff
// schedule without real sockets.
type failingListener struct {
	accepts atomic.Int64
}

func (f *failingListener) Accept() (net.Conn, error) {
	f.accepts.Add(1)
	return nil, errors.New("simulated accept failure")
}

func (f *failingListener) Close() error   { return nil }
func (f *failingListener) Addr() net.Addr { return &net.TCPAddr{} }

func TestBoundedListenerCapsConcurrency(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	bl := newBoundedListener(ln, 2, time.Millisecond)
	defer bl.Close()

	for i := 0; i < 3; i++ {
		c, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		defer c.Close()
	}

	c1, err := bl.Accept()
	if err != nil {
		t.Fatalf("accept 1: %v", err)
	}
	c2, err := bl.Accept()
	if err != nil {
		t.Fatalf("accept 2: %v", err)
	}
	defer c2.Close()

	third := make(chan net.Conn, 1)
	go func() {
		c, err := bl.Accept()
		if err == nil {
			third <- c
		}
	}()

	select {
	case c := <-third:
		c.Close()
		t.Fatal("Accept proceeded past the permit pool")
	case <-time.After(100 * time.Millisecond):
	}

	// Releasing one permit lets the blocked Accept through.
	c1.Close()
	select {
	case c := <-third:
		c.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("Accept did not resume after a permit was released")
	}
}

func TestBoundedListenerBackoffExhaustion(t *testing.T) {
	inner := &failingListener{}
	bl := newBoundedListener(inner, 1, time.Millisecond)
	defer bl.Close()

	start := time.Now()
	_, err := bl.Accept()
	elapsed := time.Since(start)

	if !errors.Is(err, ErrAcceptRetriesExhausted) {
		t.Fatalf("Accept() error = %v, want ErrAcceptRetriesExhausted", err)
	}
	// Delays of 1,2,4,8,16,32,64 units are slept before the fatal
	// attempt, so 8 accept calls in total.
	if got := inner.accepts.Load(); got != 8 {
		t.Errorf("accept attempts = %d, want 8", got)
	}
	if elapsed < 127*time.Millisecond {
		t.Errorf("backoff slept %v, want at least 127ms", elapsed)
	}

	// The permit taken for the failed Accept must be back in the pool.
	if got := len(bl.permits); got != 0 {
		t.Errorf("outstanding permits after failure = %d, want 0", got)
	}
}

func TestBoundedListenerClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	bl := newBoundedListener(ln, 1, time.Millisecond)

	if err := bl.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := bl.Accept(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("Accept() after Close error = %v, want net.ErrClosed", err)
	}
	// Second Close must not panic.
	_ = bl.Close()
}

func TestPermitConnReleasesOnce(t *testing.T) {
	var released atomic.Int64
	client, server := net.Pipe()
	defer client.Close()

	pc := &permitConn{Conn: server, release: func() { released.Add(1) }}
	_ = pc.Close()
	_ = pc.Close()

	if got := released.Load(); got != 1 {
		t.Errorf("permit released %d times, want 1", got)
	}
}
