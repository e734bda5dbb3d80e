/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerFanOut(t *testing.T) {
	b := newBroker()

	first, cancelFirst := b.Subscribe("ABCD")
	second, cancelSecond := b.Subscribe("ABCD")
	defer cancelFirst()
	defer cancelSecond()

	b.Publish("ABCD", []byte("hello"))

	for _, ch := range []<-chan []byte{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, []byte("hello"), got)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for payload")
		}
	}
}

func TestBrokerTopicsAreIsolated(t *testing.T) {
	b := newBroker()

	ch, cancel := b.Subscribe("ABCD")
	defer cancel()

	b.Publish("WXYZ", []byte("elsewhere"))

	select {
	case got := <-ch:
		t.Fatalf("unexpected payload %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerCancelClosesChannel(t *testing.T) {
	b := newBroker()

	ch, cancel := b.Subscribe("ABCD")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after the last cancel must not panic.
	b.Publish("ABCD", []byte("late"))

	// Cancel is safe to call twice.
	cancel()
}

func TestBrokerSkipsSlowSubscribers(t *testing.T) {
	b := newBroker()

	slow, cancelSlow := b.Subscribe("ABCD")
	fast, cancelFast := b.Subscribe("ABCD")
	defer cancelSlow()
	defer cancelFast()

	// Overflow the slow subscriber's buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			b.Publish("ABCD", []byte{byte(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The fast subscriber still drains everything its buffer held.
	require.NotEmpty(t, fast)
	for len(fast) > 0 {
		<-fast
	}
	for len(slow) > 0 {
		<-slow
	}
}
