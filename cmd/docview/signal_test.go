package main

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("stays open until stop", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		select {
		case <-ctx.Done():
			t.Fatal("context done before stop()")
		default:
		}

		stop()
		<-ctx.Done()
	})

	t.Run("follows parent", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		if ctx.Err() == nil {
			t.Error("expected context error after parent cancel")
		}
	})
}
