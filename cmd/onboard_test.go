package cmd

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestOnboardStopsWhenInputCloses(t *testing.T) {
	devnull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer devnull.Close()

	orig := os.Stdin
	os.Stdin = devnull
	defer func() { os.Stdin = orig }()

	done := make(chan error, 1)
	go func() { done <- onboardCmd.RunE(onboardCmd, nil) }()

	select {
	case err := <-done:
		if !errors.Is(err, errInputClosed) {
			t.Fatalf("expected the input-closed error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("onboard kept running after its input closed")
	}
}
