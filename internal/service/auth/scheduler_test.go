package auth

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTimerScheduler_Runs tests that the callback runs and Done is closed.
func TestTimerScheduler_Runs(t *testing.T) {
	t.Parallel()

	var ran atomic.Bool

	task := NewTimerScheduler().AfterFunc(time.Millisecond, func() {
		ran.Store(true)
	})

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}

	assert.True(t, ran.Load())
	assert.False(t, task.Stop())
}

// TestTimerScheduler_Stop tests that a stopped task never runs and still reports Done.
func TestTimerScheduler_Stop(t *testing.T) {
	t.Parallel()

	var ran atomic.Bool

	task := NewTimerScheduler().AfterFunc(time.Hour, func() {
		ran.Store(true)
	})

	assert.True(t, task.Stop())
	assert.False(t, task.Stop())

	<-task.Done()

	assert.False(t, ran.Load())
}

// TestClassify tests the Classify function.
func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OutcomeSuccess, Classify(nil))
	assert.Equal(t, OutcomeUnexpected, Classify(ErrUnexpected))
	assert.Equal(t, "initialization_failed", OutcomeInitFailed.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

// TestEndSessionURL tests the endSessionURL function.
func TestEndSessionURL(t *testing.T) {
	t.Parallel()

	got := endSessionURL("https://login.microsoftonline.com/", "contoso", "a b", "x&y+z", "http://localhost:4200/done?x=1")

	assert.Equal(t,
		"https://login.microsoftonline.com/contoso/oauth2/v2.0/logout"+
			"?id_token_hint=a%20b&logout_hint=x%26y%2Bz"+
			"&post_logout_redirect_uri=http%3A%2F%2Flocalhost%3A4200%2Fdone%3Fx%3D1",
		got)
	assert.NotContains(t, got, "+")
}
