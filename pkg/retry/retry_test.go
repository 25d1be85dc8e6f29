package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- Exponential ---

func TestExponential_SuccessImmediate(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{
		InitialInterval: 5 * time.Millisecond,
		MaxElapsedTime:  100 * time.Millisecond,
	})
	assert.NoError(t, err)
}

func TestExponential_RetryThenSuccess(t *testing.T) {
	var calls int
	var onRetryCount int

	err := Exponential(func() error {
		if calls < 3 {
			calls++
			return errors.New("temporary error")
		}
		return nil
	}, ExponentialConfig{
		InitialInterval: time.Millisecond,
		MaxElapsedTime:  time.Second,
		OnRetry:         func(error, time.Duration) { onRetryCount++ },
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, onRetryCount)
}

func TestExponential_RequiresInterval(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{})
	assert.Error(t, err)
}

// --- Constant ---

func TestConstant_SuccessAfterRetries(t *testing.T) {
	var calls int
	err := Constant(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, time.Millisecond, 5)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestConstant_AllAttemptsFail(t *testing.T) {
	sentinel := errors.New("always failing")
	err := Constant(func() error { return sentinel }, time.Millisecond, 3)

	assert.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}
