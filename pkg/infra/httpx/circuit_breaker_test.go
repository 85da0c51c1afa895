package httpx

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_Execute(t *testing.T) {
	breaker := NewCircuitBreaker("gemini", 30*time.Second, 3)

	assert.NoError(t, breaker.Execute(func() error { return nil }))

	err := breaker.Execute(func() error { return errors.New("quota exceeded") })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCircuitBreaker_RecoversPanics(t *testing.T) {
	for _, v := range []interface{}{"boom", errors.New("boom"), 42} {
		breaker := NewCircuitBreaker("panic", 30*time.Second, 3)
		err := breaker.Execute(func() error { panic(v) })

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "panic recovered:")
	}
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker := NewCircuitBreaker("openai", 30*time.Second, 2)
	failing := func() error { return errors.New("upstream 503") }

	assert.Error(t, breaker.Execute(failing))
	assert.Error(t, breaker.Execute(failing))
	assert.Equal(t, "open", breaker.State())

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	breaker := NewCircuitBreaker("anthropic", 50*time.Millisecond, 1)

	assert.Error(t, breaker.Execute(func() error { return errors.New("trip") }))
	time.Sleep(100 * time.Millisecond)

	assert.NoError(t, breaker.Execute(func() error { return nil }))
	assert.Equal(t, "closed", breaker.State())
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	breaker := NewCircuitBreaker("concurrent", 30*time.Second, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			err := breaker.Execute(func() error {
				if id%2 == 0 {
					return nil
				}
				return errors.New("failure")
			})
			if err != nil {
				assert.Contains(t, err.Error(), "concurrent")
			}
		}(i)
	}
	wg.Wait()
}
