package otp_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/userkit/pkg/otp"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newService(t *testing.T, opts ...otp.Option) (*otp.Service, *clock) {
	t.Helper()

	clk := &clock{now: time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)}
	base := []otp.Option{
		otp.WithBcryptCost(bcrypt.MinCost),
		otp.WithClock(clk.Now),
		otp.WithPurpose("password-reset"),
	}
	return otp.NewService(otp.NewMemoryStore(), append(base, opts...)...), clk
}

func TestService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "Ann@Example.com")
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)

	require.NoError(t, svc.Verify(ctx, " ann@example.com ", code))
}

func TestService_CodeIsSingleUse(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "ann@example.com", code))
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", code), otp.ErrInvalidCode)
}

func TestService_CodeExpires(t *testing.T) {
	t.Parallel()

	svc, clk := newService(t, otp.WithTTL(10*time.Minute))
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	clk.Advance(10 * time.Minute)
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", code), otp.ErrInvalidCode)
}

func TestService_ReissueReplacesCode(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, otp.WithDigits(8))
	ctx := context.Background()

	first, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Len(t, second, 8)

	if first != second {
		assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", first), otp.ErrInvalidCode)
	}
	assert.NoError(t, svc.Verify(ctx, "ann@example.com", second))
}

func TestService_TooManyAttempts(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, otp.WithMaxAttempts(3))
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", wrong), otp.ErrInvalidCode)
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", wrong), otp.ErrInvalidCode)
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", wrong), otp.ErrTooManyAttempts)

	// Locked: even the right code is no longer compared.
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", code), otp.ErrTooManyAttempts)
}

func TestService_ReissueUnlocks(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, otp.WithMaxAttempts(1))
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", wrong), otp.ErrTooManyAttempts)

	code, err = svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.NoError(t, svc.Verify(ctx, "ann@example.com", code))
}

func TestService_ConcurrentGuessesAreBounded(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, otp.WithMaxAttempts(3))
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	var invalid, locked atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := svc.Verify(ctx, "ann@example.com", wrong); {
			case errors.Is(err, otp.ErrInvalidCode):
				invalid.Add(1)
			case errors.Is(err, otp.ErrTooManyAttempts):
				locked.Add(1)
			}
		}()
	}
	wg.Wait()

	// Only the first maxAttempts guesses reach the hash comparison.
	assert.Equal(t, int32(2), invalid.Load())
	assert.Equal(t, int32(48), locked.Load())
	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", code), otp.ErrTooManyAttempts)
}

func TestService_WrongGuessDoesNotRestoreConsumedCode(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guess := wrong
			if i == 10 {
				guess = code
			}
			_ = svc.Verify(ctx, "ann@example.com", guess)
		}()
	}
	wg.Wait()

	// Consumed or locked, depending on where the right guess landed.
	assert.Error(t, svc.Verify(ctx, "ann@example.com", code))
}

func TestMemoryStore_AttemptNeverCreates(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Attempt(ctx, "otp:missing")
	assert.ErrorIs(t, err, otp.ErrNotFound)

	require.NoError(t, store.Put(ctx, "otp:k", otp.Record{Hash: []byte("h"), ExpiresAt: time.Now().Add(time.Minute)}))
	rec, err := store.Attempt(ctx, "otp:k")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Attempts)

	deleted, err := store.Delete(ctx, "otp:k")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.Attempt(ctx, "otp:k")
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestService_SubjectsAreIsolated(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(ctx, "bob@example.com", code), otp.ErrInvalidCode)
	assert.NoError(t, svc.Verify(ctx, "ann@example.com", code))
}

func TestService_ConcurrentVerifyConsumesOnce(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)

	var ok atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Verify(ctx, "ann@example.com", code) == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
}

func TestService_EmptySubject(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	_, err := svc.Issue(context.Background(), "  ")
	assert.ErrorIs(t, err, otp.ErrInvalidSubject)
}

func TestService_Discard(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Discard(ctx, "ann@example.com"))

	assert.ErrorIs(t, svc.Verify(ctx, "ann@example.com", code), otp.ErrInvalidCode)
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	svc := otp.NewService(otp.NewMemoryStore(), otp.WithConfig(otp.Config{TTL: time.Hour}))
	assert.Equal(t, time.Hour, svc.TTL())

	svc = otp.NewService(otp.NewMemoryStore(), otp.WithConfig(otp.Config{}))
	assert.Equal(t, 15*time.Minute, svc.TTL())
}
