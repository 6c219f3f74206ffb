package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/userkit/pkg/logger"
)

const keyPrefix = "otp:"

// Service issues and verifies one-time codes for a single purpose.
type Service struct {
	store       Store
	purpose     string
	ttl         time.Duration
	digits      int
	maxAttempts int
	bcryptCost  int
	now         func() time.Time
	random      io.Reader
	log         *slog.Logger
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithDigits(n int) Option {
	return func(s *Service) {
		if n >= 4 && n <= 10 {
			s.digits = n
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithConfig applies the non-zero values of cfg.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		WithTTL(cfg.TTL)(s)
		WithDigits(cfg.Digits)(s)
		WithMaxAttempts(cfg.MaxAttempts)(s)
	}
}

// WithPurpose namespaces stored keys, e.g. "password-reset".
func WithPurpose(purpose string) Option {
	return func(s *Service) {
		s.purpose = purpose
	}
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRandom replaces crypto/rand as the source of code digits.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		s.random = r
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		purpose:     "default",
		ttl:         15 * time.Minute,
		digits:      6,
		maxAttempts: 5,
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
		random:      rand.Reader,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL is how long an issued code stays valid.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a fresh code for subject, replacing any outstanding one.
func (s *Service) Issue(ctx context.Context, subject string) (string, error) {
	key, err := s.key(subject)
	if err != nil {
		return "", err
	}

	code, err := s.generate()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.bcryptCost)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}

	if err := s.store.Put(ctx, key, Record{Hash: hash, ExpiresAt: s.now().Add(s.ttl)}); err != nil {
		return "", err
	}

	s.log.DebugContext(ctx, "one-time code issued",
		logger.Component("otp"),
		slog.String("purpose", s.purpose),
		logger.Email(subject),
	)
	return code, nil
}

// Verify consumes the outstanding code for subject if it matches. Every call
// claims an attempt before the code is compared, so at most maxAttempts
// guesses are ever checked against one issued code. Once they run out the
// record stays locked until it expires or a new code is issued.
func (s *Service) Verify(ctx context.Context, subject, code string) error {
	key, err := s.key(subject)
	if err != nil {
		return err
	}

	rec, err := s.store.Attempt(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}
	if !s.now().Before(rec.ExpiresAt) {
		_, _ = s.store.Delete(ctx, key)
		return ErrInvalidCode
	}
	if rec.Attempts > s.maxAttempts {
		return ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword(rec.Hash, []byte(code)) != nil {
		if rec.Attempts >= s.maxAttempts {
			s.log.WarnContext(ctx, "one-time code locked after failed attempts",
				logger.Component("otp"),
				slog.String("purpose", s.purpose),
				logger.Email(subject),
			)
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	deleted, err := s.store.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		// Consumed concurrently.
		return ErrInvalidCode
	}
	return nil
}

// Discard removes any outstanding code for subject.
func (s *Service) Discard(ctx context.Context, subject string) error {
	key, err := s.key(subject)
	if err != nil {
		return err
	}
	_, err = s.store.Delete(ctx, key)
	return err
}

func (s *Service) key(subject string) (string, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return "", ErrInvalidSubject
	}
	return keyPrefix + s.purpose + ":" + subject, nil
}

func (s *Service) generate() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.digits)), nil)
	n, err := rand.Int(s.random, limit)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}
	return fmt.Sprintf("%0*d", s.digits, n), nil
}
