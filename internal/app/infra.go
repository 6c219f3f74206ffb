package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/userkit/pkg/config"
	"github.com/dmitrymomot/userkit/pkg/email"
	"github.com/dmitrymomot/userkit/pkg/environment"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/otp"
	"github.com/dmitrymomot/userkit/pkg/ratelimiter"
	"github.com/dmitrymomot/userkit/pkg/redis"
	"github.com/dmitrymomot/userkit/pkg/storage"
)

// infra holds the collaborators built once per process.
type infra struct {
	idp     identity.Provider
	storage storage.Storage
	codes   *otp.Service
	mailer  email.EmailSender
	limiter ratelimiter.RateLimiter
	probes  []func(context.Context) error
	closers []func() error
}

func setupInfra(ctx context.Context, cfg Config, log *slog.Logger) (*infra, error) {
	var (
		cognitoCfg identity.CognitoConfig
		s3Cfg      storage.S3Config
		redisCfg   redis.Config
		emailCfg   email.Config
		otpCfg     otp.Config
	)
	if err := errors.Join(
		config.Load(&cognitoCfg),
		config.Load(&s3Cfg),
		config.Load(&redisCfg),
		config.Load(&emailCfg),
		config.Load(&otpCfg),
	); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cognitoCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAWSConfig, err)
	}

	in := &infra{}

	if in.idp, err = identity.NewCognito(ctx, cognitoCfg, identity.WithAWSConfig(awsCfg)); err != nil {
		return nil, err
	}
	if in.storage, err = storage.NewS3Storage(ctx, s3Cfg, storage.WithAWSConfig(awsCfg)); err != nil {
		return nil, err
	}

	var rdb *goredis.Client
	if redisCfg.Enabled() {
		if rdb, err = redis.Connect(ctx, redisCfg); err != nil {
			return nil, err
		}
		in.closers = append(in.closers, rdb.Close)
		in.probes = append(in.probes, redis.Healthcheck(rdb))
		log.InfoContext(ctx, "using redis for rate limits and one-time codes", logger.Component("app"))
	}

	in.codes = otp.NewService(otpStore(rdb),
		otp.WithConfig(otpCfg),
		otp.WithPurpose("password-reset"),
		otp.WithLogger(log),
	)
	in.mailer = mailer(emailCfg, environment.Parse(cfg.Env), log)

	if cfg.RateLimitEnabled {
		store := rateLimitStore(rdb)
		if closer, ok := store.(interface{ Close() }); ok {
			in.closers = append(in.closers, func() error { closer.Close(); return nil })
		}
		if in.limiter, err = ratelimiter.NewBucket(store, cfg.RateLimit); err != nil {
			return nil, err
		}
	}

	return in, nil
}

func otpStore(rdb *goredis.Client) otp.Store {
	if rdb == nil {
		return otp.NewMemoryStore()
	}
	return otp.NewRedisStore(rdb)
}

func rateLimitStore(rdb *goredis.Client) ratelimiter.Store {
	if rdb == nil {
		return ratelimiter.NewMemoryStore()
	}
	return ratelimiter.NewRedisStore(rdb)
}

// mailer returns Postmark when configured. Outside production it falls back
// to writing messages to disk; in production the one-time-code routes are
// disabled instead.
func mailer(cfg email.Config, env environment.Environment, log *slog.Logger) email.EmailSender {
	if cfg.PostmarkEnabled() {
		sender, err := email.NewPostmarkClient(cfg)
		if err == nil {
			return sender
		}
		log.Error("postmark client disabled", logger.Error(err), logger.Component("app"))
	}
	if env.IsProduction() {
		return nil
	}
	log.Info("emails are written to disk", slog.String("dir", cfg.DevOutputDir), logger.Component("app"))
	return email.NewDevSender(cfg.DevOutputDir)
}
