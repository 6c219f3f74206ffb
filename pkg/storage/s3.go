package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Presigner defines the presign operations used by S3Storage.
// *s3.PresignClient satisfies it.
type S3Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config contains configuration for S3 storage.
type S3Config struct {
	Bucket         string `env:"S3_BUCKET_NAME,required"`
	Region         string `env:"REGION,required"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`         // Optional: for S3-compatible services
	BaseURL        string `env:"S3_BASE_URL"`         // Public URL base for stored objects
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
}

// S3Option defines a function that configures S3Storage.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	presigner       S3Presigner
	awsConfig       *aws.Config
	s3ClientOptions []func(*s3.Options)
}

// WithPresigner sets a custom presigner. Useful for testing with mocks.
func WithPresigner(p S3Presigner) S3Option {
	return func(o *s3Options) {
		o.presigner = p
	}
}

// WithAWSConfig reuses an already loaded AWS config.
func WithAWSConfig(cfg aws.Config) S3Option {
	return func(o *s3Options) {
		o.awsConfig = &cfg
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// S3Storage implements Storage for Amazon S3 and S3-compatible services.
// It is safe for concurrent use.
type S3Storage struct {
	presigner S3Presigner
	bucket    string
	baseURL   string
	// origins are the URL prefixes KeyFromURL accepts as this bucket's.
	origins []*url.URL
}

var _ Storage = (*S3Storage)(nil)

// NewS3Storage creates a new S3 storage instance.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	presigner := options.presigner
	if presigner == nil {
		awsConfig, err := loadAWSConfig(ctx, cfg, options)
		if err != nil {
			return nil, err
		}

		client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.Region = cfg.Region
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range options.s3ClientOptions {
				opt(o)
			}
		})
		presigner = s3.NewPresignClient(client)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	origins, err := bucketOrigins(cfg, baseURL)
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		presigner: presigner,
		bucket:    cfg.Bucket,
		baseURL:   baseURL,
		origins:   origins,
	}, nil
}

// bucketOrigins lists the base URL plus, on AWS, the bucket's own
// virtual-hosted endpoints.
func bucketOrigins(cfg S3Config, baseURL string) ([]*url.URL, error) {
	raw := []string{baseURL}
	if cfg.Endpoint == "" {
		raw = append(raw,
			fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.Bucket, cfg.Region),
			fmt.Sprintf("https://%s.s3-%s.amazonaws.com/", cfg.Bucket, cfg.Region),
			fmt.Sprintf("https://%s.s3.amazonaws.com/", cfg.Bucket),
		)
	}

	origins := make([]*url.URL, 0, len(raw))
	for _, r := range raw {
		u, err := url.Parse(r)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: base url %q", ErrInvalidConfig, r)
		}
		origins = append(origins, u)
	}
	return origins, nil
}

func loadAWSConfig(ctx context.Context, cfg S3Config, options *s3Options) (aws.Config, error) {
	hasStatic := cfg.AccessKeyID != "" && cfg.SecretKey != ""

	if options.awsConfig != nil && !hasStatic && options.httpClient == nil {
		return *options.awsConfig, nil
	}

	if options.awsConfig != nil {
		awsConfig := options.awsConfig.Copy()
		if hasStatic {
			awsConfig.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		}
		if options.httpClient != nil {
			awsConfig.HTTPClient = options.httpClient
		}
		return awsConfig, nil
	}

	awsOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if hasStatic {
		awsOptions = append(awsOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				"",
			)),
		)
	}
	if options.httpClient != nil {
		awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}
	return awsConfig, nil
}

// classifyS3Error converts S3 errors to domain-specific errors.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%w: %s operation: %v", ErrPresignFailed, operation, err)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || slices.Contains(strings.Split(key, "/"), "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return key, nil
}

func (s *S3Storage) UploadURL(ctx context.Context, key, contentType string) (*PresignedURL, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadURLExpiry))
	if err != nil {
		return nil, classifyS3Error(err, "presign upload")
	}

	return &PresignedURL{
		URL:    req.URL,
		Method: req.Method,
		Header: req.SignedHeader,
		Expiry: UploadURLExpiry,
	}, nil
}

func (s *S3Storage) DownloadURL(ctx context.Context, key string) (*PresignedURL, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(DownloadURLExpiry))
	if err != nil {
		return nil, classifyS3Error(err, "presign download")
	}

	return &PresignedURL{
		URL:    req.URL,
		Method: req.Method,
		Header: req.SignedHeader,
		Expiry: DownloadURLExpiry,
	}, nil
}

// ObjectURL returns the public URL for an object.
func (s *S3Storage) ObjectURL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}

// KeyFromURL recovers the object key from a public object URL. Only URLs on
// the configured base URL or the bucket's own S3 host are accepted.
func (s *S3Storage) KeyFromURL(objectURL string) (string, error) {
	u, err := url.Parse(objectURL)
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}

	for _, origin := range s.origins {
		if !strings.EqualFold(u.Scheme, origin.Scheme) || !strings.EqualFold(u.Host, origin.Host) {
			continue
		}
		key, ok := strings.CutPrefix(u.Path, origin.Path)
		if !ok || key == "" {
			continue
		}
		return cleanKey(key)
	}
	return "", ErrInvalidURL
}
