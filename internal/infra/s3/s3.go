package infra_s3

import (
	"context"
	"log"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/humanbelnik/cinegraph/internal/config"
)

const scheme = "s3"

func MustEstablishConn(cfg config.S3) *s3.Client {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		log.Fatal(err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

// PosterResolver turns s3://bucket/key poster urls into presigned GET urls.
// Other urls are returned unchanged.
type PosterResolver struct {
	presign func(ctx context.Context, bucket, key string) (string, error)
	logger  *slog.Logger
}

type ResolverOption func(*PosterResolver)

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *PosterResolver) {
		r.logger = logger
	}
}

func NewPosterResolver(client *s3.Client, ttl time.Duration, opts ...ResolverOption) *PosterResolver {
	presignClient := s3.NewPresignClient(client)
	return newResolver(func(ctx context.Context, bucket, key string) (string, error) {
		req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(ttl))
		if err != nil {
			return "", err
		}
		return req.URL, nil
	}, opts...)
}

func newResolver(presign func(ctx context.Context, bucket, key string) (string, error), opts ...ResolverOption) *PosterResolver {
	r := &PosterResolver{presign: presign, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve never fails: on error the raw url is returned.
func (r *PosterResolver) Resolve(ctx context.Context, raw string) string {
	bucket, key, ok := splitObjectURL(raw)
	if !ok {
		return raw
	}
	signed, err := r.presign(ctx, bucket, key)
	if err != nil {
		r.logger.Warn("failed to presign poster url",
			slog.String("url", raw),
			slog.String("error", err.Error()),
		)
		return raw
	}
	return signed
}

func splitObjectURL(raw string) (bucket, key string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != scheme || u.Host == "" {
		return "", "", false
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", false
	}
	return u.Host, key, true
}

// Passthrough is used when no bucket is configured.
type Passthrough struct{}

func (Passthrough) Resolve(_ context.Context, raw string) string {
	return raw
}
