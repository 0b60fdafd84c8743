package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/farhanrmdhni/portfolio-backend/config"
	"github.com/farhanrmdhni/portfolio-backend/errs"
)

// projectImagePrefix namespaces project screenshots inside their bucket.
const projectImagePrefix = "portfolio-images"

// Client wraps the S3-compatible storage API of the hosted backend.
// Supabase Storage exposes each bucket through an S3 endpoint, so the
// standard AWS client with a custom endpoint and path-style addressing
// is all that is needed.
type Client struct {
	s3            *s3.Client
	projectBucket string
	profileBucket string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewClient builds the storage client from environment configuration.
// When the endpoint or credentials are absent it returns an unconfigured
// client whose operations fail with a storage-not-configured error, so
// the server still starts and the frontend can show its setup notice.
func NewClient(ctx context.Context, c map[string]string) *Client {
	logger := log.With().Str("serviceName", "storage").Logger()

	client := &Client{
		projectBucket: config.GetString(c, "STORAGE_PROJECT_BUCKET", "portofolios"),
		profileBucket: config.GetString(c, "STORAGE_PROFILE_BUCKET", "profile-photos"),
		publicBaseURL: strings.TrimSuffix(config.GetString(c, "STORAGE_PUBLIC_URL", ""), "/"),
		logger:        logger,
	}

	endpoint := config.GetString(c, "STORAGE_ENDPOINT", "")
	accessKey := config.GetString(c, "STORAGE_ACCESS_KEY", "")
	secretKey := config.GetString(c, "STORAGE_SECRET_KEY", "")
	if endpoint == "" || accessKey == "" || secretKey == "" {
		logger.Warn().Msg("Object storage not configured, uploads disabled")
		return client
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(config.GetString(c, "STORAGE_REGION", "us-east-1")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load storage credentials, uploads disabled")
		return client
	}

	client.s3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	if client.publicBaseURL == "" {
		client.publicBaseURL = strings.TrimSuffix(endpoint, "/")
	}
	return client
}

// Configured reports whether uploads can be performed.
func (c *Client) Configured() bool {
	return c != nil && c.s3 != nil
}

// UploadImage stores one project screenshot under a freshly generated
// object name and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := projectImagePrefix + "/" + ObjectName(filename)
	return c.putObject(ctx, c.projectBucket, key, contentType, body)
}

// UploadProfilePhoto stores the profile photo at the bucket root.
// Overwrites are allowed, a new generated name is used per upload anyway.
func (c *Client) UploadProfilePhoto(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectName(filename)
	return c.putObject(ctx, c.profileBucket, key, contentType, body)
}

func (c *Client) putObject(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	if !c.Configured() {
		return "", errs.NewStorageNotConfiguredError()
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		if isBucketMissing(err) {
			return "", errs.NewBucketMissingError(bucket)
		}
		return "", errs.NewUploadError(key, err)
	}

	publicURL := c.PublicURL(bucket, key)
	c.logger.Info().Str("bucket", bucket).Str("key", key).Msg("Object uploaded")
	return publicURL, nil
}

// DeleteImage removes a previously uploaded project image given its
// public URL. Used for compensating cleanup when a gallery commit fails
// halfway; failures are logged and swallowed by the caller.
func (c *Client) DeleteImage(ctx context.Context, publicURL string) error {
	if !c.Configured() {
		return errs.NewStorageNotConfiguredError()
	}

	key := objectKeyFromURL(publicURL, c.projectBucket)
	if key == "" {
		return errs.BadRequest("URL does not point into the project bucket")
	}

	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.projectBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return err
	}

	c.logger.Info().Str("bucket", c.projectBucket).Str("key", key).Msg("Object deleted")
	return nil
}

// PublicURL resolves the publicly reachable URL for an object.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, bucket, key)
}

// ObjectName generates a collision-resistant object name from the
// original filename: unix-millis timestamp plus a random component,
// keeping the original extension.
func ObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), random, ext)
}

// objectKeyFromURL strips the public base and bucket segment from an
// object URL, leaving the key. Returns "" when the URL does not contain
// the bucket segment.
func objectKeyFromURL(publicURL, bucket string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}

	// Path looks like /<bucket>/portfolio-images/<name>.<ext>, possibly
	// with extra leading segments depending on the storage host.
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	for i, part := range parts {
		if part == bucket && i+1 < len(parts) {
			return strings.Join(parts[i+1:], "/")
		}
	}
	return ""
}

func isBucketMissing(err error) bool {
	var noBucket *s3types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket"
}
