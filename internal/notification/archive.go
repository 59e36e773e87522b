package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

// ObjectPutter is the part of *s3.Client the archive needs.
type ObjectPutter interface {
	PutObject(
		ctx context.Context,
		in *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

func NewS3Client(cfg config.ArchiveConfig) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// ArchiveSender keeps a copy of every delivered message in a bucket.
// Archive failures are logged; delivery has already happened.
type ArchiveSender struct {
	next   Sender
	client ObjectPutter
	bucket string
	log    *zap.Logger
	now    func() time.Time
}

func NewArchiveSender(next Sender, client ObjectPutter, bucket string, log *zap.Logger) *ArchiveSender {
	return &ArchiveSender{
		next:   next,
		client: client,
		bucket: bucket,
		log:    log,
		now:    time.Now,
	}
}

func (s *ArchiveSender) Send(ctx context.Context, to, subject, html string) error {
	if err := s.next.Send(ctx, to, subject, html); err != nil {
		return err
	}

	key := fmt.Sprintf("notifications/%s/%s.html", s.now().UTC().Format("2006/01/02"), uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"to": to,
		},
	})
	if err != nil {
		s.log.Warn("notification archive failed", zap.String("key", key), zap.Error(err))
	}

	return nil
}
