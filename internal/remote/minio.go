package remote

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
)

// MinioOptions configures the S3-compatible content store client.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string

	// MaxPayloadBytes rejects oversized payloads before any network call.
	// Zero means no limit.
	MaxPayloadBytes int64
}

// MinioContentStore stores payloads in an S3-compatible bucket keyed by the
// payload's SHA-256, which doubles as the content identifier. Re-uploading
// identical content writes the same object, so uploads are idempotent.
type MinioContentStore struct {
	client  *minio.Client
	bucket  string
	region  string
	maxSize int64
	log     logging.Logger
}

// NewMinioContentStore creates a content store client from opts.
func NewMinioContentStore(opts MinioOptions, log logging.Logger) (*MinioContentStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &MinioContentStore{
		client:  client,
		bucket:  opts.Bucket,
		region:  opts.Region,
		maxSize: opts.MaxPayloadBytes,
		log:     log,
	}, nil
}

// EnsureBucket makes sure the content bucket exists before first use.
func (s *MinioContentStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket %s: %w", common.ErrUnreachable, s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Upload writes the payload under its content hash and returns the hash.
func (s *MinioContentStore) Upload(ctx context.Context, payload []byte) (ContentID, error) {
	if s.maxSize > 0 && int64(len(payload)) > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", common.ErrTooLarge, len(payload), s.maxSize)
	}

	cid := HashContentID(payload)

	opts := minio.PutObjectOptions{ContentType: "application/json"}
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(cid), bytes.NewReader(payload), int64(len(payload)), opts)
	if err != nil {
		return "", mapMinioError(err)
	}

	s.log.Debug(ctx, "payload uploaded", "cid", cid, "bytes", len(payload))
	return cid, nil
}

// HashContentID derives the content identifier for a payload.
func HashContentID(payload []byte) ContentID {
	sum := sha256.Sum256(payload)
	return ContentID(hex.EncodeToString(sum[:]))
}

func objectKey(cid ContentID) string {
	return "records/" + string(cid) + ".json"
}

func mapMinioError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "" {
		// no S3 error response: the endpoint never answered
		return fmt.Errorf("%w: %w", common.ErrUnreachable, err)
	}
	if resp.Code == "EntityTooLarge" {
		return fmt.Errorf("%w: %w", common.ErrTooLarge, err)
	}
	return fmt.Errorf("%w: %w", common.ErrRejected, err)
}
