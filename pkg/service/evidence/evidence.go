package evidence

import (
	"context"
	"errors"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/utils/safe"
)

const signedURLLifetime = 15 * time.Minute

// Service stores control evidence files in a cloud storage bucket. Evidence
// is written once per upload and served to reviewers through short-lived
// signed URLs, never through the API process itself.
type Service struct {
	client *storage.Client
	bucket string
	prefix string
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithObjectPrefix prepends a prefix to every object key
func WithObjectPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = prefix
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*Service, error) {
	if bucket == "" {
		return nil, goerr.New("evidence bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	s := &Service{
		client: client,
		bucket: bucket,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ObjectKey builds the canonical object key for one control's evidence file
func (s *Service) ObjectKey(controlID types.ControlID, filename string) string {
	return s.prefix + "controls/" + controlID.String() + "/" + filename
}

// Put uploads an evidence file and returns its object key
func (s *Service) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to write evidence object", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize evidence object", goerr.V("key", key))
	}

	return nil
}

// SignedURL returns a short-lived download URL for an evidence object
func (s *Service) SignedURL(ctx context.Context, key string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(signedURLLifetime),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign evidence URL", goerr.V("key", key))
	}

	return url, nil
}

// Delete removes an evidence object. Deleting a missing object is a no-op.
func (s *Service) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !isObjectMissing(err) {
		return goerr.Wrap(err, "failed to delete evidence object", goerr.V("key", key))
	}

	return nil
}

// isObjectMissing unwraps the client's not-exist sentinel, which may arrive
// wrapped
func isObjectMissing(err error) bool {
	return errors.Is(err, storage.ErrObjectNotExist)
}

// Close releases the underlying storage client
func (s *Service) Close() error {
	return s.client.Close()
}
