package gcs

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"highlight-reel/internal/types"
)

type Adapter struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

func NewClient(ctx context.Context) (*storage.Client, error) {
	return storage.NewClient(ctx)
}

func New(client *storage.Client, bucket string) *Adapter {
	return &Adapter{client: client, bucket: bucket, now: time.Now}
}

// Put writes r to the bucket under a collision-resistant key derived from
// keyHint and makes the object publicly readable so the resulting URL works
// for downstream display without auth.
func (a *Adapter) Put(ctx context.Context, r io.Reader, keyHint string) (types.UploadRef, error) {
	key := objectKey(keyHint, a.now(), uuid.NewString())

	obj := a.client.Bucket(a.bucket).Object(key)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return types.UploadRef{}, fmt.Errorf("write gs://%s/%s: %w", a.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return types.UploadRef{}, fmt.Errorf("finalize gs://%s/%s: %w", a.bucket, key, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return types.UploadRef{}, fmt.Errorf("make gs://%s/%s public: %w", a.bucket, key, err)
	}

	return types.UploadRef{
		PublicURL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucket, key),
		StorageURI: fmt.Sprintf("gs://%s/%s", a.bucket, key),
	}, nil
}

// objectKey qualifies the hint with a timestamp and a short uuid. The hint's
// directory part is kept as the object prefix (uploads/, highlights/).
func objectKey(hint string, now time.Time, id string) string {
	dir, base := path.Split(path.Clean("/" + hint))
	dir = dir[1:] // drop the leading slash added for Clean
	if base == "" || base == "." {
		base = "blob"
	}
	ts := now.UTC().Format("20060102_150405")
	return fmt.Sprintf("%s%s_%s_%s", dir, ts, id[:8], base)
}
