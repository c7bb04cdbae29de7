package object

import (
	"context"
	"time"

	"github.com/radif/gateway/internal/storage"
)

// URLIssuer hands out presigned URLs so callers can move bytes without going through the gateway.
type URLIssuer struct {
	store storage.Store
	cfg   Config
	now   func() time.Time
}

// NewURLIssuer creates a URLIssuer using cfg's default and maximum ttl.
func NewURLIssuer(store storage.Store, cfg Config) *URLIssuer {
	return &URLIssuer{store: store, cfg: cfg, now: time.Now}
}

// Issue requests a URL granting verb on bucket/key until now+ttl.
// A zero ttl selects the configured default.
func (u *URLIssuer) Issue(ctx context.Context, bucket, key string, verb storage.Verb, ttl time.Duration) (*PresignedAccess, error) {
	if blank(bucket) {
		return nil, clientError(msgBucketRequired)
	}
	if blank(key) {
		return nil, clientError(msgKeyRequired)
	}
	if verb != storage.VerbGet && verb != storage.VerbPut {
		return nil, clientError(msgInvalidVerb)
	}
	if ttl == 0 {
		ttl = u.cfg.PresignTTL
	}
	if ttl < time.Second || ttl > u.cfg.PresignMaxTTL {
		return nil, clientError(msgInvalidTTL)
	}

	expiresAt := u.now().Add(ttl)
	url, err := u.store.Presign(ctx, bucket, key, verb, ttl)
	if err != nil {
		return nil, storeError(err)
	}
	return &PresignedAccess{
		Bucket:    bucket,
		Key:       key,
		Verb:      verb,
		URL:       url,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}
