package object

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/radif/gateway/internal/keys"
	"github.com/radif/gateway/internal/storage"
	"github.com/radif/gateway/internal/transcode"
)

type storedObject struct {
	data        []byte
	contentType string
	class       string
}

type presignCall struct {
	bucket, key string
	verb        storage.Verb
	expiry      time.Duration
}

// fakeStore is an in-memory storage.Store with per-method and per-key failure injection.
type fakeStore struct {
	mu       sync.Mutex
	buckets  []string
	objects  map[string]map[string]storedObject
	failOn   map[string]error
	failKey  map[string]error
	calls    map[string]int
	presigns []presignCall
}

func newFakeStore(buckets ...string) *fakeStore {
	f := &fakeStore{
		buckets: buckets,
		objects: make(map[string]map[string]storedObject),
		failOn:  make(map[string]error),
		failKey: make(map[string]error),
		calls:   make(map[string]int),
	}
	for _, b := range buckets {
		f.objects[b] = make(map[string]storedObject)
	}
	return f
}

func (f *fakeStore) record(method, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if err := f.failOn[method]; err != nil {
		return err
	}
	return f.failKey[key]
}

func (f *fakeStore) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStore) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeStore) put(bucket, key, contentType, class string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects[bucket] == nil {
		f.objects[bucket] = make(map[string]storedObject)
	}
	f.objects[bucket][key] = storedObject{data: data, contentType: contentType, class: class}
}

func (f *fakeStore) ListBuckets(_ context.Context) ([]string, error) {
	if err := f.record("ListBuckets", ""); err != nil {
		return nil, err
	}
	return append([]string(nil), f.buckets...), nil
}

func (f *fakeStore) ListObjects(_ context.Context, bucket string) ([]storage.ObjectInfo, error) {
	if err := f.record("ListObjects", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.ObjectInfo
	for key, obj := range f.objects[bucket] {
		out = append(out, storage.ObjectInfo{Key: key, StorageClass: obj.class, Size: int64(len(obj.data)), Bucket: bucket})
	}
	return out, nil
}

func (f *fakeStore) PutObject(_ context.Context, bucket, key, contentType string, data io.Reader, size int64) (storage.PutResult, error) {
	if err := f.record("PutObject", key); err != nil {
		return storage.PutResult{}, err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return storage.PutResult{}, err
	}
	if int64(len(b)) != size {
		return storage.PutResult{}, fmt.Errorf("size mismatch: declared %d, read %d", size, len(b))
	}
	f.put(bucket, key, contentType, "", b)
	return storage.PutResult{StatusCode: http.StatusOK, ETag: "etag-" + key}, nil
}

func (f *fakeStore) GetObject(_ context.Context, bucket, key string) (*storage.Object, error) {
	if err := f.record("GetObject", key); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[bucket][key]
	if !ok {
		return nil, &storage.Error{Op: "get object", Bucket: bucket, Key: key, StatusCode: http.StatusNotFound, Code: "NoSuchKey"}
	}
	return &storage.Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (f *fakeStore) Presign(_ context.Context, bucket, key string, verb storage.Verb, expiry time.Duration) (string, error) {
	if err := f.record("Presign", key); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presigns = append(f.presigns, presignCall{bucket: bucket, key: key, verb: verb, expiry: expiry})
	return fmt.Sprintf("https://store.test/%s/%s?verb=%s&expires=%d", bucket, key, verb, int64(expiry.Seconds())), nil
}

var _ storage.Store = (*fakeStore)(nil)

// formPart is one section of a test multipart body. An empty fileName makes it a plain field.
type formPart struct {
	field       string
	fileName    string
	contentType string
	data        []byte
}

const testBoundary = "gateway-test-boundary"

// multipartBody returns the base64 text of a multipart body and its content type header.
func multipartBody(t *testing.T, parts ...formPart) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.SetBoundary(testBoundary))
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		disposition := fmt.Sprintf(`form-data; name=%q`, p.field)
		if p.fileName != "" {
			disposition += fmt.Sprintf(`; filename=%q`, p.fileName)
		}
		h.Set("Content-Disposition", disposition)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return transcode.Encode(buf.Bytes()), w.FormDataContentType()
}

// sequentialIDs returns an id generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

func newTestService(store storage.Store, cfg Config, opts ...Option) *Service {
	return NewService(store, keys.NewWithIDs(sequentialIDs()), cfg, opts...)
}
