package object

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/radif/gateway/internal/keys"
	"github.com/radif/gateway/internal/parts"
	"github.com/radif/gateway/internal/storage"
	"github.com/radif/gateway/internal/transcode"
)

// Transfer directions reported to the Observer.
const (
	DirectionUpload   = "upload"
	DirectionDownload = "download"
)

// Observer receives transfer telemetry.
type Observer interface {
	RecordPart(outcome string, size int64)
	RecordTransfer(direction string, n int64)
}

type nopObserver struct{}

func (nopObserver) RecordPart(string, int64)     {}
func (nopObserver) RecordTransfer(string, int64) {}

// Service orchestrates store access for the gateway. It holds no per-request state.
type Service struct {
	store    storage.Store
	keys     *keys.Policy
	cfg      Config
	observer Observer
	log      logrus.FieldLogger
}

// Option customizes a Service.
type Option func(*Service)

// WithObserver reports part outcomes and transferred bytes to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the logger used for per-part failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a Service. cfg is expected to be validated.
func NewService(store storage.Store, policy *keys.Policy, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:    store,
		keys:     policy,
		cfg:      cfg,
		observer: nopObserver{},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListBuckets returns bucket names in store order.
func (s *Service) ListBuckets(ctx context.Context) (*ListBucketsResponse, error) {
	names, err := s.store.ListBuckets(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if names == nil {
		names = []string{}
	}
	return &ListBucketsResponse{Buckets: names}, nil
}

// ListObjects returns every object in bucket sorted by key, descending.
func (s *Service) ListObjects(ctx context.Context, bucket string) (*ListObjectsResponse, error) {
	if blank(bucket) {
		return nil, clientError(msgBucketRequired)
	}

	infos, err := s.store.ListObjects(ctx, bucket)
	if err != nil {
		return nil, storeError(err)
	}

	objects := make([]ObjectSummary, 0, len(infos))
	for _, info := range infos {
		tier := info.StorageClass
		if tier == "" {
			tier = defaultStorageClass
		}
		owner := info.Bucket
		if owner == "" {
			owner = bucket
		}
		objects = append(objects, ObjectSummary{Key: info.Key, Storage: tier, Size: info.Size, Bucket: owner})
	}
	slices.SortStableFunc(objects, func(a, b ObjectSummary) int {
		return strings.Compare(b.Key, a.Key)
	})
	return &ListObjectsResponse{Objects: objects}, nil
}

// filePart is a fully read part with its derived key.
type filePart struct {
	fileName    string
	contentType string
	key         string
	data        []byte
}

// Upload decodes req.Body and writes every file part to the store. A failed
// write is recorded in that part's result and does not stop later parts.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	if blank(req.Bucket) {
		return nil, clientError(msgBucketRequired)
	}
	if blank(req.ContentType) {
		return nil, clientError(msgContentTypeMissing)
	}
	boundary, err := parts.Boundary(req.ContentType)
	if err != nil {
		return nil, clientError(msgBoundaryMissing)
	}
	raw, err := transcode.Decode(req.Body)
	if err != nil {
		return nil, decodeError(msgInvalidBase64, err)
	}
	dec, err := parts.NewDecoder(bytes.NewReader(raw), boundary, s.cfg.MaxBodyBytes)
	if err != nil {
		return nil, clientError(msgBoundaryMissing)
	}

	var results []UploadResult
	if s.cfg.UploadConcurrency > 1 {
		results, err = s.uploadParallel(ctx, req, dec)
	} else {
		results, err = s.uploadSequential(ctx, req, dec)
	}
	if err != nil {
		return nil, err
	}

	resp := &UploadResponse{Results: results}
	for _, r := range results {
		if r.Status == StatusStored {
			resp.Stored++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}

// uploadSequential holds one part in memory at a time.
func (s *Service) uploadSequential(ctx context.Context, req UploadRequest, dec *parts.Decoder) ([]UploadResult, error) {
	var results []UploadResult
	namer := newNamer(s.keys, req.Directives)
	for {
		if err := ctx.Err(); err != nil {
			return nil, internalError(err)
		}
		fp, err := readPart(dec, namer)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		results = append(results, s.put(ctx, req.Bucket, fp))
	}
	if len(results) == 0 {
		return nil, clientError(msgNoFileContent)
	}
	return results, nil
}

// uploadParallel buffers the whole body's parts, then writes them with bounded concurrency.
func (s *Service) uploadParallel(ctx context.Context, req UploadRequest, dec *parts.Decoder) ([]UploadResult, error) {
	var pending []filePart
	namer := newNamer(s.keys, req.Directives)
	for {
		fp, err := readPart(dec, namer)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pending = append(pending, fp)
	}
	if len(pending) == 0 {
		return nil, clientError(msgNoFileContent)
	}

	results := make([]UploadResult, len(pending))
	var g errgroup.Group
	g.SetLimit(s.cfg.UploadConcurrency)
	for i, fp := range pending {
		i, fp := i, fp
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = s.put(ctx, req.Bucket, fp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, internalError(err)
	}
	return results, nil
}

// readPart drains the next file part. It returns io.EOF when none remain.
func readPart(dec *parts.Decoder, namer *namer) (filePart, error) {
	p, err := dec.Next()
	if err == io.EOF {
		return filePart{}, io.EOF
	}
	if err != nil {
		return filePart{}, partError(err)
	}
	data, err := io.ReadAll(p)
	if err != nil {
		return filePart{}, partError(err)
	}
	ct := p.ContentType
	if ct == "" {
		ct = defaultContentType
	}
	return filePart{
		fileName:    p.FileName,
		contentType: ct,
		key:         namer.next(p.FileName),
		data:        data,
	}, nil
}

func partError(err error) *Error {
	if errors.Is(err, parts.ErrTooLarge) {
		return clientError(msgBodyTooLarge)
	}
	return decodeError(msgMalformedMultipart, err)
}

// put writes one part and converts the outcome into its result.
func (s *Service) put(ctx context.Context, bucket string, fp filePart) UploadResult {
	res := UploadResult{
		FileName:    fp.fileName,
		Key:         fp.key,
		ContentType: fp.contentType,
		Size:        int64(len(fp.data)),
	}

	out, err := s.store.PutObject(ctx, bucket, fp.key, fp.contentType, bytes.NewReader(fp.data), res.Size)
	switch {
	case err == nil && (out.StatusCode == 0 || out.StatusCode == http.StatusOK):
		res.Status = StatusStored
		res.StatusCode = http.StatusOK
		s.observer.RecordTransfer(DirectionUpload, res.Size)
	case err == nil:
		res.Status = StatusRejected
		res.StatusCode = out.StatusCode
		res.Message = msgStoreFailed
	case storage.StatusCode(err) != 0:
		res.Status = StatusRejected
		res.StatusCode = storage.StatusCode(err)
		res.Message = msgStoreFailed
	default:
		res.Status = StatusFailed
		res.Message = msgInternal
	}

	if res.Status != StatusStored {
		s.log.WithError(err).WithFields(logrus.Fields{
			"bucket":      bucket,
			"key":         fp.key,
			"file_name":   fp.fileName,
			"status_code": res.StatusCode,
		}).Warn("upload part not stored")
	}
	s.observer.RecordPart(string(res.Status), res.Size)
	return res
}

// Download reads one object and returns it base64 encoded with the store's content type.
func (s *Service) Download(ctx context.Context, bucket, key string) (*DownloadResponse, error) {
	if blank(bucket) {
		return nil, clientError(msgBucketRequired)
	}
	if blank(key) {
		return nil, clientError(msgKeyRequired)
	}

	obj, err := s.store.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, storeError(err)
	}
	defer obj.Body.Close()

	if obj.Size > s.cfg.MaxBodyBytes {
		return nil, clientError(msgObjectTooLarge)
	}
	text, n, err := transcode.EncodeReader(obj.Body, s.cfg.MaxBodyBytes)
	if errors.Is(err, transcode.ErrTooLarge) {
		return nil, clientError(msgObjectTooLarge)
	}
	if err != nil {
		return nil, storeError(err)
	}
	s.observer.RecordTransfer(DirectionDownload, n)

	ct := obj.ContentType
	if ct == "" {
		ct = defaultContentType
	}
	return &DownloadResponse{
		ContentType:   ct,
		FileName:      key,
		Body:          text,
		Size:          n,
		Base64Encoded: true,
	}, nil
}

// namer derives keys for one request and keeps them distinct within it.
type namer struct {
	policy *keys.Policy
	dirs   keys.Directives
	seen   map[string]int
}

func newNamer(policy *keys.Policy, dirs keys.Directives) *namer {
	return &namer{policy: policy, dirs: dirs, seen: make(map[string]int)}
}

func (n *namer) next(fileName string) string {
	key := n.policy.Derive(fileName, n.dirs)
	if n.seen[key] == 0 {
		n.seen[key] = 1
		return key
	}
	for i := n.seen[key]; ; i++ {
		alt := keys.Disambiguate(key, i)
		if n.seen[alt] == 0 {
			n.seen[key] = i + 1
			n.seen[alt] = 1
			return alt
		}
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
