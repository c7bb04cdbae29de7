package object

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/radif/gateway/internal/keys"
	"github.com/radif/gateway/internal/response"
	"github.com/radif/gateway/internal/storage"
	"github.com/radif/gateway/internal/transcode"
)

// Request headers understood by the gateway.
const (
	HeaderKeepOriginalName = "keep-original-file-name"
	HeaderFormFileName     = "form-file-name"
	HeaderObjectKey        = "s3-object-key"
)

// requestSlack covers trailing newlines some clients append to the base64 body.
const requestSlack = 64

// Handler holds HTTP handlers for the object gateway endpoints.
type Handler struct {
	svc             *Service
	urls            *URLIssuer
	maxRequestBytes int64
	log             logrus.FieldLogger
}

// NewHandler creates a new object Handler.
func NewHandler(svc *Service, urls *URLIssuer, log logrus.FieldLogger) *Handler {
	return &Handler{
		svc:             svc,
		urls:            urls,
		maxRequestBytes: transcode.EncodedLen(svc.cfg.MaxBodyBytes) + requestSlack,
		log:             log,
	}
}

// Routes registers the gateway endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/list-all-buckets", h.ListBuckets)
	r.Route("/{bucket}", func(r chi.Router) {
		r.Get("/list-all-objects", h.ListObjects)
		r.Post("/upload-object", h.Upload)
		r.Get("/download-object", h.DownloadByHeader)
		r.Get("/download-object/*", h.Download)
		r.Get("/presigned-url", h.PresignedURL)
	})
}

// ListBuckets godoc
//
//	@Summary		List buckets
//	@Description	Returns every bucket visible to the gateway's credentials, in store order.
//	@Tags			buckets
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=ListBucketsResponse}
//	@Failure		500	{object}	response.Envelope
//	@Router			/list-all-buckets [get]
func (h *Handler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListBuckets(r.Context())
	if err != nil {
		h.fail(w, r, "list buckets", "", err)
		return
	}
	response.OK(w, res)
}

// ListObjects godoc
//
//	@Summary		List objects
//	@Description	Returns key, storage tier, size and bucket for every object, sorted by key descending.
//	@Tags			objects
//	@Produce		json
//	@Param			bucket	path		string	true	"Bucket name"
//	@Success		200		{object}	response.Envelope{data=ListObjectsResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/{bucket}/list-all-objects [get]
func (h *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	bucket, ok := h.pathParam(w, r, "bucket")
	if !ok {
		return
	}
	res, err := h.svc.ListObjects(r.Context(), bucket)
	if err != nil {
		h.fail(w, r, "list objects", "", err)
		return
	}
	response.OK(w, res)
}

// Upload godoc
//
//	@Summary		Upload files
//	@Description	Stores every file part of a base64 encoded multipart body. A part the store rejects is reported in its own result; the response is still 200.
//	@Tags			objects
//	@Accept			plain
//	@Produce		json
//	@Param			bucket					path		string	true	"Bucket name"
//	@Param			Content-Type			header		string	true	"multipart/form-data; boundary=..."
//	@Param			keep-original-file-name	header		bool	false	"Use form-file-name as the key"
//	@Param			form-file-name			header		string	false	"Key to use when keep-original-file-name is true"
//	@Param			body					body		string	true	"Base64 text of the multipart body"
//	@Success		200						{object}	response.Envelope{data=UploadResponse}
//	@Failure		400						{object}	response.Envelope
//	@Failure		500						{object}	response.Envelope
//	@Router			/{bucket}/upload-object [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	bucket, ok := h.pathParam(w, r, "bucket")
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, msgBodyTooLarge)
			return
		}
		response.BadRequest(w, "invalid request body")
		return
	}

	keep, _ := strconv.ParseBool(strings.TrimSpace(r.Header.Get(HeaderKeepOriginalName)))
	res, err := h.svc.Upload(r.Context(), UploadRequest{
		Bucket:      bucket,
		Body:        strings.TrimSpace(string(body)),
		ContentType: r.Header.Get("Content-Type"),
		Directives: keys.Directives{
			KeepOriginalName: keep,
			OverrideName:     r.Header.Get(HeaderFormFileName),
		},
	})
	if err != nil {
		h.fail(w, r, "upload", "", err)
		return
	}
	response.OK(w, res)
}

// Download godoc
//
//	@Summary		Download object
//	@Description	Returns the object as base64 text with the store's content type. The caller's router must base64-decode the body.
//	@Tags			objects
//	@Produce		plain
//	@Param			bucket	path		string	true	"Bucket name"
//	@Param			key		path		string	true	"Object key"
//	@Success		200		{string}	string	"base64 encoded object"
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/{bucket}/download-object/{key} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	bucket, ok := h.pathParam(w, r, "bucket")
	if !ok {
		return
	}
	key, ok := h.pathParam(w, r, "*")
	if !ok {
		return
	}
	h.download(w, r, bucket, key)
}

// DownloadByHeader godoc
//
//	@Summary		Download object by header
//	@Description	Same as download-object/{key}, with the key taken from the s3-object-key header.
//	@Tags			objects
//	@Produce		plain
//	@Param			bucket			path		string	true	"Bucket name"
//	@Param			s3-object-key	header		string	true	"Object key"
//	@Success		200				{string}	string	"base64 encoded object"
//	@Failure		400				{object}	response.Envelope
//	@Failure		500				{object}	response.Envelope
//	@Router			/{bucket}/download-object [get]
func (h *Handler) DownloadByHeader(w http.ResponseWriter, r *http.Request) {
	bucket, ok := h.pathParam(w, r, "bucket")
	if !ok {
		return
	}
	h.download(w, r, bucket, r.Header.Get(HeaderObjectKey))
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request, bucket, key string) {
	res, err := h.svc.Download(r.Context(), bucket, key)
	if err != nil {
		h.fail(w, r, "download", key, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", attachment(res.FileName))
	if res.Base64Encoded {
		w.Header().Set("Content-Transfer-Encoding", "base64")
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.Body)
}

// PresignedURL godoc
//
//	@Summary		Issue presigned URL
//	@Description	Returns a URL granting GET or PUT on one object until expiresAt. ttl defaults to the configured window.
//	@Tags			objects
//	@Produce		json
//	@Param			bucket			path		string	true	"Bucket name"
//	@Param			s3-object-key	header		string	true	"Object key"
//	@Param			verb			query		string	false	"GET or PUT"	default(GET)
//	@Param			ttl				query		string	false	"Validity as a Go duration, e.g. 30m"
//	@Success		200				{object}	response.Envelope{data=PresignedAccess}
//	@Failure		400				{object}	response.Envelope
//	@Failure		500				{object}	response.Envelope
//	@Router			/{bucket}/presigned-url [get]
func (h *Handler) PresignedURL(w http.ResponseWriter, r *http.Request) {
	bucket, ok := h.pathParam(w, r, "bucket")
	if !ok {
		return
	}

	verb := storage.VerbGet
	if v := r.URL.Query().Get("verb"); v != "" {
		parsed, err := storage.ParseVerb(v)
		if err != nil {
			response.BadRequest(w, msgInvalidVerb)
			return
		}
		verb = parsed
	}

	var ttl time.Duration
	if v := r.URL.Query().Get("ttl"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			response.BadRequest(w, msgInvalidTTL)
			return
		}
		ttl = parsed
	}

	key := r.Header.Get(HeaderObjectKey)
	access, err := h.urls.Issue(r.Context(), bucket, key, verb, ttl)
	if err != nil {
		h.fail(w, r, "presign", key, err)
		return
	}
	response.OK(w, access)
}

// pathParam returns an unescaped chi URL parameter, writing a 400 when it cannot be decoded.
func (h *Handler) pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, true
	}
	unescaped, err := url.PathUnescape(v)
	if err != nil {
		response.BadRequest(w, "invalid path parameter")
		return "", false
	}
	return unescaped, true
}

// fail writes err as a JSON error. Server-side failures are logged with their cause.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op, key string, err error) {
	e := AsError(err)
	status := e.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.log.WithError(e.Err).WithFields(logrus.Fields{
			"op":           op,
			"bucket":       chi.URLParam(r, "bucket"),
			"key":          key,
			"kind":         e.Kind.String(),
			"store_status": e.StatusCode,
			"request_id":   chiMiddleware.GetReqID(r.Context()),
		}).Error("request failed")
	}
	response.Error(w, status, e.PublicMessage())
}

func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
