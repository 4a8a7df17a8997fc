package s3

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the HEAD and PUT requests the store issues, keyed by object
// path, without network access.
type fakeS3 struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	puts      int
	headError int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	switch req.Method {
	case http.MethodHead:
		if f.headError != 0 {
			return respond(f.headError, nil), nil
		}
		if body, ok := f.objects[key]; ok {
			resp := respond(http.StatusOK, nil)
			resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
			resp.Header.Set("Content-Type", f.types[key])
			return resp, nil
		}
		return respond(http.StatusNotFound, nil), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if req.Header.Get("X-Amz-Decoded-Content-Length") != "" {
			body = decodeAWSChunked(body)
		}
		f.puts++
		f.objects[key] = body
		f.types[key] = req.Header.Get("Content-Type")
		resp := respond(http.StatusOK, nil)
		resp.Header.Set("ETag", `"etag"`)
		return resp, nil
	}
	return respond(http.StatusNotImplemented, nil), nil
}

func respond(status int, body []byte) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{}}
}

// decodeAWSChunked strips aws-chunked framing (size line, data, trailers).
func decodeAWSChunked(b []byte) []byte {
	var out []byte
	r := bufio.NewReader(bytes.NewReader(b))
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return out
		}
		sizeHex := strings.TrimSpace(strings.SplitN(line, ";", 2)[0])
		n, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil || n == 0 {
			return out
		}
		chunk := make([]byte, n)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return out
		}
		out = append(out, chunk...)
		_, _ = r.ReadString('\n')
	}
}

func newFakeStore(t *testing.T) (*Store, *fakeS3) {
	t.Helper()
	fake := newFakeS3()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String("https://fake.s3.local")
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
	})
	return NewWithClient(client, "documents"), fake
}

func TestStore_UploadStoresOnce(t *testing.T) {
	store, fake := newFakeStore(t)
	ctx := context.Background()

	ref, err := store.Upload(ctx, "PO-1.pdf", "application/pdf", strings.NewReader("purchase order"))
	require.NoError(t, err)
	again, err := store.Upload(ctx, "PO-1.pdf", "application/pdf", strings.NewReader("purchase order"))
	require.NoError(t, err)

	assert.Equal(t, ref, again)
	assert.Equal(t, 1, fake.puts)
	assert.Equal(t, "purchase order", string(fake.objects[ref]))
	assert.Equal(t, "application/pdf", fake.types[ref])
}

func TestStore_UploadSurfacesHeadFailures(t *testing.T) {
	store, fake := newFakeStore(t)
	fake.headError = http.StatusForbidden

	_, err := store.Upload(context.Background(), "PO-1.pdf", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Zero(t, fake.puts)
}

func TestStore_DownloadURL(t *testing.T) {
	store, _ := newFakeStore(t)
	ctx := context.Background()

	ref, err := store.Upload(ctx, "invoice.pdf", "application/pdf", strings.NewReader("invoice"))
	require.NoError(t, err)

	link, err := store.DownloadURL(ctx, ref, time.Minute)
	require.NoError(t, err)
	assert.Contains(t, link, "https://fake.s3.local/documents/"+ref)
	assert.Contains(t, link, "X-Amz-Expires=60")

	_, err = store.DownloadURL(ctx, "../../secrets", time.Minute)
	assert.Error(t, err)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
