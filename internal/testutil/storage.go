package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeStorage is an in-memory stand-in for the storage REST API of a single
// bucket. Signed upload URLs carry the token "tok".
type FakeStorage struct {
	Bucket  string
	FailPut bool

	mu      sync.Mutex
	objects map[string][]byte
	headers map[string]http.Header
}

// NewFakeStorage starts a fake storage server for bucket.
func NewFakeStorage(t *testing.T, bucket string) (*FakeStorage, *httptest.Server) {
	t.Helper()
	f := &FakeStorage{
		Bucket:  bucket,
		objects: map[string][]byte{},
		headers: map[string]http.Header{},
	}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	return f, server
}

// Object returns the stored bytes for key.
func (f *FakeStorage) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	return data, ok
}

// LastHeaders returns the headers of the last "put" or "sign" request.
func (f *FakeStorage) LastHeaders(op string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers[op]
}

func (f *FakeStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		public = "/storage/v1/object/public/" + f.Bucket + "/"
		sign   = "/storage/v1/object/upload/sign/" + f.Bucket + "/"
		object = "/storage/v1/object/" + f.Bucket + "/"
		bucket = "/storage/v1/object/" + f.Bucket
	)

	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(path, public):
		data, ok := f.objects[strings.TrimPrefix(path, public)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)

	case r.Method == http.MethodPost && strings.HasPrefix(path, sign):
		key := strings.TrimPrefix(path, sign)
		f.headers["sign"] = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "/object/upload/sign/" + f.Bucket + "/" + key + "?token=tok"})

	case r.Method == http.MethodPut && strings.HasPrefix(path, sign):
		if r.URL.Query().Get("token") != "tok" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid signature"}`))
			return
		}
		data, _ := io.ReadAll(r.Body)
		f.objects[strings.TrimPrefix(path, sign)] = data

	case r.Method == http.MethodPost && strings.HasPrefix(path, object):
		if f.FailPut {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"statusCode":"413","error":"Payload too large","message":"The object exceeded the maximum allowed size"}`))
			return
		}
		key := strings.TrimPrefix(path, object)
		data, _ := io.ReadAll(r.Body)
		f.objects[key] = data
		f.headers["put"] = r.Header.Clone()
		_, _ = w.Write([]byte(`{"Key":"` + f.Bucket + `/` + key + `"}`))

	case r.Method == http.MethodDelete && path == bucket:
		var body struct {
			Prefixes []string `json:"prefixes"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, p := range body.Prefixes {
			delete(f.objects, p)
		}
		_, _ = w.Write([]byte(`[]`))

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}
