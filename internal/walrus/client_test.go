package walrus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload_NewlyCreated(t *testing.T) {
	var gotBody, gotQuery, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		assert.Equal(t, "/v1/store", r.URL.Path)
		w.Write([]byte(`{"newlyCreated":{"blobObject":{"blobId":"blob-1","storage":{"endEpoch":42}},"cost":1500}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.URL, nil)
	res, err := c.Upload(context.Background(), strings.NewReader("hello"), 3)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "epochs=3", gotQuery)
	assert.Equal(t, "hello", gotBody)
	assert.Equal(t, UploadResult{BlobID: "blob-1", EndEpoch: 42, Cost: 1500}, res)
}

func TestClient_Upload_AlreadyCertified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "epochs=5", r.URL.RawQuery)
		w.Write([]byte(`{"alreadyCertified":{"blobId":"blob-2","endEpoch":7}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, nil)
	res, err := c.Upload(context.Background(), strings.NewReader("x"), 0)
	require.NoError(t, err)
	assert.Equal(t, UploadResult{BlobID: "blob-2", EndEpoch: 7, Cost: 0}, res)
}

func TestClient_Upload_UnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"somethingElse":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, nil)
	_, err := c.Upload(context.Background(), strings.NewReader("x"), 1)
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestClient_Upload_PublisherError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, nil)
	_, err := c.Upload(context.Background(), strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_FetchAndFetchJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/blob-json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"rating":4}`))
		case "/v1/blob-text":
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("plain"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, nil)

	blob, err := c.Fetch(context.Background(), "blob-text")
	require.NoError(t, err)
	body, _ := io.ReadAll(blob.Body)
	blob.Close()
	assert.Equal(t, "plain", string(body))
	assert.Equal(t, "text/plain", blob.ContentType)

	var doc struct {
		Rating int `json:"rating"`
	}
	require.NoError(t, c.FetchJSON(context.Background(), "blob-json", &doc))
	assert.Equal(t, 4, doc.Rating)

	_, err = c.Fetch(context.Background(), "missing")
	require.Error(t, err)
}

func TestClient_URL(t *testing.T) {
	c := NewClient("https://pub.example", "https://agg.example/", nil)
	assert.Equal(t, "https://agg.example/v1/abc", c.URL("abc"))
}

func TestClient_Ping(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ok.Close()
	require.NoError(t, NewClient(ok.URL, ok.URL, nil).Ping(context.Background()))

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()
	require.Error(t, NewClient(bad.URL, bad.URL, nil).Ping(context.Background()))
}
