package media_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"unimart/internal/media"
)

func newUploader(endpoint string) *media.HostUploader {
	return media.NewHostUploader("demo-cloud", "unsigned-preset", endpoint, 5*time.Second)
}

func TestUploadSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.MultipartForm.Value["upload_preset"]; len(got) != 1 || got[0] != "unsigned-preset" {
			t.Errorf("upload_preset=%v", got)
		}
		fhs := r.MultipartForm.File["file"]
		if len(fhs) != 1 {
			t.Fatalf("file parts=%d", len(fhs))
		}
		if fhs[0].Filename != "upload.jpg" {
			t.Errorf("filename=%q", fhs[0].Filename)
		}
		if ct := fhs[0].Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("content-type=%q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://cdn.test/img/abc.jpg"}`))
	}))
	defer srv.Close()

	url, err := newUploader(srv.URL).Upload(context.Background(), strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://cdn.test/img/abc.jpg" {
		t.Fatalf("url=%q", url)
	}
	if gotPath != "/demo-cloud/image/upload" {
		t.Fatalf("path=%q", gotPath)
	}
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	_, err := newUploader(srv.URL).Upload(context.Background(), strings.NewReader("x"))
	var ue *media.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("want UploadError, got %v", err)
	}
	if ue.Message != "Invalid upload preset" {
		t.Fatalf("message=%q", ue.Message)
	}
	if ue.Status != http.StatusBadRequest {
		t.Fatalf("status=%d", ue.Status)
	}
}

func TestUploadMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newUploader(srv.URL).Upload(context.Background(), strings.NewReader("x"))
	var ue *media.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("want UploadError, got %v", err)
	}
}

func TestUploadNotConfigured(t *testing.T) {
	u := media.NewHostUploader("", "", "https://example.test", 0)
	if _, err := u.Upload(context.Background(), strings.NewReader("x")); !errors.Is(err, media.ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
}

type countingUploader struct {
	calls    int
	failures int
}

func (c *countingUploader) Upload(_ context.Context, image io.Reader) (string, error) {
	// Drain to mimic a real attempt consuming the reader.
	_, _ = io.ReadAll(image)
	c.calls++
	if c.calls <= c.failures {
		return "", &media.UploadError{Status: 502}
	}
	return "https://cdn.test/ok.jpg", nil
}

func TestRetryRecoverThenSucceed(t *testing.T) {
	inner := &countingUploader{failures: 2}
	r := media.WithRetry(inner)
	r.Backoff = time.Millisecond

	url, err := r.Upload(context.Background(), strings.NewReader("payload"))
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://cdn.test/ok.jpg" {
		t.Fatalf("url=%q", url)
	}
	if inner.calls != 3 {
		t.Fatalf("calls=%d want 3", inner.calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	inner := &countingUploader{failures: 10}
	r := media.WithRetry(inner)
	r.Backoff = time.Millisecond

	_, err := r.Upload(context.Background(), strings.NewReader("payload"))
	var ue *media.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("want UploadError, got %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("calls=%d want 3", inner.calls)
	}
}

func TestRetrySkipsConfigurationError(t *testing.T) {
	u := media.NewHostUploader("", "", "https://example.test", 0)
	r := media.WithRetry(u)
	r.Backoff = time.Millisecond

	start := time.Now()
	_, err := r.Upload(context.Background(), strings.NewReader("x"))
	if !errors.Is(err, media.ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("configuration error should not be retried")
	}
}
