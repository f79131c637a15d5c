// Package media uploads listing photos to a Cloudinary-style asset host.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured means the upload destination credentials are missing.
// It is fatal to the current publish and never retried.
var ErrNotConfigured = errors.New("media upload is not configured")

// UploadError carries the remote host's rejection back to the caller.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upload rejected: %s", e.Message)
	}
	return fmt.Sprintf("upload failed with status %d", e.Status)
}

type Uploader interface {
	// Upload pushes one image and returns its public URL.
	Upload(ctx context.Context, image io.Reader) (string, error)
}

// HostUploader posts an unsigned multipart upload to
// {endpoint}/{cloudName}/image/upload and reads secure_url back.
type HostUploader struct {
	CloudName    string
	UploadPreset string
	Endpoint     string
	Client       *http.Client
}

func NewHostUploader(cloudName, uploadPreset, endpoint string, timeout time.Duration) *HostUploader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HostUploader{
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		Endpoint:     strings.TrimRight(endpoint, "/"),
		Client:       &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *HostUploader) Upload(ctx context.Context, image io.Reader) (string, error) {
	if u.CloudName == "" || u.UploadPreset == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="upload.jpg"`}
	hdr["Content-Type"] = []string{"image/jpeg"}
	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", err
	}
	if err := w.WriteField("upload_preset", u.UploadPreset); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/image/upload", u.Endpoint, u.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out uploadResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil {
			msg = out.Error.Message
		}
		return "", &UploadError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil || out.SecureURL == "" {
		return "", &UploadError{Status: resp.StatusCode, Message: "malformed upload response"}
	}
	return out.SecureURL, nil
}
