package clients

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	helper "voc_backend/internals/helpers"
)

// FileClient uploads opaque attachments to the File service. Only the
// returned name/path pair is ever stored locally.
type FileClient interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (*FileInfo, error)
}

type fileClient struct {
	baseURL string
	hc      *http.Client
}

func NewFileClient(baseURL string) FileClient {
	return &fileClient{baseURL: baseURL, hc: newHTTPClient()}
}

func (c *fileClient) Upload(ctx context.Context, fh *multipart.FileHeader) (*FileInfo, error) {
	if err := validateFileName(fh.Filename); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, helper.ErrInvalidFileName
	}
	defer src.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(fh.Filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("file upload failed")
		return nil, helper.ErrExternalServer
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, helper.ErrExternalServer
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, helper.ErrExternalServer
	}

	var info FileInfo
	if err := sonic.Unmarshal(body, &info); err != nil {
		return nil, helper.ErrExternalServer
	}
	return &info, nil
}

// UploadRef uploads fh when present and returns the stored name/path pair,
// or nils when there is no attachment.
func UploadRef(ctx context.Context, fc FileClient, fh *multipart.FileHeader) (*string, *string, error) {
	if fh == nil {
		return nil, nil, nil
	}
	info, err := fc.Upload(ctx, fh)
	if err != nil {
		return nil, nil, err
	}
	return &info.OriginName, &info.StoredFilePath, nil
}

func validateFileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return helper.ErrInvalidFileName
	}
	return nil
}
