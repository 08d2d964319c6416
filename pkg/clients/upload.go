// Package clients implements the HTTP collaborators of the editor: the
// per-type upload endpoint and the certification-body lookup service.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/staging"
)

// UploadClient talks to the attachment upload endpoint. It implements
// staging.Uploader.
type UploadClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewUploadClient creates an upload client for the given endpoint base
// URL.
func NewUploadClient(baseURL string, client *http.Client, logger *slog.Logger) *UploadClient {
	if client == nil {
		client = http.DefaultClient
	}

	return &UploadClient{
		baseURL: baseURL,
		client:  client,
		logger:  logger.With("module", "clients.upload"),
	}
}

type uploadResponse struct {
	Success bool     `json:"success"`
	Refs    []string `json:"refs"`
	Message string   `json:"message,omitempty"`
}

// UploadFile transmits one file as multipart form data. The main image
// goes to a single-file field, other types to the multi-file field, which
// is what the endpoint expects for each.
func (c *UploadClient) UploadFile(ctx context.Context, uploadType models.UploadType, file staging.File) (string, error) {
	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	fieldName := "files"
	if uploadType == models.UploadTypeMainImage {
		fieldName = "file"
	}

	part, err := writer.CreateFormFile(fieldName, file.Name)
	if err != nil {
		return "", c.transportError(file.Name, err)
	}

	if _, err := io.Copy(part, file.Content); err != nil {
		return "", c.transportError(file.Name, err)
	}

	if err := writer.Close(); err != nil {
		return "", c.transportError(file.Name, err)
	}

	endpoint := fmt.Sprintf("%s/uploads/%s", c.baseURL, uploadType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", c.transportError(file.Name, err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", c.transportError(file.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &staging.UploadError{
			Kind:     staging.ClassifyStatus(resp.StatusCode),
			FileName: file.Name,
			Message:  fmt.Sprintf("upload endpoint returned %d", resp.StatusCode),
		}
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", c.transportError(file.Name, err)
	}

	if !parsed.Success || len(parsed.Refs) == 0 {
		return "", &staging.UploadError{
			Kind:     staging.UploadErrServerUnavailable,
			FileName: file.Name,
			Message:  fmt.Sprintf("upload endpoint reported failure: %s", parsed.Message),
		}
	}

	return parsed.Refs[0], nil
}

// DeleteRemote asks the backend to remove a previously persisted asset of
// a saved parent record.
func (c *UploadClient) DeleteRemote(ctx context.Context, uploadType models.UploadType, remoteRef, parentID string) error {
	endpoint := fmt.Sprintf("%s/uploads/%s?ref=%s&parent=%s",
		c.baseURL, uploadType, url.QueryEscape(remoteRef), url.QueryEscape(parentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("delete remote asset: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete remote asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete remote asset: endpoint returned %d", resp.StatusCode)
	}

	return nil
}

func (c *UploadClient) transportError(fileName string, err error) *staging.UploadError {
	return &staging.UploadError{
		Kind:     staging.ClassifyTransport(err),
		FileName: fileName,
		Message:  err.Error(),
		Err:      err,
	}
}
