package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// UploadFile posts a blob to the upload endpoint and returns the stored
// file's URL. kind is one of avatar, event, program, docs.
func (c *Client) UploadFile(ctx context.Context, kind, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("type", kind); err != nil {
		return "", fmt.Errorf("failed to write upload type: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind).Msg("upload failed")
		return "", err
	}

	fileURL, ok := body["url"].(string)
	if !ok || fileURL == "" {
		return "", fmt.Errorf("upload response missing url")
	}
	return fileURL, nil
}
