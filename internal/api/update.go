package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/nao1215/relatorio/internal/model"
	"github.com/nao1215/relatorio/internal/page"
)

// File is a file part of a multipart submission.
type File struct {
	// Field is the form field name.
	Field string

	// Path is the local file path.
	Path string
}

// Submission is the body of an update form post.
type Submission struct {
	// Fields are the text fields, including hidden fields of the rendered form.
	Fields map[string]string

	// Files are the attached images.
	Files []File

	// Referer is the page the form was read from. Django checks it on HTTPS.
	Referer string
}

// FetchPage retrieves and parses a server-rendered page.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*page.Document, error) {
	target, err := c.resolve(pageURL)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	parser, err := page.NewParser(target)
	if err != nil {
		return nil, err
	}
	return parser.Parse(bytes.NewReader(body))
}

// SubmitUpdate posts an update form to actionURL.
// The server's {"success": false} answer is returned as a response, not an
// error; errors are reserved for transport failures, non-2xx statuses and
// undecodable bodies.
func (c *Client) SubmitUpdate(ctx context.Context, actionURL string, sub *Submission) (*model.UpdateResponse, error) {
	target, err := c.resolve(actionURL)
	if err != nil {
		return nil, err
	}

	fields := sub.Fields
	if c.csrfToken != "" && fields[page.FieldCSRFToken] == "" {
		fields = make(map[string]string, len(sub.Fields)+1)
		for k, v := range sub.Fields {
			fields[k] = v
		}
		fields[page.FieldCSRFToken] = c.csrfToken
	}

	body, contentType, err := encodeMultipart(fields, sub.Files)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Accept", "application/json")
	if c.csrfToken != "" {
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}
	if sub.Referer != "" {
		req.Header.Set("Referer", sub.Referer)
	}

	c.logger.Debug("submitting update",
		"url", target,
		"fields", len(fields),
		"files", len(sub.Files),
	)

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp model.UpdateResponse
	if err := decodeJSON(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// encodeMultipart builds a multipart/form-data body. Fields are written in
// sorted order so request bodies are reproducible.
func encodeMultipart(fields map[string]string, files []File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	for _, f := range files {
		if err := writeFilePart(w, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// writeFilePart copies a file into a multipart part.
func writeFilePart(w *multipart.Writer, f File) error {
	src, err := os.Open(f.Path) //nolint:gosec // User-provided attachment path is intentional
	if err != nil {
		return fmt.Errorf("failed to open attachment: %w", err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(f.Field, filepath.Base(f.Path))
	if err != nil {
		return fmt.Errorf("failed to create file part %s: %w", f.Field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy attachment %s: %w", f.Path, err)
	}
	return nil
}
