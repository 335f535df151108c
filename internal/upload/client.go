// Package upload talks to the conversion server: it posts the form as a
// streamed multipart body and classifies whatever comes back.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/doctoppt/client/internal/models"
	"github.com/gabriel-vasile/mimetype"
)

// Form field names expected by the upload endpoint.
const (
	FieldDocument = "document"
	FieldTemplate = "template"
)

// maxReplySize bounds how much of a reply body is read for classification.
const maxReplySize = 1 << 20

// Paths locates the server endpoints relative to the base URL.
type Paths struct {
	Upload     string
	Processing string
	Status     string
	Health     string
}

// DefaultPaths returns the routes served by the conversion server.
func DefaultPaths() Paths {
	return Paths{
		Upload:     "/upload",
		Processing: "/processing",
		Status:     "/api/status",
		Health:     "/health",
	}
}

// Client submits documents to the conversion server.
type Client struct {
	base   *url.URL
	paths  Paths
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a Client for baseURL. Redirects are never followed so
// they can be reported as outcomes, and uploads carry no timeout.
func NewClient(baseURL string, paths Paths, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	return &Client{
		base:  base,
		paths: paths,
		http: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger.With("component", "upload"),
	}, nil
}

// BaseURL returns the server root the client resolves paths against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Upload posts the payload and classifies the reply. A 3xx with Location
// is a redirect outcome, a status >= 400 is an *Error, a JSON body is a
// structured outcome (or a rejection), and anything else synthesizes the
// processing page location from the document name.
func (c *Client) Upload(ctx context.Context, p models.FormPayload) (*models.Outcome, error) {
	if p.Document == nil {
		return nil, errors.New("upload: no document")
	}

	parts, err := openParts(p)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer closeParts(parts)
		pw.CloseWithError(writeParts(mw, parts))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(c.paths.Upload), pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	c.logger.Info("uploading", "document", p.Document.Name, "size", p.Document.Size, "template", p.Template != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upload transport failure", "error", err)
		return nil, NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, NewTransportError(err)
	}

	out, err := c.classify(resp, body, p.Document.Name)
	if err != nil {
		c.logger.Warn("upload failed", "status", resp.StatusCode, "error", err)
		return nil, err
	}
	c.logger.Info("upload accepted", "kind", out.Kind, "location", out.Location)
	return out, nil
}

func (c *Client) classify(resp *http.Response, body []byte, document string) (*models.Outcome, error) {
	status := resp.StatusCode

	if status >= 300 && status < 400 {
		loc := resp.Header.Get("Location")
		if loc == "" {
			return nil, NewStatusError(status, "redirect without location")
		}
		return &models.Outcome{
			Kind:     models.OutcomeRedirect,
			Location: c.resolve(loc),
			Filename: c.processingFilename(loc),
		}, nil
	}

	if status >= 400 {
		return nil, NewStatusError(status, replyMessage(resp, body))
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		var reply models.UploadResponse
		if err := json.Unmarshal(body, &reply); err != nil {
			return nil, NewDecodeError(status, err)
		}
		if !reply.Success {
			return nil, NewRejectedError(status, reply.Error)
		}
		filename := reply.Filename
		if filename == "" {
			filename = document
		}
		location := reply.Redirect
		if location == "" {
			location = c.processingPath(filename)
		}
		return &models.Outcome{
			Kind:     models.OutcomeStructured,
			Location: c.resolve(location),
			Filename: filename,
		}, nil
	}

	return &models.Outcome{
		Kind:     models.OutcomeSynthesized,
		Location: c.resolve(c.processingPath(document)),
		Filename: document,
	}, nil
}

// Status reads the processing status of an uploaded file.
func (c *Client) Status(ctx context.Context, filename string) (*models.ProcessingStatus, error) {
	var st models.ProcessingStatus
	if err := c.getJSON(ctx, joinPath(c.paths.Status, url.PathEscape(filename)), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Health calls the health endpoint once.
func (c *Client) Health(ctx context.Context) (*models.HealthReport, error) {
	var report models.HealthReport
	if err := c.getJSON(ctx, c.paths.Health, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) getJSON(ctx context.Context, p string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(p), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return NewTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewStatusError(resp.StatusCode, replyMessage(resp, body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return NewDecodeError(resp.StatusCode, err)
	}
	return nil
}

func (c *Client) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(u).String()
}

func (c *Client) processingPath(filename string) string {
	return joinPath(c.paths.Processing, url.PathEscape(filename))
}

// processingFilename extracts the file name from a processing page location.
func (c *Client) processingFilename(loc string) string {
	u, err := url.Parse(loc)
	if err != nil {
		return ""
	}
	prefix := strings.TrimSuffix(c.paths.Processing, "/") + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return ""
	}
	return path.Base(u.Path)
}

func joinPath(prefix, name string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + name
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// replyMessage pulls a human readable message out of an error reply.
func replyMessage(resp *http.Response, body []byte) string {
	if !isJSON(resp.Header.Get("Content-Type")) {
		return ""
	}
	var reply struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return ""
	}
	if reply.Error != "" {
		return reply.Error
	}
	return reply.Message
}

type part struct {
	field string
	file  *models.SelectedFile
	r     *os.File
}

func openParts(p models.FormPayload) ([]part, error) {
	files := []struct {
		field string
		file  *models.SelectedFile
	}{
		{FieldDocument, p.Document},
		{FieldTemplate, p.Template},
	}

	var parts []part
	for _, f := range files {
		if f.file == nil {
			continue
		}
		if f.file.Path == "" {
			closeParts(parts)
			return nil, fmt.Errorf("upload %s %q: no local path", f.field, f.file.Name)
		}
		r, err := os.Open(f.file.Path)
		if err != nil {
			closeParts(parts)
			return nil, fmt.Errorf("open %s: %w", f.field, err)
		}
		parts = append(parts, part{field: f.field, file: f.file, r: r})
	}
	return parts, nil
}

func closeParts(parts []part) {
	for _, p := range parts {
		p.r.Close()
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeParts(mw *multipart.Writer, parts []part) error {
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(p.field), quoteEscaper.Replace(p.file.Name)))
		h.Set("Content-Type", contentType(p))

		w, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, p.r); err != nil {
			return fmt.Errorf("stream %s: %w", p.field, err)
		}
	}
	return mw.Close()
}

func contentType(p part) string {
	if p.file.MimeType != "" {
		return p.file.MimeType
	}
	mt, err := mimetype.DetectReader(p.r)
	if _, serr := p.r.Seek(0, io.SeekStart); serr != nil || err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}
