package truthguard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"truthguard-bot/api/internal/util"
)

// Client talks to the TruthGuard detection API. One HTTP call per submit,
// no automatic retry: a retry could double-submit user content to a paid
// inference service, so resubmission stays a user decision.
//
// No per-request timeout is set here (known gap); pass a cancellable context
// if you need one.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

type checkPayload struct {
	Content          string      `json:"content"`
	ContentType      ContentType `json:"content_type"`
	Language         Language    `json:"language"`
	IncludeEducation bool        `json:"include_education"`
}

// Check submits a text request to POST /check.
func (c *Client) Check(ctx context.Context, req *AnalysisRequest) (*VerdictResponse, error) {
	if req.ContentType != ContentTypeText {
		return nil, &ValidationError{Field: "content_type", Err: fmt.Errorf("Check wants text, got %s", req.ContentType)}
	}
	payload, _ := json.Marshal(checkPayload{
		Content:          req.Content,
		ContentType:      req.ContentType,
		Language:         req.Language,
		IncludeEducation: req.IncludeEducation,
	})
	return c.submit(ctx, "/check", "application/json", bytes.NewReader(payload))
}

// CheckImage submits the image as multipart field "file" to POST /check-image.
func (c *Client) CheckImage(ctx context.Context, req *AnalysisRequest) (*VerdictResponse, error) {
	if req.ContentType != ContentTypeImage {
		return nil, &ValidationError{Field: "content_type", Err: fmt.Errorf("CheckImage wants image, got %s", req.ContentType)}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, req.ImageName))
	h.Set("Content-Type", req.ImageMIME)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, &TransportError{Endpoint: "/check-image", Cause: err}
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, &TransportError{Endpoint: "/check-image", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Endpoint: "/check-image", Cause: err}
	}

	return c.submit(ctx, "/check-image", mw.FormDataContentType(), &body)
}

func (c *Client) submit(ctx context.Context, endpoint, contentType string, body io.Reader) (*VerdictResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Cause: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("%s", util.Truncate(strings.TrimSpace(string(raw)), 512)),
		}
	}
	if !json.Valid(raw) {
		return nil, &TransportError{Endpoint: endpoint, Cause: fmt.Errorf("response is not JSON: %s", util.Truncate(string(raw), 256))}
	}
	return ParseVerdict(raw)
}

// Stats fetches GET /stats.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.getJSON(ctx, "/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Cause: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("%s", util.Truncate(strings.TrimSpace(string(raw)), 512)),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Endpoint: endpoint, Cause: fmt.Errorf("bad JSON: %w", err)}
	}
	return nil
}
