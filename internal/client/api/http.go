package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClient talks to the Course Copilot backend over REST with a bearer
// token. A 401 response and a locally detected expired token both surface as
// ErrUnauthorized; transport failures surface as ErrUnavailable so callers
// can fall back to the local mirror.
type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetToken(token string) {
	c.accessToken = token
}

// tokenExpired inspects the unverified exp claim of the installed token.
// Signature verification is the server's job; the client only wants to avoid
// sending requests it already knows will be rejected.
func (c *HTTPClient) tokenExpired() bool {
	if c.accessToken == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.accessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+c.accessToken)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	if c.tokenExpired() {
		return nil, fmt.Errorf("token expired: %w", ErrUnauthorized)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	return resp, nil
}

// doJSON performs the request and decodes the response body into out
// (when out is non-nil).
func (c *HTTPClient) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": string(password),
	})
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var body struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(req, &body); err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}

	c.accessToken = body.Token
	return body.Token, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// resourcesEnvelope is the common {resources: [...]} response shape.
type resourcesEnvelope struct {
	Resources []models.Resource `json:"resources"`
}

func (c *HTTPClient) ListCourseResources(ctx context.Context, courseID string) ([]models.Resource, error) {
	return c.listResources(ctx, fmt.Sprintf("/courses/%s/resources", url.PathEscape(courseID)))
}

func (c *HTTPClient) ListThreadResources(ctx context.Context, courseID, threadID string) ([]models.Resource, error) {
	return c.listResources(ctx, fmt.Sprintf("/courses/%s/assets/%s/resources",
		url.PathEscape(courseID), url.PathEscape(threadID)))
}

func (c *HTTPClient) listResources(ctx context.Context, path string) ([]models.Resource, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var body resourcesEnvelope
	if err := c.doJSON(req, &body); err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	return body.Resources, nil
}

func (c *HTTPClient) UploadCourse(ctx context.Context, courseID string, files []*models.PendingFile) ([]models.Resource, error) {
	return c.upload(ctx, fmt.Sprintf("/courses/%s/resources", url.PathEscape(courseID)), files)
}

func (c *HTTPClient) UploadThread(ctx context.Context, courseID, threadID string, files []*models.PendingFile) ([]models.Resource, error) {
	return c.upload(ctx, fmt.Sprintf("/courses/%s/assets/%s/resources",
		url.PathEscape(courseID), url.PathEscape(threadID)), files)
}

// upload sends all files in a single multipart request under the repeatable
// "files" field.
func (c *HTTPClient) upload(ctx context.Context, path string, files []*models.PendingFile) ([]models.Resource, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(f.FileName)))
		if f.FileType != "" {
			header.Set("Content-Type", f.FileType)
		}

		part, err := mw.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("error building upload request: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("error building upload request: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("error building upload request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var body resourcesEnvelope
	if err := c.doJSON(req, &body); err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}
	return body.Resources, nil
}

func (c *HTTPClient) DeleteResource(ctx context.Context, courseID, fileID string) error {
	path := fmt.Sprintf("/courses/%s/resources/%s", url.PathEscape(courseID), url.PathEscape(fileID))
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

func (c *HTTPClient) GetResourceContent(ctx context.Context, courseID, fileID string) (string, error) {
	path := fmt.Sprintf("/courses/%s/resources/%s/content", url.PathEscape(courseID), url.PathEscape(fileID))
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.doJSON(req, &body); err != nil {
		return "", fmt.Errorf("error fetching content: %w", err)
	}
	return body.Content, nil
}

func (c *HTTPClient) SyncThreadFromCheckedIn(ctx context.Context, courseID, threadID string) error {
	path := fmt.Sprintf("/courses/%s/assets/%s/resources/sync",
		url.PathEscape(courseID), url.PathEscape(threadID))
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("thread sync error: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
