package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
	"github.com/comfort-asbl/comfort-site-tools/comfort/remote"
)

// Client mediates between the unreliable content API and everything
// else. Reads are total: they degrade to compiled-in fallback data and
// report the source instead of failing. Writes surface their errors so
// administrative actions can give operator feedback.
type Client interface {
	comfort.Loader

	// RawRecords reads a collection in its remote shape for the
	// administrative surface. It falls back to an empty collection:
	// an admin table renders honestly empty when the API is down.
	RawRecords(ctx context.Context, kind comfort.Kind) ([]map[string]any, comfort.Source)

	CreateRecord(ctx context.Context, kind comfort.Kind, payload any) error
	UpdateRecord(ctx context.Context, kind comfort.Kind, id string, payload any) error
	DeleteRecord(ctx context.Context, kind comfort.Kind, id string) error

	Register(ctx context.Context, user remote.User, password string) error
	SubmitDonation(ctx context.Context, donation remote.Donation) error
	UpdateDonationStatus(ctx context.Context, id, status string) error

	Authenticate(ctx context.Context, identifier, secret string) (comfort.User, error)
	Upload(ctx context.Context, filename string, file io.Reader, folder string) (string, error)
}

// Options configures a site client.
type Options struct {
	// BaseURL is the content API origin, e.g. "https://comfort-asbl.org/api".
	BaseURL string

	// Timeout bounds every request so a hung network never blocks
	// rendering; an expired read falls back like any other failure.
	Timeout time.Duration

	// DegradedLogin/DegradedSecret are the documented degraded-mode
	// credentials, honored only when the login endpoint cannot be
	// reached at all. Empty disables degraded-mode authentication.
	DegradedLogin  string
	DegradedSecret string

	Logger *zap.Logger
}

const defaultTimeout = 10 * time.Second

type siteClient struct {
	baseURL        string
	degradedLogin  string
	degradedSecret string
	client         *http.Client
	logger         *zap.Logger
}

func NewSiteClient(opts Options) Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &siteClient{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		degradedLogin:  opts.DegradedLogin,
		degradedSecret: opts.DegradedSecret,
		client:         &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

type retryable interface {
	CanRetry() bool
}

type retryableError struct {
	Err      error
	canRetry bool
}

func (e retryableError) Error() string {
	return e.Err.Error()
}

func (e retryableError) Unwrap() error {
	return e.Err
}

func (e retryableError) CanRetry() bool {
	return e.canRetry
}

// writeResult is the envelope the API uses for mutating calls.
type writeResult struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	ID      string `json:"id"`
}

func looksLikeHTML(body []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(body)), "<")
}

// fetch performs a read. It returns the raw body only for 2xx
// responses that are not HTML; every other outcome is an error the
// caller turns into a fallback.
func (c *siteClient) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("issuing request",
		zap.String("request_id", requestID),
		zap.String("method", http.MethodGet),
		zap.String("endpoint", endpoint))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	if looksLikeHTML(body) {
		return nil, fmt.Errorf("%w: got HTML", ErrUnexpectedResponse)
	}

	return body, nil
}

// readList fetches a remote collection. On any failure, and on an
// empty remote collection (indistinguishable from "not configured
// yet"), it hands back the fallback so the site never renders a blank
// section.
func readList[T any](ctx context.Context, c *siteClient, endpoint string, fallback []T) ([]T, comfort.Source) {
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		c.logger.Warn("read degraded to fallback",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return fallback, comfort.SourceFallback
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		c.logger.Warn("read degraded to fallback",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return fallback, comfort.SourceFallback
	}

	if len(items) == 0 {
		return fallback, comfort.SourceFallback
	}

	return items, comfort.SourceRemote
}

func (c *siteClient) ListProjects(ctx context.Context) ([]comfort.Project, comfort.Source) {
	actions, src := readList[remote.Action](ctx, c, "/"+string(comfort.KindProjects), nil)
	if src == comfort.SourceFallback {
		return c.resolveFallbackProjects(), src
	}
	return remote.MapActions(actions, c.baseURL), src
}

func (c *siteClient) resolveFallbackProjects() []comfort.Project {
	projects := comfort.FallbackProjects()
	for i := range projects {
		projects[i].Image = remote.ResolveAssetURL(c.baseURL, projects[i].Image)
	}
	return projects
}

func (c *siteClient) ListArticles(ctx context.Context) ([]comfort.Article, comfort.Source) {
	articles, src := readList[remote.Article](ctx, c, "/"+string(comfort.KindArticles), nil)
	if src == comfort.SourceFallback {
		fallback := comfort.FallbackArticles()
		for i := range fallback {
			fallback[i].Image = remote.ResolveAssetURL(c.baseURL, fallback[i].Image)
		}
		return fallback, src
	}
	return remote.MapArticles(articles, c.baseURL), src
}

func (c *siteClient) ListPartners(ctx context.Context) ([]comfort.Partner, comfort.Source) {
	partners, src := readList[remote.Partner](ctx, c, "/"+string(comfort.KindPartners), nil)
	if src == comfort.SourceFallback {
		fallback := comfort.FallbackPartners()
		for i := range fallback {
			fallback[i].Logo = remote.ResolveAssetURL(c.baseURL, fallback[i].Logo)
		}
		return fallback, src
	}
	return remote.MapPartners(partners, c.baseURL), src
}

func (c *siteClient) ListUsers(ctx context.Context) ([]comfort.User, comfort.Source) {
	users, src := readList[remote.User](ctx, c, "/"+string(comfort.KindUsers), nil)
	if src == comfort.SourceFallback {
		return comfort.FallbackUsers(), src
	}
	return remote.MapUsers(users), src
}

func (c *siteClient) ListDonations(ctx context.Context) ([]comfort.Donation, comfort.Source) {
	donations, src := readList[remote.Donation](ctx, c, "/"+string(comfort.KindDonations), nil)
	if src == comfort.SourceFallback {
		return comfort.FallbackDonations(), src
	}
	return remote.MapDonations(donations), src
}

func (c *siteClient) ListTeam(ctx context.Context) ([]comfort.TeamMember, comfort.Source) {
	team, src := readList[comfort.TeamMember](ctx, c, "/"+string(comfort.KindTeam), comfort.FallbackTeam())
	return remote.ResolveTeam(team, c.baseURL), src
}

func (c *siteClient) ListTestimonials(ctx context.Context) ([]comfort.Testimonial, comfort.Source) {
	testimonials, src := readList[comfort.Testimonial](ctx, c, "/"+string(comfort.KindTestimonials), comfort.FallbackTestimonials())
	return remote.ResolveTestimonials(testimonials, c.baseURL), src
}

func (c *siteClient) GetSettings(ctx context.Context) (comfort.SiteSettings, comfort.Source) {
	body, err := c.fetch(ctx, "/"+string(comfort.KindSettings))
	if err != nil {
		c.logger.Warn("read degraded to fallback",
			zap.String("endpoint", "/"+string(comfort.KindSettings)),
			zap.Error(err))
		return remote.ResolveSettings(comfort.FallbackSettings(), c.baseURL), comfort.SourceFallback
	}

	var settings comfort.SiteSettings
	if err := json.Unmarshal(body, &settings); err != nil || settings.SiteName == "" {
		return remote.ResolveSettings(comfort.FallbackSettings(), c.baseURL), comfort.SourceFallback
	}

	return remote.ResolveSettings(settings, c.baseURL), comfort.SourceRemote
}

func (c *siteClient) RawRecords(ctx context.Context, kind comfort.Kind) ([]map[string]any, comfort.Source) {
	return readList[map[string]any](ctx, c, "/"+string(kind), []map[string]any{})
}

// send performs a mutating call. Transient "retry later" responses are
// retried with exponential backoff; everything else maps onto the
// write-path error taxonomy.
func (c *siteClient) send(ctx context.Context, method, endpoint string, payload any) error {
	err := c.sendOnce(ctx, method, endpoint, payload)

	re, ok := err.(retryable)
	if ok && re.CanRetry() {
		operation := func() (struct{}, error) {
			err := c.sendOnce(ctx, method, endpoint, payload)
			if err == nil {
				return struct{}{}, nil
			}
			if re, ok := err.(retryable); ok && re.CanRetry() {
				return struct{}{}, err
			}
			return struct{}{}, backoff.Permanent(err)
		}
		_, err = backoff.Retry(ctx, operation,
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxTries(5))
	}

	return err
}

func (c *siteClient) sendOnce(ctx context.Context, method, endpoint string, payload any) error {
	requestID := uuid.NewString()

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("issuing request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if strings.EqualFold(strings.TrimSpace(string(body)), "retry later") {
		return retryableError{
			Err:      fmt.Errorf("%w: asked to retry later", ErrUnexpectedResponse),
			canRetry: true,
		}
	}

	var result writeResult
	if err := json.Unmarshal(body, &result); err != nil {
		// The API answers some mutating calls with a bare message
		// body. A 2xx is still a success then.
		if resp.StatusCode < 300 && !looksLikeHTML(body) {
			return nil
		}
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	if result.Error != "" {
		return &APIError{Message: result.Error}
	}

	if result.Success != nil && !*result.Success {
		message := result.Message
		if message == "" {
			message = "request rejected"
		}
		return &APIError{Message: message}
	}

	if resp.StatusCode >= 400 {
		if result.Message != "" {
			return &APIError{Message: result.Message}
		}
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	return nil
}

func collectionEndpoint(kind comfort.Kind, id string) string {
	endpoint := "/" + string(kind)
	if id != "" {
		endpoint += "?id=" + url.QueryEscape(id)
	}
	return endpoint
}

func (c *siteClient) CreateRecord(ctx context.Context, kind comfort.Kind, payload any) error {
	return c.send(ctx, http.MethodPost, collectionEndpoint(kind, ""), payload)
}

func (c *siteClient) UpdateRecord(ctx context.Context, kind comfort.Kind, id string, payload any) error {
	return c.send(ctx, http.MethodPut, collectionEndpoint(kind, id), payload)
}

func (c *siteClient) DeleteRecord(ctx context.Context, kind comfort.Kind, id string) error {
	return c.send(ctx, http.MethodDelete, collectionEndpoint(kind, id), nil)
}

// Register is public self-signup: a create on the users collection.
func (c *siteClient) Register(ctx context.Context, user remote.User, password string) error {
	payload := map[string]any{
		"username": user.Username,
		"email":    user.Email,
		"role":     string(comfort.RoleUser),
		"password": password,
	}
	return c.CreateRecord(ctx, comfort.KindUsers, payload)
}

func (c *siteClient) SubmitDonation(ctx context.Context, donation remote.Donation) error {
	return c.CreateRecord(ctx, comfort.KindDonations, donation)
}

func (c *siteClient) UpdateDonationStatus(ctx context.Context, id, status string) error {
	return c.UpdateRecord(ctx, comfort.KindDonations, id, map[string]string{"status": status})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type loginResponse struct {
	Success *bool        `json:"success"`
	User    *remote.User `json:"user"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
}

// Authenticate checks credentials against the login endpoint. When the
// endpoint cannot be reached at all, the documented degraded-mode
// credentials still admit a local superadmin so the back office stays
// reachable during outages. An explicit rejection never degrades.
func (c *siteClient) Authenticate(ctx context.Context, identifier, secret string) (comfort.User, error) {
	requestID := uuid.NewString()

	jsonBody, err := json.Marshal(loginRequest{Identifier: identifier, Secret: secret})
	if err != nil {
		return comfort.User{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(jsonBody))
	if err != nil {
		return comfort.User{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("issuing request",
		zap.String("request_id", requestID),
		zap.String("method", http.MethodPost),
		zap.String("endpoint", "/login"))

	resp, err := c.client.Do(req)
	if err != nil {
		return c.degradedLoginUser(identifier, secret, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.degradedLoginUser(identifier, secret, err)
	}

	var result loginResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return comfort.User{}, fmt.Errorf("%w: HTTP %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	if result.Error != "" {
		return comfort.User{}, &APIError{Message: result.Error}
	}

	if result.User != nil {
		return remote.MapUser(*result.User), nil
	}

	message := result.Message
	if message == "" {
		message = "identifiants incorrects"
	}
	return comfort.User{}, &APIError{Message: message}
}

// degradedLoginUser applies only on transport failure, never on an
// explicit rejection.
func (c *siteClient) degradedLoginUser(identifier, secret string, cause error) (comfort.User, error) {
	if c.degradedLogin != "" && identifier == c.degradedLogin && secret == c.degradedSecret {
		c.logger.Warn("login endpoint unreachable, admitting degraded-mode administrator",
			zap.Error(cause))
		return comfort.User{
			ID:       "local",
			Username: "Admin Local",
			Email:    "admin@local",
			Role:     comfort.RoleSuperAdmin,
		}, nil
	}
	return comfort.User{}, fmt.Errorf("%w: %v", ErrUnreachable, cause)
}
