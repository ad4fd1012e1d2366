// Package client is a typed Go client for the portfolio REST API.
package client

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rpupo63/portfolio-backend/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// AuthResult is what login and registration return.
type AuthResult struct {
	User  models.UserInfo `json:"user"`
	Token string          `json:"token"`
}

// LeetCodeStats mirrors the /leetcode response.
type LeetCodeStats struct {
	TotalSolved int `json:"totalSolved"`
	Easy        int `json:"easy"`
	Medium      int `json:"medium"`
	Hard        int `json:"hard"`
}

// ContactMessage is the /contact body.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Client talks to one server. baseURL includes the API prefix, e.g.
// http://localhost:8080/api.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (client *Client) {
	client = &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SetToken replaces the bearer token sent with every request. An empty token
// sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do sends a request and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (payload []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		err = errors.Wrapf(err, "failed to build %s %s", method, path)
		return payload, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = errors.Wrapf(err, "%s %s failed", method, path)
		return payload, err
	}
	defer resp.Body.Close()

	payload, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return payload, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var decoded envelope
		message := strings.TrimSpace(string(payload))
		if json.Unmarshal(payload, &decoded) == nil && decoded.Error != "" {
			message = decoded.Error
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		err = &APIError{Status: resp.StatusCode, Message: message}
		return payload, err
	}

	return payload, err
}

// send marshals in as JSON, sends it and decodes the data field of the
// envelope into out when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, in, out any) (err error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, marshalErr := json.Marshal(in)
		if marshalErr != nil {
			err = errors.Wrap(marshalErr, "failed to marshal request body")
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	payload, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return err
	}

	var decoded envelope
	if err = json.Unmarshal(payload, &decoded); err != nil {
		err = errors.Wrapf(err, "failed to parse response: %s", string(payload))
		return err
	}
	if err = json.Unmarshal(decoded.Data, out); err != nil {
		err = errors.Wrap(err, "failed to parse response data")
		return err
	}
	return err
}

func idQuery(id uuid.UUID) string {
	return "?id=" + url.QueryEscape(id.String())
}

// Auth

func (c *Client) Login(ctx context.Context, email, password string) (result AuthResult, err error) {
	err = c.sendAuth(ctx, "/auth/login", map[string]string{"email": email, "password": password}, &result)
	return result, err
}

func (c *Client) Register(ctx context.Context, email, password, name string) (result AuthResult, err error) {
	err = c.sendAuth(ctx, "/auth/register", map[string]string{"email": email, "password": password, "name": name}, &result)
	return result, err
}

// Verify returns the user a token was issued to.
func (c *Client) Verify(ctx context.Context, token string) (user models.UserInfo, err error) {
	var result AuthResult
	err = c.sendAuth(ctx, "/auth/verify", map[string]string{"token": token}, &result)
	return result.User, err
}

func (c *Client) Me(ctx context.Context) (user models.UserInfo, err error) {
	payload, err := c.do(ctx, http.MethodGet, "/auth/me", nil, "")
	if err != nil {
		return user, err
	}
	var result AuthResult
	if err = json.Unmarshal(payload, &result); err != nil {
		err = errors.Wrap(err, "failed to parse user")
	}
	return result.User, err
}

func (c *Client) sendAuth(ctx context.Context, path string, in any, out *AuthResult) (err error) {
	data, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to marshal credentials")
	}
	payload, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json")
	if err != nil {
		return err
	}
	if err = json.Unmarshal(payload, out); err != nil {
		err = errors.Wrap(err, "failed to parse auth response")
	}
	return err
}

// Projects

func (c *Client) ListProjects(ctx context.Context) (projects []models.Project, err error) {
	err = c.send(ctx, http.MethodGet, "/projects", nil, &projects)
	return projects, err
}

func (c *Client) GetProject(ctx context.Context, id uuid.UUID) (project models.Project, err error) {
	err = c.send(ctx, http.MethodGet, "/projects"+idQuery(id), nil, &project)
	return project, err
}

func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (project models.Project, err error) {
	err = c.send(ctx, http.MethodPost, "/projects", req, &project)
	return project, err
}

func (c *Client) UpdateProject(ctx context.Context, req models.UpdateProjectRequest) error {
	return c.send(ctx, http.MethodPut, "/projects", req, nil)
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.send(ctx, http.MethodDelete, "/projects"+idQuery(id), nil, nil)
}

// Experience

func (c *Client) ListExperience(ctx context.Context) (experience []models.Experience, err error) {
	err = c.send(ctx, http.MethodGet, "/experience", nil, &experience)
	return experience, err
}

func (c *Client) GetExperience(ctx context.Context, id uuid.UUID) (experience models.Experience, err error) {
	err = c.send(ctx, http.MethodGet, "/experience"+idQuery(id), nil, &experience)
	return experience, err
}

func (c *Client) CreateExperience(ctx context.Context, req models.CreateExperienceRequest) (experience models.Experience, err error) {
	err = c.send(ctx, http.MethodPost, "/experience", req, &experience)
	return experience, err
}

func (c *Client) UpdateExperience(ctx context.Context, req models.UpdateExperienceRequest) error {
	return c.send(ctx, http.MethodPut, "/experience", req, nil)
}

func (c *Client) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	return c.send(ctx, http.MethodDelete, "/experience"+idQuery(id), nil, nil)
}

// Skills

func (c *Client) ListSkillCategories(ctx context.Context) (categories []models.SkillCategory, err error) {
	err = c.send(ctx, http.MethodGet, "/skills", nil, &categories)
	return categories, err
}

func (c *Client) GetSkillCategory(ctx context.Context, id uuid.UUID) (category models.SkillCategory, err error) {
	err = c.send(ctx, http.MethodGet, "/skills"+idQuery(id), nil, &category)
	return category, err
}

func (c *Client) CreateSkillCategory(ctx context.Context, req models.CreateSkillCategoryRequest) (category models.SkillCategory, err error) {
	err = c.send(ctx, http.MethodPost, "/skills", req, &category)
	return category, err
}

func (c *Client) UpdateSkillCategory(ctx context.Context, req models.UpdateSkillCategoryRequest) error {
	return c.send(ctx, http.MethodPut, "/skills", req, nil)
}

func (c *Client) DeleteSkillCategory(ctx context.Context, id uuid.UUID) error {
	return c.send(ctx, http.MethodDelete, "/skills"+idQuery(id), nil, nil)
}

// AddSkills appends comma separated skill names to the category titled title,
// matched case-insensitively after trimming, or creates that category. New
// skills get the default level.
func (c *Client) AddSkills(ctx context.Context, title, csv string) (category models.SkillCategory, err error) {
	title = strings.TrimSpace(title)
	if title == "" {
		err = errors.New("category title is required")
		return category, err
	}
	added := models.ParseSkillNames(csv)
	if len(added) == 0 {
		err = errors.New("no skill names given")
		return category, err
	}

	categories, err := c.ListSkillCategories(ctx)
	if err != nil {
		err = errors.Wrap(err, "failed to list skill categories")
		return category, err
	}

	for _, existing := range categories {
		if !strings.EqualFold(strings.TrimSpace(existing.Title), title) {
			continue
		}

		skills := make([]models.SkillInput, 0, len(existing.Skills)+len(added))
		for _, skill := range existing.Skills {
			id := skill.ID
			level := skill.Level
			skills = append(skills, models.SkillInput{ID: &id, Name: skill.Name, Level: &level})
		}
		skills = append(skills, added...)

		err = c.UpdateSkillCategory(ctx, models.UpdateSkillCategoryRequest{ID: &existing.ID, Skills: &skills})
		if err != nil {
			err = errors.Wrapf(err, "failed to add skills to %q", existing.Title)
			return category, err
		}
		return c.GetSkillCategory(ctx, existing.ID)
	}

	category, err = c.CreateSkillCategory(ctx, models.CreateSkillCategoryRequest{Title: title, Skills: added})
	if err != nil {
		err = errors.Wrapf(err, "failed to create category %q", title)
	}
	return category, err
}

// Other routes

// LeetCodeStats returns the solved counts of username. The route answers
// without the success envelope.
func (c *Client) LeetCodeStats(ctx context.Context, username string) (stats LeetCodeStats, err error) {
	payload, err := c.do(ctx, http.MethodGet, "/leetcode?username="+url.QueryEscape(username), nil, "")
	if err != nil {
		return stats, err
	}
	if err = json.Unmarshal(payload, &stats); err != nil {
		err = errors.Wrap(err, "failed to parse leetcode stats")
	}
	return stats, err
}

func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	return c.send(ctx, http.MethodPost, "/contact", msg, nil)
}

// UploadImage uploads an image and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, image io.Reader) (imageURL string, err error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		err = errors.Wrap(err, "failed to create form part")
		return imageURL, err
	}
	if _, err = io.Copy(part, image); err != nil {
		err = errors.Wrap(err, "failed to read image")
		return imageURL, err
	}
	if err = writer.Close(); err != nil {
		err = errors.Wrap(err, "failed to finish form")
		return imageURL, err
	}

	payload, err := c.do(ctx, http.MethodPost, "/uploads", &body, writer.FormDataContentType())
	if err != nil {
		return imageURL, err
	}

	var decoded struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err = json.Unmarshal(payload, &decoded); err != nil {
		err = errors.Wrap(err, "failed to parse upload response")
		return imageURL, err
	}
	return decoded.Data.URL, err
}
