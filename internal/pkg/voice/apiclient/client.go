// Package apiclient talks to the Saathi Voice REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/search"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/voice/recorder"
	"github.com/rs/zerolog"
)

// AudioField is the multipart field the upload endpoint reads
const AudioField = "audio"

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// TransportError wraps failures that happened before a response arrived
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Option configures a Client
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// Client is safe for concurrent use
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

var (
	_ recorder.Uploader    = (*Client)(nil)
	_ recorder.Transcriber = (*Client)(nil)
)

// New creates a client for the server at baseURL, e.g. http://localhost:5000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveURL turns a server-relative reference such as /uploads/audio/x.webm into an absolute URL
func (c *Client) ResolveURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || recorder.IsLocal(ref) {
		return ref
	}
	return c.baseURL + "/" + strings.TrimLeft(ref, "/")
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodPost, "/api/users", req)
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodGet, "/api/users/"+url.PathEscape(id), nil)
}

func (c *Client) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	return call[models.Student](ctx, c, http.MethodPost, "/api/students", req)
}

func (c *Client) GetStudentByUserID(ctx context.Context, userID string) (*models.Student, error) {
	return call[models.Student](ctx, c, http.MethodGet, "/api/students/user/"+url.PathEscape(userID), nil)
}

func (c *Client) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	return call[models.Student](ctx, c, http.MethodPut, "/api/students/"+url.PathEscape(id), req)
}

func (c *Client) CreateMentor(ctx context.Context, req dto.CreateMentorRequest) (*models.Mentor, error) {
	return call[models.Mentor](ctx, c, http.MethodPost, "/api/mentors", req)
}

func (c *Client) GetMentorByUserID(ctx context.Context, userID string) (*models.Mentor, error) {
	return call[models.Mentor](ctx, c, http.MethodGet, "/api/mentors/user/"+url.PathEscape(userID), nil)
}

// SearchMentors runs a mentor search; empty criteria list every mentor
func (c *Client) SearchMentors(ctx context.Context, criteria search.Criteria) ([]models.MentorWithUser, error) {
	path := "/api/mentors/search"
	if q := criteria.Values(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	return list[models.MentorWithUser](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) CreateMentorship(ctx context.Context, req dto.CreateMentorshipRequest) (*models.Mentorship, error) {
	return call[models.Mentorship](ctx, c, http.MethodPost, "/api/mentorships", req)
}

func (c *Client) MentorshipsByStudent(ctx context.Context, studentID string) ([]models.MentorshipWithDetails, error) {
	return list[models.MentorshipWithDetails](ctx, c, http.MethodGet, "/api/mentorships/student/"+url.PathEscape(studentID), nil)
}

func (c *Client) MentorshipsByMentor(ctx context.Context, mentorID string) ([]models.MentorshipWithDetails, error) {
	return list[models.MentorshipWithDetails](ctx, c, http.MethodGet, "/api/mentorships/mentor/"+url.PathEscape(mentorID), nil)
}

func (c *Client) CreateVoiceMessage(ctx context.Context, req dto.CreateVoiceMessageRequest) (*models.VoiceMessage, error) {
	return call[models.VoiceMessage](ctx, c, http.MethodPost, "/api/voice-messages", req)
}

func (c *Client) UpdateVoiceMessage(ctx context.Context, id string, req dto.UpdateVoiceMessageRequest) (*models.VoiceMessage, error) {
	return call[models.VoiceMessage](ctx, c, http.MethodPut, "/api/voice-messages/"+url.PathEscape(id), req)
}

// VoiceMessages lists a mentorship thread, oldest first
func (c *Client) VoiceMessages(ctx context.Context, mentorshipID string) ([]models.VoiceMessageWithSender, error) {
	return list[models.VoiceMessageWithSender](ctx, c, http.MethodGet, "/api/voice-messages/mentorship/"+url.PathEscape(mentorshipID), nil)
}

// UploadAudio sends a clip as multipart form data
func (c *Client) UploadAudio(ctx context.Context, clip recorder.Clip) (*dto.UploadResponse, error) {
	filename := clip.Filename
	if filename == "" {
		filename = recorder.DefaultFilename
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(AudioField, filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(clip.Data); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/voice-messages/upload", body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out dto.UploadResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload stores clip on the server and returns its audio URL
func (c *Client) Upload(ctx context.Context, clip recorder.Clip) (string, error) {
	res, err := c.UploadAudio(ctx, clip)
	if err != nil {
		return "", err
	}
	return res.AudioURL, nil
}

// Transcribe asks the server for the text of a stored clip
func (c *Client) Transcribe(ctx context.Context, audioURL string) (string, error) {
	var out dto.TranscribeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/voice-messages/transcribe", dto.TranscribeRequest{AudioURL: audioURL}, &out); err != nil {
		return "", err
	}
	return out.Transcription, nil
}

// Health pings the server
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.doJSON(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func list[T any](ctx context.Context, c *Client, method, path string, body any) ([]T, error) {
	var out []T
	if err := c.doJSON(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload dto.ErrorResponse
		if json.Unmarshal(respBody, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			apiErr.Details = payload.Details
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
