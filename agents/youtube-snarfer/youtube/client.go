package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"snarfer-stack/internal/models"
	"snarfer-stack/shared/config"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrVideoNotFound is returned when the API answers with no items for an ID,
// which covers private, deleted and mistyped videos.
var ErrVideoNotFound = errors.New("video not found")

// TransportError wraps any failure to get a usable answer from the API:
// network errors, timeouts and non-2xx responses alike.
type TransportError struct {
	VideoID string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("youtube api request for %s failed: %v", e.VideoID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	service *youtube.Service
	config  *config.YouTubeConfig
	timeout time.Duration
}

type clientOptions struct {
	httpClient *http.Client
	endpoint   string
}

// Option customizes the Client.
type Option func(*clientOptions)

// WithHTTPClient overrides the HTTP client used for API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithEndpoint overrides the API base URL, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// NewClient creates a YouTube Data API client. The API key is not bound to
// the client; it is supplied per lookup so channels can carry their own key.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig, opts ...Option) (*Client, error) {
	timeout := cfg.Timeout()

	o := clientOptions{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
	}
	for _, opt := range opts {
		opt(&o)
	}

	serviceOpts := []option.ClientOption{option.WithHTTPClient(o.httpClient)}
	if o.endpoint != "" {
		if !strings.HasSuffix(o.endpoint, "/") {
			o.endpoint += "/"
		}
		serviceOpts = append(serviceOpts, option.WithEndpoint(o.endpoint))
	}

	service, err := youtube.NewService(ctx, serviceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		config:  cfg,
		timeout: timeout,
	}, nil
}

// LookupVideo fetches title, duration and channel for a single video.
// It returns ErrVideoNotFound when the API has no item for the ID and a
// *TransportError when the request itself could not be completed.
func (c *Client) LookupVideo(ctx context.Context, videoID, apiKey string) (*models.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do(googleapi.QueryParameter("key", apiKey))
	if err != nil {
		return nil, &TransportError{VideoID: videoID, Err: err}
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, ErrVideoNotFound)
	}

	item := resp.Items[0]
	video := &models.Video{
		ID:  videoID,
		URL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
	}
	if item.Id != "" {
		video.ID = item.Id
	}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.ChannelTitle = item.Snippet.ChannelTitle
	}
	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
	}

	log.Debug().
		Str("video_id", video.ID).
		Str("title", video.Title).
		Str("duration", video.Duration).
		Msg("Fetched video metadata")

	return video, nil
}
