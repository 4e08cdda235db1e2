package snarfer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"snarfer-stack/agents/youtube-snarfer/youtube"
	"snarfer-stack/internal/models"
	"snarfer-stack/shared/monitoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChannelSettings is the read-only per-channel configuration the host provides.
type ChannelSettings interface {
	APIKey(channel string) string
	SnarferEnabled(channel string) bool
}

// VideoLookup fetches metadata for a video ID.
type VideoLookup interface {
	LookupVideo(ctx context.Context, videoID, apiKey string) (*models.Video, error)
}

// Recorder receives one outcome per handled URL.
type Recorder interface {
	RecordOutcome(outcome string)
}

// ReplyFunc posts text to the channel a message came from. addressUser
// controls whether the reply is directed at the message author.
type ReplyFunc func(text string, addressUser bool) error

// Channel identifies where a message was seen.
type Channel struct {
	ID string
	// IsChannel is false for private/direct messages.
	IsChannel bool
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'` + "`" + `]+`)

// FindURLs returns every http(s) URL in text, in order of appearance.
func FindURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.TrimRight(m, ".,;:!?)]}>")
	}
	return matches
}

type Snarfer struct {
	settings ChannelSettings
	lookup   VideoLookup
	recorder Recorder
}

func New(settings ChannelSettings, lookup VideoLookup, recorder Recorder) *Snarfer {
	if recorder == nil {
		recorder = monitoring.NewMonitor()
	}
	return &Snarfer{
		settings: settings,
		lookup:   lookup,
		recorder: recorder,
	}
}

// HandleMessage runs Handle for every URL in text and posts the replies.
// Failures are logged and never escape to the caller.
func (s *Snarfer) HandleMessage(ctx context.Context, ch Channel, text string, reply ReplyFunc) {
	for _, rawURL := range FindURLs(text) {
		replyText, ok, err := s.Handle(ctx, ch, rawURL)
		if err != nil {
			log.Error().Err(err).Str("channel", ch.ID).Str("url", rawURL).Msg("Snarf failed")
			continue
		}
		if !ok {
			continue
		}

		if err := reply(replyText, false); err != nil {
			log.Error().Err(err).Str("channel", ch.ID).Msg("Failed to post snarf reply")
		}
	}
}

// Handle resolves a single URL into reply text. ok is false when nothing
// should be posted; err is only set when the API answer could not be
// rendered.
func (s *Snarfer) Handle(ctx context.Context, ch Channel, rawURL string) (reply string, ok bool, err error) {
	logger := log.With().
		Str("invocation", uuid.NewString()).
		Str("channel", ch.ID).
		Logger()

	if !ch.IsChannel {
		s.recorder.RecordOutcome(monitoring.OutcomePrivate)
		return "", false, nil
	}

	apiKey := s.settings.APIKey(ch.ID)
	if apiKey == "" {
		logger.Info().Msg("No YouTube Data API v3 key set")
		s.recorder.RecordOutcome(monitoring.OutcomeNoAPIKey)
		return "", false, nil
	}

	if !s.settings.SnarferEnabled(ch.ID) {
		s.recorder.RecordOutcome(monitoring.OutcomeDisabled)
		return "", false, nil
	}

	videoID, found := youtube.ExtractVideoID(rawURL)
	if !found {
		s.recorder.RecordOutcome(monitoring.OutcomeUnrecognized)
		return "", false, nil
	}

	video, err := s.lookup.LookupVideo(ctx, videoID, apiKey)
	if err != nil {
		var transportErr *youtube.TransportError
		switch {
		case errors.Is(err, youtube.ErrVideoNotFound):
			logger.Debug().Str("video_id", videoID).Msg("Video not found")
			s.recorder.RecordOutcome(monitoring.OutcomeNotFound)
		case errors.As(err, &transportErr):
			logger.Error().Err(err).Str("video_id", videoID).Msg("Couldn't connect to YouTube's API")
			s.recorder.RecordOutcome(monitoring.OutcomeTransportError)
		default:
			logger.Error().Err(err).Str("video_id", videoID).Msg("Video lookup failed")
			s.recorder.RecordOutcome(monitoring.OutcomeTransportError)
		}
		return "", false, nil
	}

	reply, err = BuildReply(video)
	if err != nil {
		s.recorder.RecordOutcome(monitoring.OutcomeFailed)
		return "", false, fmt.Errorf("failed to build reply for %s: %w", videoID, err)
	}

	logger.Info().Str("video_id", videoID).Msg("Snarfed video")
	s.recorder.RecordOutcome(monitoring.OutcomeReplied)
	return reply, true, nil
}

// BuildReply formats video as "Title: <title> (<duration>) | <channel>",
// leaving out the duration and channel parts when they are absent.
func BuildReply(video *models.Video) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s", video.Title)

	if video.Duration != "" {
		seconds, err := youtube.ParseISODuration(video.Duration)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " (%s)", youtube.FormatDuration(seconds))
	}

	if video.ChannelTitle != "" {
		fmt.Fprintf(&b, " | %s", video.ChannelTitle)
	}

	return b.String(), nil
}
