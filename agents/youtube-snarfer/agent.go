package youtubesnarfer

import (
	"context"
	"fmt"
	"time"

	"snarfer-stack/agents/youtube-snarfer/discord"
	"snarfer-stack/agents/youtube-snarfer/snarfer"
	"snarfer-stack/agents/youtube-snarfer/youtube"
	"snarfer-stack/shared/config"
	"snarfer-stack/shared/monitoring"
	"snarfer-stack/shared/scheduler"
	"snarfer-stack/shared/storage"

	"github.com/rs/zerolog/log"
)

// SnarferMetrics represents the state reported after each settings refresh
type SnarferMetrics struct {
	ChannelsConfigured int            `json:"channels_configured"`
	Outcomes           map[string]int `json:"outcomes"`
}

// GetSummary implements the scheduler.Metrics interface
func (m SnarferMetrics) GetSummary() string {
	return fmt.Sprintf("%d channels configured, replied %d, not found %d, transport errors %d, failed %d",
		m.ChannelsConfigured,
		m.Outcomes[monitoring.OutcomeReplied],
		m.Outcomes[monitoring.OutcomeNotFound],
		m.Outcomes[monitoring.OutcomeTransportError],
		m.Outcomes[monitoring.OutcomeFailed])
}

// SnarferAgent implements the scheduler.Agent interface
type SnarferAgent struct {
	config        *config.Config
	monitor       *monitoring.Monitor
	offline       bool
	youtubeClient *youtube.Client
	channelStore  *storage.ChannelStore
	snarfer       *snarfer.Snarfer
	bot           *discord.Bot
}

type AgentOption func(*SnarferAgent)

// Offline skips connecting to Discord. Used by --once runs and tests.
func Offline() AgentOption {
	return func(a *SnarferAgent) {
		a.offline = true
	}
}

func NewSnarferAgent(cfg *config.Config, monitor *monitoring.Monitor, opts ...AgentOption) *SnarferAgent {
	if monitor == nil {
		monitor = monitoring.NewMonitor()
	}
	agent := &SnarferAgent{
		config:  cfg,
		monitor: monitor,
	}
	for _, opt := range opts {
		opt(agent)
	}
	return agent
}

func (a *SnarferAgent) Name() string {
	return "YouTube Snarfer"
}

func (a *SnarferAgent) Initialize(ctx context.Context) error {
	log.Info().Msgf("Initializing %s...", a.Name())

	if a.config.YouTube.APIKey == "" {
		log.Warn().Msg("No global YouTube Data API v3 key set; only channels with their own key will be snarfed")
	}

	if a.youtubeClient == nil {
		client, err := youtube.NewClient(ctx, &a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.youtubeClient = client
		log.Info().Dur("timeout", a.config.YouTube.Timeout()).Msg("YouTube client initialized")
	}

	if a.channelStore == nil {
		store, err := storage.NewChannelStore(
			a.config.Channels.File,
			a.config.YouTube.APIKey,
			a.config.Channels.SnarferEnabledByDefault(),
		)
		if err != nil {
			return fmt.Errorf("failed to create channel store: %w", err)
		}
		a.channelStore = store
		log.Info().Int("channels", store.ChannelCount()).Str("file", a.config.Channels.File).Msg("Channel settings loaded")
	}

	if a.snarfer == nil {
		a.snarfer = snarfer.New(a.channelStore, a.youtubeClient, a.monitor)
	}

	if a.offline || a.bot != nil {
		return nil
	}

	bot, err := discord.NewBot(a.config.Discord.Token, a.snarfer)
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}
	if err := bot.Open(ctx); err != nil {
		return err
	}
	a.bot = bot

	return nil
}

// RunOnce reloads the per-channel settings file and reports the snarf
// counters collected so far.
func (a *SnarferAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()

	if a.channelStore == nil {
		return fmt.Errorf("agent not initialized")
	}

	if err := a.channelStore.Reload(); err != nil {
		// Previous settings stay active
		if events != nil && events.OnPartialFailure != nil {
			events.OnPartialFailure(fmt.Errorf("failed to reload channel settings: %w", err), time.Since(startTime))
		}
	}

	metrics := SnarferMetrics{
		ChannelsConfigured: a.channelStore.ChannelCount(),
		Outcomes:           a.monitor.Outcomes(),
	}

	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, time.Since(startTime))
	}

	return nil
}

func (a *SnarferAgent) Close() error {
	if a.bot == nil {
		return nil
	}
	err := a.bot.Close()
	a.bot = nil
	return err
}
