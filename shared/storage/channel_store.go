package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ChannelSettings holds the per-channel overrides read from the settings file.
type ChannelSettings struct {
	Snarfer *bool  `yaml:"snarfer"`
	APIKey  string `yaml:"api_key"`
}

type channelFile struct {
	SnarferDefault *bool                      `yaml:"snarfer_default"`
	Channels       map[string]ChannelSettings `yaml:"channels"`
}

// ChannelStore is a read-mostly view of per-channel snarfer settings backed
// by a YAML file. Reload swaps the whole table so readers never see a
// partially loaded file.
type ChannelStore struct {
	filePath       string
	defaultAPIKey  string
	defaultEnabled bool

	mu       sync.RWMutex
	enabled  bool
	channels map[string]ChannelSettings
}

// NewChannelStore loads filePath. A missing file is not an error; every
// channel then uses the defaults.
func NewChannelStore(filePath, defaultAPIKey string, defaultEnabled bool) (*ChannelStore, error) {
	store := &ChannelStore{
		filePath:       filePath,
		defaultAPIKey:  strings.TrimSpace(defaultAPIKey),
		defaultEnabled: defaultEnabled,
		enabled:        defaultEnabled,
		channels:       make(map[string]ChannelSettings),
	}

	if err := store.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load channel settings: %w", err)
	}

	return store, nil
}

// APIKey returns the channel's own key, falling back to the global key.
func (cs *ChannelStore) APIKey(channel string) string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if settings, ok := cs.channels[channel]; ok {
		if key := strings.TrimSpace(settings.APIKey); key != "" {
			return key
		}
	}
	return cs.defaultAPIKey
}

// SnarferEnabled reports whether URL snarfing is on for channel.
func (cs *ChannelStore) SnarferEnabled(channel string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if settings, ok := cs.channels[channel]; ok && settings.Snarfer != nil {
		return *settings.Snarfer
	}
	return cs.enabled
}

// ChannelCount returns the number of channels with explicit settings.
func (cs *ChannelStore) ChannelCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.channels)
}

// Reload re-reads the settings file. On error the previous settings stay active.
func (cs *ChannelStore) Reload() error {
	data, err := os.ReadFile(cs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cs.swap(cs.defaultEnabled, make(map[string]ChannelSettings))
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", cs.filePath, err)
	}

	var file channelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", cs.filePath, err)
	}

	enabled := cs.defaultEnabled
	if file.SnarferDefault != nil {
		enabled = *file.SnarferDefault
	}

	channels := file.Channels
	if channels == nil {
		channels = make(map[string]ChannelSettings)
	}

	cs.swap(enabled, channels)
	return nil
}

func (cs *ChannelStore) swap(enabled bool, channels map[string]ChannelSettings) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.enabled = enabled
	cs.channels = channels
}
