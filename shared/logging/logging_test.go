package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"snarfer-stack/shared/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("JSONOutput", func(t *testing.T) {
		var buf bytes.Buffer
		if err := SetupWriter(&config.LoggingConfig{Level: "debug", Format: "json"}, &buf); err != nil {
			t.Fatalf("SetupWriter failed: %v", err)
		}

		log.Debug().Str("video_id", "abc123").Msg("hello")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Output is not JSON: %v (%q)", err, buf.String())
		}
		if entry["message"] != "hello" {
			t.Errorf("message = %v, want hello", entry["message"])
		}
		if entry["video_id"] != "abc123" {
			t.Errorf("video_id = %v, want abc123", entry["video_id"])
		}
	})

	t.Run("LevelFilters", func(t *testing.T) {
		var buf bytes.Buffer
		if err := SetupWriter(&config.LoggingConfig{Level: "warn", Format: "json"}, &buf); err != nil {
			t.Fatalf("SetupWriter failed: %v", err)
		}

		log.Info().Msg("should be dropped")
		if buf.Len() != 0 {
			t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
		}
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		var buf bytes.Buffer
		if err := SetupWriter(&config.LoggingConfig{Level: "loud"}, &buf); err == nil {
			t.Error("Expected error for invalid level")
		}
	})
}
