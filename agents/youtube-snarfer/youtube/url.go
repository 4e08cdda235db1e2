package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID returns the video identifier embedded in a YouTube URL.
// The second return value is false when the URL is not a recognized video
// link or when the expected query parameter or path segment is missing.
func ExtractVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	var id string
	switch strings.ToLower(u.Hostname()) {
	case "youtu.be":
		id = pathSegment(u.Path, 1)
	case "youtube.com", "www.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/v/"):
			id = pathSegment(u.Path, 2)
		}
	case "m.youtube.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		}
	case "youtube.googleapis.com":
		if strings.HasPrefix(u.Path, "/v/") {
			id = pathSegment(u.Path, 2)
		}
	}

	if id == "" {
		return "", false
	}
	return id, true
}

// pathSegment returns the n-th element of path split on "/", so index 1 is
// the first segment after the leading slash.
func pathSegment(path string, n int) string {
	parts := strings.Split(path, "/")
	if n >= len(parts) {
		return ""
	}
	return parts[n]
}
