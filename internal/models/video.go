package models

type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	Duration     string `json:"duration"`
	URL          string `json:"url"`
}
