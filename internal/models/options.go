package models

import "time"

// Options for the CLI.
type Options struct {
	Debug       bool   `doc:"Enable debug logging" short:"d" default:"false"`
	Host        string `doc:"Hostname to listen on" default:"localhost"`
	Port        int    `doc:"Port to listen on" short:"p" default:"3000"`
	Provider    string `doc:"Generation provider: gemini or openai" default:"gemini"`
	Model       string `doc:"Model name, empty for the provider default"`
	Timeout     int    `doc:"Generation timeout in seconds, 0 disables it" default:"120"`
	MaxUploadMB int    `doc:"Largest accepted upload in megabytes" default:"20"`
}

// GenerateTimeout returns Timeout as a duration.
func (o *Options) GenerateTimeout() time.Duration {
	return time.Duration(o.Timeout) * time.Second
}

// MaxUploadBytes returns MaxUploadMB in bytes.
func (o *Options) MaxUploadBytes() int64 {
	return int64(o.MaxUploadMB) << 20
}
