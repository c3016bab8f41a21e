package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RawPayload is the parsed shape of RawRecord.Payload as produced by the
// scrapers. Engagement counters are pointers because collectors for some
// platforms cannot read them.
type RawPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Platform    string     `json:"platform"`
	SourceURL   string     `json:"source_url"`
	Hashtags    []string   `json:"hashtags,omitempty"`
	Views       *int64     `json:"views,omitempty"`
	Likes       *int64     `json:"likes,omitempty"`
	Shares      *int64     `json:"shares,omitempty"`
	Comments    *int64     `json:"comments,omitempty"`
	Duration    *int64     `json:"duration,omitempty"`
	AudioName   string     `json:"audio_name,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Author      string     `json:"author,omitempty"`
}

// ParsePayload decodes and validates a raw record payload.
func ParsePayload(data string) (*RawPayload, error) {
	var p RawPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the fields the pipeline cannot proceed without.
// An unrecognized platform is rejected here rather than silently falling
// through to a default multiplier and a failed insert.
func (p *RawPayload) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("payload missing title")
	}
	if p.SourceURL == "" {
		return fmt.Errorf("payload missing source_url")
	}
	if p.Platform == "" {
		return fmt.Errorf("payload missing platform")
	}
	if !KnownPlatform(p.Platform) {
		return fmt.Errorf("unknown platform %q", p.Platform)
	}
	return nil
}

// HasEngagement reports whether any engagement counter was collected.
func (p *RawPayload) HasEngagement() bool {
	return p.Views != nil || p.Likes != nil || p.Shares != nil || p.Comments != nil
}

// Counter returns the value of an optional counter, zero when absent.
func Counter(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
