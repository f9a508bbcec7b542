package bridge

import "time"

// Metadata describes the tracked content. Zero-valued fields are omitted when
// forwarded to the platform SDK.
type Metadata struct {
	CanonicalURL string     `json:"canonical_url,omitempty" yaml:"canonical_url,omitempty"`
	PubDate      *time.Time `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`
	Title        string     `json:"title,omitempty" yaml:"title,omitempty"`
	Authors      []string   `json:"authors,omitempty" yaml:"authors,omitempty"`
	ImageURL     string     `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Section      string     `json:"section,omitempty" yaml:"section,omitempty"`
	Tags         []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Duration     int        `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// ExtraData is free-form data forwarded as Parse.ly extra_data.
type ExtraData map[string]interface{}

// PageViewOptions are the arguments of a page view call.
type PageViewOptions struct {
	URL       string                 `json:"url"`
	URLRef    string                 `json:"urlref,omitempty"`
	Metadata  *Metadata              `json:"metadata,omitempty"`
	ExtraData ExtraData              `json:"extraData,omitempty"`
	SiteID    string                 `json:"siteId,omitempty"`
	Action    string                 `json:"action,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EngagementOptions are the arguments of a start-engagement call.
type EngagementOptions struct {
	URL       string    `json:"url" yaml:"url"`
	URLRef    string    `json:"urlref,omitempty" yaml:"urlref,omitempty"`
	ExtraData ExtraData `json:"extraData,omitempty" yaml:"extra_data,omitempty"`
	SiteID    string    `json:"siteId,omitempty" yaml:"site_id,omitempty"`
}

// VideoMetadata describes a tracked video.
type VideoMetadata struct {
	Metadata
	VideoID string `json:"videoId"`
}

// PlayOptions are the arguments of a video play call.
type PlayOptions struct {
	URL       string        `json:"url"`
	URLRef    string        `json:"urlref,omitempty"`
	Video     VideoMetadata `json:"videoMetadata"`
	ExtraData ExtraData     `json:"extraData,omitempty"`
	SiteID    string        `json:"siteId,omitempty"`
}

// Element actions accepted by TrackElement.
const (
	ElementImpression = "impression"
	ElementView       = "view"
	ElementClick      = "click"
)

// ElementEvent is a single element-tracking call.
type ElementEvent struct {
	Action      string `json:"action"`
	ElementType string `json:"elementType"`
	ElementID   string `json:"elementId"`
	Location    string `json:"location,omitempty"`
}

// CommonParameters are merged into every page view and engagement call.
type CommonParameters struct {
	SiteID    string    `json:"siteId,omitempty" yaml:"site_id,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ExtraData ExtraData `json:"extraData,omitempty" yaml:"extra_data,omitempty"`
}
