package bridge

import (
	"context"
	"sync"
)

// Parameterized merges CommonParameters into page view and engagement calls
// before delegating to the wrapped bridge. Call-specific values win.
type Parameterized struct {
	Bridge

	mu     sync.RWMutex
	common CommonParameters
}

// NewParameterized wraps next with an empty set of common parameters.
func NewParameterized(next Bridge) *Parameterized {
	return &Parameterized{Bridge: next}
}

// SetCommonParameters replaces the common parameters.
func (p *Parameterized) SetCommonParameters(params CommonParameters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.common = cloneCommon(params)
}

// CommonParameters returns a copy of the current common parameters.
func (p *Parameterized) CommonParameters() CommonParameters {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneCommon(p.common)
}

// ClearCommonParameters drops every common parameter.
func (p *Parameterized) ClearCommonParameters() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.common = CommonParameters{}
}

// TrackPageView implements Bridge.
func (p *Parameterized) TrackPageView(ctx context.Context, opts PageViewOptions) error {
	common := p.CommonParameters()

	opts.Metadata = MergeMetadata(common.Metadata, opts.Metadata)
	opts.ExtraData = MergeExtraData(common.ExtraData, opts.ExtraData)
	if opts.SiteID == "" {
		opts.SiteID = common.SiteID
	}
	return p.Bridge.TrackPageView(ctx, opts)
}

// StartEngagement implements Bridge.
func (p *Parameterized) StartEngagement(ctx context.Context, opts EngagementOptions) error {
	common := p.CommonParameters()

	opts.ExtraData = MergeExtraData(common.ExtraData, opts.ExtraData)
	if opts.SiteID == "" {
		opts.SiteID = common.SiteID
	}
	return p.Bridge.StartEngagement(ctx, opts)
}

// MergeMetadata overlays the non-zero fields of over onto base.
// It returns nil when both are nil.
func MergeMetadata(base, over *Metadata) *Metadata {
	if base == nil && over == nil {
		return nil
	}
	merged := Metadata{}
	if base != nil {
		merged = *base
	}
	if over == nil {
		return &merged
	}

	if over.CanonicalURL != "" {
		merged.CanonicalURL = over.CanonicalURL
	}
	if over.PubDate != nil {
		merged.PubDate = over.PubDate
	}
	if over.Title != "" {
		merged.Title = over.Title
	}
	if len(over.Authors) > 0 {
		merged.Authors = over.Authors
	}
	if over.ImageURL != "" {
		merged.ImageURL = over.ImageURL
	}
	if over.Section != "" {
		merged.Section = over.Section
	}
	if len(over.Tags) > 0 {
		merged.Tags = over.Tags
	}
	if over.Duration != 0 {
		merged.Duration = over.Duration
	}
	return &merged
}

// MergeExtraData returns a new map with the keys of base overridden by over.
func MergeExtraData(base, over ExtraData) ExtraData {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	merged := make(ExtraData, len(base)+len(over))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

func cloneCommon(params CommonParameters) CommonParameters {
	clone := CommonParameters{
		SiteID:    params.SiteID,
		ExtraData: MergeExtraData(nil, params.ExtraData),
	}
	if params.Metadata != nil {
		md := *params.Metadata
		clone.Metadata = &md
	}
	return clone
}
