// Package sse implements Server-Sent Events for pushing gallery changes
// to connected dashboards.
package sse

import (
	"time"

	"github.com/galleriaapp/galleria-server/internal/domain"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventArtworkCreated represents an artwork creation event.
	EventArtworkCreated EventType = "artwork.created"
	// EventArtworkUpdated represents an artwork update event.
	EventArtworkUpdated EventType = "artwork.updated"
	// EventArtworkDeleted represents an artwork deletion event.
	EventArtworkDeleted EventType = "artwork.deleted"
	// EventEngagementRecorded represents a view, like, or inquiry being
	// recorded against an artwork.
	EventEngagementRecorded EventType = "artwork.engagement"

	// EventCatalogueCreated represents a catalogue creation event.
	EventCatalogueCreated EventType = "catalogue.created"
	// EventCatalogueUpdated represents a catalogue update event,
	// including artwork membership and ordering changes.
	EventCatalogueUpdated EventType = "catalogue.updated"
	// EventCatalogueDeleted represents a catalogue deletion event.
	EventCatalogueDeleted EventType = "catalogue.deleted"

	// EventAnalysisCompleted represents a finished curation analysis.
	EventAnalysisCompleted EventType = "curation.analysis_completed"

	// EventMarketReloaded represents a market snapshot reload.
	EventMarketReloaded EventType = "market.reloaded"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct
// deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// ArtworkEventData is the data payload for artwork create and update
// events. The full artwork is included so clients can render without a
// follow-up fetch.
type ArtworkEventData struct {
	Artwork *domain.Artwork `json:"artwork"`
}

// ArtworkDeletedEventData is the data payload for artwork delete events.
type ArtworkDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	ArtworkID string    `json:"artwork_id"`
}

// EngagementEventData is the data payload for engagement events,
// carrying the updated counters.
type EngagementEventData struct {
	ArtworkID string                `json:"artwork_id"`
	Kind      domain.EngagementKind `json:"kind"`
	Views     int64                 `json:"views"`
	Likes     int64                 `json:"likes"`
	Inquiries int64                 `json:"inquiries"`
}

// CatalogueEventData is the data payload for catalogue create and
// update events.
type CatalogueEventData struct {
	Catalogue *domain.Catalogue `json:"catalogue"`
}

// CatalogueDeletedEventData is the data payload for catalogue delete
// events.
type CatalogueDeletedEventData struct {
	DeletedAt   time.Time `json:"deleted_at"`
	CatalogueID string    `json:"catalogue_id"`
}

// AnalysisEventData is the data payload for completed curation
// analyses.
type AnalysisEventData struct {
	CompletedAt         time.Time `json:"completed_at"`
	CatalogueID         string    `json:"catalogue_id"`
	Score               int       `json:"score"`
	RecommendationCount int       `json:"recommendation_count"`
}

// MarketReloadedEventData is the data payload for market snapshot
// reloads.
type MarketReloadedEventData struct {
	ReloadedAt time.Time `json:"reloaded_at"`
	LoadID     string    `json:"load_id"`
	ItemCount  int       `json:"item_count"`
	PeerCount  int       `json:"peer_count"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewArtworkCreatedEvent creates an artwork creation event.
func NewArtworkCreatedEvent(artwork *domain.Artwork) Event {
	return Event{
		Type:      EventArtworkCreated,
		Timestamp: time.Now(),
		Data:      ArtworkEventData{Artwork: artwork},
	}
}

// NewArtworkUpdatedEvent creates an artwork update event.
func NewArtworkUpdatedEvent(artwork *domain.Artwork) Event {
	return Event{
		Type:      EventArtworkUpdated,
		Timestamp: time.Now(),
		Data:      ArtworkEventData{Artwork: artwork},
	}
}

// NewArtworkDeletedEvent creates an artwork deletion event.
func NewArtworkDeletedEvent(artworkID string) Event {
	return Event{
		Type:      EventArtworkDeleted,
		Timestamp: time.Now(),
		Data: ArtworkDeletedEventData{
			ArtworkID: artworkID,
			DeletedAt: time.Now(),
		},
	}
}

// NewEngagementRecordedEvent creates an engagement event from the
// artwork's updated counters.
func NewEngagementRecordedEvent(artwork *domain.Artwork, kind domain.EngagementKind) Event {
	return Event{
		Type:      EventEngagementRecorded,
		Timestamp: time.Now(),
		Data: EngagementEventData{
			ArtworkID: artwork.ID,
			Kind:      kind,
			Views:     artwork.Views,
			Likes:     artwork.Likes,
			Inquiries: artwork.Inquiries,
		},
	}
}

// NewCatalogueCreatedEvent creates a catalogue creation event.
func NewCatalogueCreatedEvent(catalogue *domain.Catalogue) Event {
	return Event{
		Type:      EventCatalogueCreated,
		Timestamp: time.Now(),
		Data:      CatalogueEventData{Catalogue: catalogue},
	}
}

// NewCatalogueUpdatedEvent creates a catalogue update event.
func NewCatalogueUpdatedEvent(catalogue *domain.Catalogue) Event {
	return Event{
		Type:      EventCatalogueUpdated,
		Timestamp: time.Now(),
		Data:      CatalogueEventData{Catalogue: catalogue},
	}
}

// NewCatalogueDeletedEvent creates a catalogue deletion event.
func NewCatalogueDeletedEvent(catalogueID string) Event {
	return Event{
		Type:      EventCatalogueDeleted,
		Timestamp: time.Now(),
		Data: CatalogueDeletedEventData{
			CatalogueID: catalogueID,
			DeletedAt:   time.Now(),
		},
	}
}

// NewAnalysisCompletedEvent creates a curation analysis event.
func NewAnalysisCompletedEvent(catalogueID string, score, recommendationCount int) Event {
	return Event{
		Type:      EventAnalysisCompleted,
		Timestamp: time.Now(),
		Data: AnalysisEventData{
			CatalogueID:         catalogueID,
			Score:               score,
			RecommendationCount: recommendationCount,
			CompletedAt:         time.Now(),
		},
	}
}

// NewMarketReloadedEvent creates a market snapshot reload event.
func NewMarketReloadedEvent(loadID string, itemCount, peerCount int) Event {
	return Event{
		Type:      EventMarketReloaded,
		Timestamp: time.Now(),
		Data: MarketReloadedEventData{
			LoadID:     loadID,
			ItemCount:  itemCount,
			PeerCount:  peerCount,
			ReloadedAt: time.Now(),
		},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      HeartbeatEventData{ServerTime: time.Now()},
	}
}
