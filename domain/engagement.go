package domain

import (
	"time"

	"github.com/google/uuid"
)

// CounterBucket names a family of engagement counters.
type CounterBucket string

const (
	BucketGenericVisits   CounterBucket = "generic_visits"
	BucketPromotedVisits  CounterBucket = "promoted_visits"
	BucketDisplayAdVisits CounterBucket = "display_ad_visits"
)

// UnknownCreativeID buckets sponsored visits whose creative instance id is missing.
const UnknownCreativeID = "unknown"

// CounterKey addresses one counter. CreativeID is empty for generic visits.
type CounterKey struct {
	Bucket     CounterBucket
	CreativeID string
}

func GenericVisitsKey() CounterKey {
	return CounterKey{Bucket: BucketGenericVisits}
}

func PromotedVisitsKey(creativeID string) CounterKey {
	return CounterKey{Bucket: BucketPromotedVisits, CreativeID: creativeID}
}

func DisplayAdVisitsKey(creativeID string) CounterKey {
	return CounterKey{Bucket: BucketDisplayAdVisits, CreativeID: creativeID}
}

// EngagementCounters is a point-in-time view of the session counters.
type EngagementCounters struct {
	GenericVisits              int64            `json:"generic_visits"`
	PromotedVisitsPerCampaign  map[string]int64 `json:"promoted_visits_per_campaign"`
	DisplayAdVisitsPerCreative map[string]int64 `json:"display_ad_visits_per_creative"`
}

func NewEngagementCounters() *EngagementCounters {
	return &EngagementCounters{
		PromotedVisitsPerCampaign:  make(map[string]int64),
		DisplayAdVisitsPerCreative: make(map[string]int64),
	}
}

// Set stores value under key.
func (c *EngagementCounters) Set(key CounterKey, value int64) {
	switch key.Bucket {
	case BucketGenericVisits:
		c.GenericVisits = value
	case BucketPromotedVisits:
		c.PromotedVisitsPerCampaign[key.CreativeID] = value
	case BucketDisplayAdVisits:
		c.DisplayAdVisitsPerCreative[key.CreativeID] = value
	}
}

type EngagementEventType string

const (
	EventSessionVisitMilestone EngagementEventType = "session_visit_milestone"
	EventPromotedItemVisit     EngagementEventType = "promoted_item_visit"
	EventDisplayAdVisit        EngagementEventType = "display_ad_visit"
)

// EngagementEvent is emitted to the host when a click crosses a reporting threshold
// or visits sponsored content.
type EngagementEvent struct {
	EventID            string              `json:"event_id"`
	Type               EngagementEventType `json:"type"`
	CardPosition       int                 `json:"card_position"`
	SubjectUUID        string              `json:"subject_uuid,omitempty"`
	CreativeInstanceID string              `json:"creative_instance_id,omitempty"`
	Count              int64               `json:"count,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

func NewMilestoneEvent(cardPosition int, count int64) *EngagementEvent {
	return newEvent(EventSessionVisitMilestone, cardPosition, "", "", count)
}

func NewPromotedItemVisitEvent(cardPosition int, cardUUID, creativeID string) *EngagementEvent {
	return newEvent(EventPromotedItemVisit, cardPosition, cardUUID, creativeID, 0)
}

func NewDisplayAdVisitEvent(cardPosition int, adUUID, creativeID string) *EngagementEvent {
	return newEvent(EventDisplayAdVisit, cardPosition, adUUID, creativeID, 0)
}

func newEvent(t EngagementEventType, position int, subject, creative string, count int64) *EngagementEvent {
	return &EngagementEvent{
		EventID:            uuid.NewString(),
		Type:               t,
		CardPosition:       position,
		SubjectUUID:        subject,
		CreativeInstanceID: creative,
		Count:              count,
		CreatedAt:          time.Now().UTC(),
	}
}
