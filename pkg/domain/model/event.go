package model

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Event is a single calendar entry in the dashboard payload. Derived from
// the upstream API response, never persisted.
type Event struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DashboardPayload is the one message pushed over a dashboard channel:
// the room's display name and today's events ordered by start time.
type DashboardPayload struct {
	RoomName string  `json:"room_name"`
	Events   []Event `json:"events"`
}

// Sorted returns true if events are in non-decreasing start order.
func (p *DashboardPayload) Sorted() bool {
	return sort.SliceIsSorted(p.Events, func(i, j int) bool {
		return p.Events[i].Start.Before(p.Events[j].Start)
	})
}

// SortEvents orders events by start time. The upstream query already orders
// by startTime; this keeps the invariant even if a backend does not.
func (p *DashboardPayload) SortEvents() {
	sort.SliceStable(p.Events, func(i, j int) bool {
		return p.Events[i].Start.Before(p.Events[j].Start)
	})
}

// Marshal serializes the payload as the channel wire format.
func (p *DashboardPayload) Marshal() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal dashboard payload")
	}
	return data, nil
}

// ParseDashboardPayload parses the channel wire format.
func ParseDashboardPayload(data []byte) (*DashboardPayload, error) {
	var p DashboardPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse dashboard payload")
	}
	return &p, nil
}
