package interfaces

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/roomlab/roomboard/pkg/domain/model"
)

// CalendarSource fetches the events of one calendar inside a time window,
// recurring events expanded, ordered by start time. The payload carries the
// calendar's display name as the room name.
type CalendarSource interface {
	DayEvents(ctx context.Context, source oauth2.TokenSource, calendarID string, from, to time.Time, timezone string) (*model.DashboardPayload, error)
}
