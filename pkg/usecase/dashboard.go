package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/roomlab/roomboard/pkg/domain/model"
)

// DayWindow computes [today 00:00, tomorrow 00:00) in the given time zone.
// An event instance belongs to the dashboard iff its start falls inside the
// window, so a meeting spanning midnight shows up on the day it starts.
func DayWindow(now time.Time, timezone string) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, time.Time{}, goerr.Wrap(err, "failed to load timezone", goerr.V("timezone", timezone))
	}

	local := now.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return dayStart, dayStart.AddDate(0, 0, 1), nil
}

// DayEvents fetches today's events of one room using already-resolved
// credentials. The result carries the calendar's display name as the room
// name; if the API returns none, the configured room name is used.
func (uc *UseCases) DayEvents(ctx context.Context, source oauth2.TokenSource, room model.Room) (*model.DashboardPayload, error) {
	if uc.calendar == nil {
		return nil, goerr.New("calendar source is not configured")
	}

	from, to, err := DayWindow(time.Now(), room.Timezone)
	if err != nil {
		return nil, err
	}

	payload, err := uc.calendar.DayEvents(ctx, source, room.CalendarID, from, to, room.Timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch day events", goerr.V("roomID", room.ID))
	}

	if payload.RoomName == "" {
		payload.RoomName = room.Name
	}

	return payload, nil
}
