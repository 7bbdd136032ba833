package calendar

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

// eventFields restricts the response to what the dashboard needs: the
// calendar's display name plus each event's summary and start/end.
const eventFields = "items(summary,start,end),summary,nextPageToken"

const defaultRetries = 3

// Client queries the Google Calendar API. One instance is shared across all
// requests; per-user authorization arrives as a token source on each call.
type Client struct {
	retries int
}

var _ interfaces.CalendarSource = &Client{}

type Option func(*Client)

// WithRetries sets how many times a failed list call is attempted in total.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DayEvents fetches events of one calendar in [from, to), recurring events
// expanded into single instances, ordered by start time. Only the first page
// is read; a busy calendar overflowing one page is logged as truncated.
func (c *Client) DayEvents(ctx context.Context, source oauth2.TokenSource, calendarID string, from, to time.Time, timezone string) (*model.DashboardPayload, error) {
	srv, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create calendar service")
	}

	events, err := c.listEvents(ctx, srv, calendarID, from, to, timezone)
	if err != nil {
		return nil, err
	}

	if events.NextPageToken != "" {
		logging.From(ctx).Warn("calendar result truncated to first page",
			"calendar_id", calendarID,
			"items", len(events.Items),
		)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load timezone", goerr.V("timezone", timezone))
	}

	payload := &model.DashboardPayload{
		RoomName: events.Summary,
		Events:   make([]model.Event, 0, len(events.Items)),
	}
	for _, item := range events.Items {
		event, err := convertEvent(item, loc)
		if err != nil {
			logging.From(ctx).Debug("skipping unparseable event", "error", err)
			continue
		}
		payload.Events = append(payload.Events, event)
	}
	payload.SortEvents()

	return payload, nil
}

func (c *Client) listEvents(ctx context.Context, srv *gcal.Service, calendarID string, from, to time.Time, timezone string) (*gcal.Events, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		events, err := srv.Events.List(calendarID).
			SingleEvents(true).
			OrderBy("startTime").
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			TimeZone(timezone).
			Fields(eventFields).
			Context(ctx).
			Do()
		if err == nil {
			return events, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		logging.From(ctx).Warn("calendar list failed, retrying",
			"calendar_id", calendarID,
			"attempt", attempt+1,
			"error", err,
		)
	}

	return nil, goerr.Wrap(lastErr, "failed to list calendar events",
		goerr.V("calendarID", calendarID),
		goerr.V("retries", c.retries),
	)
}

// convertEvent maps an API event to the dashboard shape. Timed events carry
// DateTime; all-day events only carry Date and resolve to midnight in the
// calendar's time zone.
func convertEvent(item *gcal.Event, loc *time.Location) (model.Event, error) {
	start, err := parseEventTime(item.Start, loc)
	if err != nil {
		return model.Event{}, goerr.Wrap(err, "invalid event start")
	}
	end, err := parseEventTime(item.End, loc)
	if err != nil {
		return model.Event{}, goerr.Wrap(err, "invalid event end")
	}

	return model.Event{
		Name:  item.Summary,
		Start: start,
		End:   end,
	}, nil
}

func parseEventTime(edt *gcal.EventDateTime, loc *time.Location) (time.Time, error) {
	if edt == nil {
		return time.Time{}, goerr.New("event time is missing")
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, goerr.Wrap(err, "failed to parse event datetime", goerr.V("value", edt.DateTime))
		}
		return t, nil
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", edt.Date, loc)
		if err != nil {
			return time.Time{}, goerr.Wrap(err, "failed to parse event date", goerr.V("value", edt.Date))
		}
		return t, nil
	}
	return time.Time{}, goerr.New("event time has neither datetime nor date")
}
