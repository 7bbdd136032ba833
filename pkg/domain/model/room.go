package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// DefaultRoom is the built-in room used when no rooms file is configured.
// The calendar resource id matches the deployment this service was written
// for.
var DefaultRoom = Room{
	ID:         "default",
	Name:       "Meeting Room",
	CalendarID: "cheppers.com_2d32353038373534353337@resource.calendar.google.com",
	Timezone:   "Europe/Budapest",
}

// Room maps a dashboard to one Google Calendar resource.
type Room struct {
	ID         string `toml:"id" json:"id"`
	Name       string `toml:"name" json:"name"`
	CalendarID string `toml:"calendar_id" json:"calendar_id"`
	Timezone   string `toml:"timezone" json:"timezone"`
}

// Validate checks if the Room is valid
func (r *Room) Validate() error {
	if r.ID == "" {
		return goerr.New("room ID cannot be empty")
	}
	if r.CalendarID == "" {
		return goerr.New("room calendar ID cannot be empty", goerr.V("id", r.ID))
	}
	if r.Timezone == "" {
		return goerr.New("room timezone cannot be empty", goerr.V("id", r.ID))
	}
	return nil
}
