package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/roomlab/roomboard/pkg/domain/model"
)

// Rooms holds CLI flags for the room registry
type Rooms struct {
	path string
}

// roomsFile is the TOML layout of a rooms configuration file:
//
//	[[room]]
//	id = "large"
//	name = "Large Meeting Room"
//	calendar_id = "...@resource.calendar.google.com"
//	timezone = "Europe/Budapest"
type roomsFile struct {
	Rooms []model.Room `toml:"room"`
}

// Flags returns CLI flags for rooms configuration
func (r *Rooms) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rooms-file",
			Usage:       "Path to a TOML rooms file (omit to use the built-in room)",
			Category:    "Rooms",
			Sources:     cli.EnvVars("ROOMBOARD_ROOMS_FILE"),
			Destination: &r.path,
		},
	}
}

// Configure loads the room registry. Without a rooms file the built-in
// default room is used.
func (r *Rooms) Configure() ([]model.Room, error) {
	if r.path == "" {
		return []model.Room{model.DefaultRoom}, nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read rooms file", goerr.V("path", r.path))
	}

	var file roomsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse rooms file", goerr.V("path", r.path))
	}
	if len(file.Rooms) == 0 {
		return nil, goerr.New("rooms file contains no rooms", goerr.V("path", r.path))
	}

	seen := make(map[string]bool)
	for i := range file.Rooms {
		if err := file.Rooms[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid room", goerr.V("index", i))
		}
		if seen[file.Rooms[i].ID] {
			return nil, goerr.New("duplicate room ID", goerr.V("id", file.Rooms[i].ID))
		}
		seen[file.Rooms[i].ID] = true
	}

	return file.Rooms, nil
}
