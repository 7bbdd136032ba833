package http

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/usecase"
	"github.com/roomlab/roomboard/pkg/utils/async"
	"github.com/roomlab/roomboard/pkg/utils/errutil"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// homeHandler serves the login page with the OAuth client id for the
// sign-in widget.
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	renderPage(r.Context(), w, "home.html", map[string]string{
		"ClientID": s.clientID,
	})
}

// calendarHandler serves the dashboard page, and upgrades channel requests
// to a WebSocket. The page path resolves authorization up front so the
// consent redirect happens on a plain navigation, not inside a socket.
func (s *Server) calendarHandler(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		s.dashboardChannel(w, r)
		return
	}

	session := s.sessionFromRequest(r)
	authz, err := s.uc.CredentialsFor(r.Context(), session, usecase.CalendarScope, r.URL.RequestURI())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	switch authz.Status {
	case usecase.NeedsLogin, usecase.NeedsConsent:
		http.Redirect(w, r, authz.RedirectURL, http.StatusFound)
	case usecase.Authorized:
		renderPage(r.Context(), w, "dashboard.html", map[string]string{
			"RoomName": s.room.Name,
		})
	default:
		errutil.HandleHTTP(r.Context(), w, goerr.New("unknown authorization status"), http.StatusInternalServerError)
	}
}

// dashboardChannel runs the channel state machine: register on open, push
// today's events once via a deferred task, ignore inbound messages,
// unregister on close.
func (s *Server) dashboardChannel(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFromRequest(r)

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		errutil.Handle(r.Context(), goerr.Wrap(err, "failed to upgrade dashboard channel"), "websocket upgrade error")
		return
	}

	conn := NewConn(ws)
	s.hub.Register(conn)

	// The fetch runs off the open handshake so a slow upstream call never
	// stalls the upgrade.
	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return s.pushDayEvents(ctx, conn, session)
	})

	// Inbound messages are ignored; the read loop only notices the close.
	go func() {
		defer func() {
			s.hub.Unregister(conn)
			conn.Close()
		}()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// pushDayEvents resolves authorization and pushes the single payload. The
// connection is checked for liveness before every write: the browser may be
// gone before the upstream call returns. Resolution here is passive — an
// unauthorized channel is closed without starting a consent round trip,
// since a close frame cannot redirect anyone.
func (s *Server) pushDayEvents(ctx context.Context, conn *Conn, session *auth.Session) error {
	authz, err := s.uc.Credentials(ctx, session, usecase.CalendarScope)
	if err != nil {
		conn.CloseWithReason(websocket.CloseInternalServerErr, "authorization failed")
		return goerr.Wrap(err, "failed to resolve authorization for channel")
	}

	if authz.Status != usecase.Authorized {
		logging.From(ctx).Info("closing unauthorized dashboard channel", "status", authz.Status)
		conn.CloseWithReason(websocket.ClosePolicyViolation, "authorization required")
		return nil
	}

	payload, err := s.uc.DayEvents(ctx, authz.TokenSource, s.room)
	if err != nil {
		conn.CloseWithReason(websocket.CloseInternalServerErr, "calendar fetch failed")
		return goerr.Wrap(err, "failed to fetch day events for channel")
	}

	data, err := payload.Marshal()
	if err != nil {
		conn.CloseWithReason(websocket.CloseInternalServerErr, "payload error")
		return err
	}

	if !conn.Alive() {
		logging.From(ctx).Debug("channel closed before push, dropping payload")
		return nil
	}
	if err := conn.Send(data); err != nil {
		// Losing the race against a close is not a failure.
		logging.From(ctx).Debug("push failed, channel gone", "error", err)
	}

	return nil
}
