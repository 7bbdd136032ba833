package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
	"github.com/roomlab/roomboard/pkg/usecase"
	"github.com/roomlab/roomboard/pkg/utils/errutil"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

const (
	sessionIDCookie     = "session_id"
	sessionSecretCookie = "session_secret"
)

type successResponse struct {
	Success bool `json:"success"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// sessionFromRequest resolves the session behind the cookie pair, or nil
// when the browser is not signed in.
func (s *Server) sessionFromRequest(r *http.Request) *auth.Session {
	idCookie, err := r.Cookie(sessionIDCookie)
	if err != nil {
		return nil
	}
	secretCookie, err := r.Cookie(sessionSecretCookie)
	if err != nil {
		return nil
	}

	session, err := s.uc.ValidateSession(r.Context(),
		types.SessionID(idCookie.Value),
		types.SessionSecret(secretCookie.Value),
	)
	if err != nil {
		return nil
	}
	return session
}

// signinHandler verifies the identity token generated by the Google Sign-In
// widget and opens a session. Invalid tokens get 401 and leave no session
// state behind.
func (s *Server) signinHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to parse signin form"), http.StatusBadRequest)
		return
	}

	idToken := r.PostFormValue("id_token")
	if idToken == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("missing id_token"), http.StatusBadRequest)
		return
	}

	session, err := s.uc.SignIn(r.Context(), idToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidIDToken) {
			logging.From(r.Context()).Info("no valid identity token present", "error", err)
			http.Error(w, "invalid identity token", http.StatusUnauthorized)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	setSessionCookies(w, r, session)
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

// logoutHandler deletes the session and clears the cookie pair.
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if idCookie, err := r.Cookie(sessionIDCookie); err == nil {
		if err := s.uc.Logout(r.Context(), types.SessionID(idCookie.Value)); err != nil {
			errutil.Handle(r.Context(), err, "failed to delete session on logout")
		}
	}

	clearSessionCookies(w, r)
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

// oauthCallbackHandler finishes the consent round trip: the code is redeemed,
// the credential stored, and the browser sent back to the URL that triggered
// authorization. A state with no pending record (expired, or a replayed
// callback) goes back to the login page instead of an error.
func (s *Server) oauthCallbackHandler(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("missing state or code parameter"), http.StatusBadRequest)
		return
	}

	target, err := s.uc.HandleCallback(r.Context(), state, code)
	if err != nil {
		if errors.Is(err, usecase.ErrStateNotFound) {
			logging.From(r.Context()).Info("stale oauth callback, redirecting to login", "error", err)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	if target == "" {
		target = "/calendar"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func setSessionCookies(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    session.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     sessionSecretCookie,
		Value:    session.Secret.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
}

func clearSessionCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{sessionIDCookie, sessionSecretCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}
