package httpapi

import (
	"net/http"
	"time"

	"appointment-scheduler/internal/account"
	"appointment-scheduler/internal/middleware"
)

const (
	refreshCookie = "refresh_token"
	refreshPath   = "/auth/"
)

type registerResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

type loginResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in account.RegisterInput
	if !decode(w, r, &in) {
		return
	}
	sess, err := s.accounts.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.setCookies(w, sess)
	writeJSON(w, http.StatusCreated, registerResponse{UserID: sess.UserID, Token: sess.AccessToken})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in account.LoginInput
	if !decode(w, r, &in) {
		return
	}
	sess, err := s.accounts.Login(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.setCookies(w, sess)
	writeJSON(w, http.StatusOK, loginResponse{UserID: sess.UserID, Name: sess.Name, Token: sess.AccessToken})
}

// refresh takes the refresh token from its cookie, or from a JSON body
// for clients that do not keep cookies.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	raw := ""
	if c, err := r.Cookie(refreshCookie); err == nil {
		raw = c.Value
	} else if r.ContentLength != 0 {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if !decode(w, r, &body) {
			return
		}
		raw = body.RefreshToken
	}

	sess, err := s.accounts.Refresh(r.Context(), raw)
	if err != nil {
		s.clearCookies(w)
		s.writeError(w, r, err)
		return
	}
	s.setCookies(w, sess)
	writeJSON(w, http.StatusOK, tokenResponse{Token: sess.AccessToken})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	if err := s.accounts.Logout(r.Context(), uid); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.clearCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setCookies(w http.ResponseWriter, sess account.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		MaxAge:   int(s.cfg.AccessTTL / time.Second),
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    sess.RefreshToken,
		Path:     refreshPath,
		Expires:  sess.RefreshExpiresAt,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearCookies(w http.ResponseWriter) {
	for _, c := range []struct{ name, path string }{
		{middleware.AccessCookie, "/"},
		{refreshCookie, refreshPath},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    "",
			Path:     c.path,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.cfg.SecureCookies,
		})
	}
}
