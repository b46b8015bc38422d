package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/render"
	"github.com/goliatone/go-roadmap/pkg/renderers/html"
	"github.com/goliatone/go-roadmap/pkg/store"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// Wizard routes and form names.
const (
	WizardPath      = "/wizard"
	NextPath        = "/wizard/next"
	PreviousPath    = "/wizard/previous"
	SubmitPath      = "/wizard/submit"
	ResetPath       = "/wizard/reset"
	SavePath        = "/wizard/save"
	HistoryPath     = "/roadmaps"
	CookieName      = "roadmap_session"
	CSRFField       = "csrf_token"
	sessionIDKey    = "wizard"
	historyPageSize = 50
)

// Notices shown after a redirect.
const (
	noticeFallback = "We could not reach the roadmap service, so here is a general roadmap to get you started."
	noticeInFlight = "Your roadmap is still being generated."
	noticeFailed   = "Could not generate your roadmap. Please try again."
	noticeExpired  = "Your session expired. Please try again."
	noticeSaved    = "Saved to Dashboard"
	noticeNoSave   = "Could not save your roadmap. Please try again."
	noticeNothing  = "Generate a roadmap before saving it."
)

// visit is the wizard state of one request.
type visit struct {
	entry  *SessionEntry
	cookie *sessions.Session
}

func (s *Server) visit(r *http.Request) (*visit, error) {
	cookie, err := s.cookies.Get(r, CookieName)
	if err != nil {
		s.logger.Debug("discarding unreadable session cookie", zap.Error(err))
	}
	if id, ok := cookie.Values[sessionIDKey].(string); ok {
		if entry, err := s.sessions.Get(id); err == nil {
			return &visit{entry: entry, cookie: cookie}, nil
		}
	}

	entry, err := s.sessions.Create()
	if err != nil {
		return nil, err
	}
	cookie.Values[sessionIDKey] = entry.ID
	return &visit{entry: entry, cookie: cookie}, nil
}

func (v *visit) notice() string {
	var parts []string
	for _, flash := range v.cookie.Flashes() {
		if text, ok := flash.(string); ok && text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func (v *visit) hidden() map[string]string {
	return render.MergeHiddenFields(nil, render.CSRFToken(CSRFField, v.entry.CSRF))
}

func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	v, err := s.visit(r)
	if err != nil {
		s.fail(w, "start wizard session", err)
		return
	}
	session := v.entry.Session
	notice := v.notice()

	var body []byte
	if roadmap, ok := session.Roadmap(); ok {
		options := render.RenderOptions{
			ResetAction: ResetPath,
			Saved:       v.entry.SavedID() != "",
			Notice:      notice,
			Hidden:      v.hidden(),
		}
		if s.history != nil {
			options.SaveAction = SavePath
		}
		body, err = s.pages.Render(r.Context(), render.Project(roadmap), options)
	} else {
		body, err = s.pages.RenderWizard(r.Context(), html.WizardView{
			Step:       session.Step(),
			TotalSteps: wizard.TotalSteps,
			Progress:   session.Progress(),
			Input:      session.Input(),
			Errors:     session.Errors(),
			InFlight:   session.InFlight(),
			Notice:     notice,
			Actions: html.WizardActions{
				Next:     NextPath,
				Previous: PreviousPath,
				Submit:   SubmitPath,
			},
			Hidden: v.hidden(),
		})
	}
	if err != nil {
		s.fail(w, "render wizard", err)
		return
	}

	if err := v.cookie.Save(r, w); err != nil {
		s.fail(w, "save session cookie", err)
		return
	}
	writeHTML(w, http.StatusOK, body)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.post(w, r, func(v *visit) {
		v.entry.Session.Advance()
	})
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.post(w, r, func(v *visit) {
		v.entry.Session.Retreat()
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.post(w, r, func(v *visit) {
		session := v.entry.Session
		if session.Step() != wizard.FinalStep {
			session.Advance()
			return
		}

		// The generator runs to completion even if the browser goes away; the
		// client timeout and server shutdown still bound it.
		_, err := session.Submit(context.WithoutCancel(r.Context()))
		var submitErr *wizard.SubmissionError
		switch {
		case err == nil:
			if v.entry.TakeFallback() {
				v.cookie.AddFlash(noticeFallback)
			}
		case errors.Is(err, wizard.ErrValidation):
		case errors.Is(err, wizard.ErrSubmissionInFlight):
			v.cookie.AddFlash(noticeInFlight)
		case errors.As(err, &submitErr):
			s.logger.Warn("wizard submission failed", zap.String("session", v.entry.ID), zap.Error(err))
			v.cookie.AddFlash(noticeFailed)
		default:
			s.logger.Error("wizard submission error", zap.String("session", v.entry.ID), zap.Error(err))
			v.cookie.AddFlash(noticeFailed)
		}
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.post(w, r, func(v *visit) {
		v.entry.Reset()
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.NotFound(w, r)
		return
	}
	s.post(w, r, func(v *visit) {
		roadmap, ok := v.entry.Session.Roadmap()
		if !ok {
			v.cookie.AddFlash(noticeNothing)
			return
		}
		if v.entry.SavedID() != "" {
			return
		}
		id, err := s.history.Save(r.Context(), v.entry.Session.Input(), roadmap)
		if err != nil {
			s.logger.Error("save roadmap failed", zap.String("session", v.entry.ID), zap.Error(err))
			v.cookie.AddFlash(noticeNoSave)
			return
		}
		v.entry.SetSavedID(id)
		v.cookie.AddFlash(noticeSaved)
	})
}

// post runs the shared POST flow: check the CSRF token, copy the posted
// fields of the current step into the session, apply action, and redirect
// back to the wizard page.
func (s *Server) post(w http.ResponseWriter, r *http.Request, action func(v *visit)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	v, err := s.visit(r)
	if err != nil {
		s.fail(w, "start wizard session", err)
		return
	}

	token := r.PostForm.Get(CSRFField)
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.entry.CSRF)) != 1 {
		v.cookie.AddFlash(noticeExpired)
	} else {
		s.applyFields(v.entry.Session, r)
		action(v)
	}

	if err := v.cookie.Save(r, w); err != nil {
		s.fail(w, "save session cookie", err)
		return
	}
	http.Redirect(w, r, WizardPath, http.StatusSeeOther)
}

func (s *Server) applyFields(session *wizard.Session, r *http.Request) {
	if _, ok := session.Roadmap(); ok {
		return
	}
	for _, field := range html.FormFields(session.Step()) {
		if !r.PostForm.Has(field) {
			continue
		}
		if err := session.Set(field, r.PostForm.Get(field)); err != nil {
			s.logger.Debug("ignoring posted field", zap.String("field", field), zap.Error(err))
		}
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.NotFound(w, r)
		return
	}
	records, err := s.history.List(r.Context(), historyPageSize)
	if err != nil {
		s.fail(w, "list roadmaps", err)
		return
	}

	entries := make([]html.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, html.HistoryEntry{
			ID:       record.ID,
			Title:    record.Roadmap.Title,
			Timeline: record.Roadmap.Timeline,
			SavedAt:  record.SavedAt,
			URL:      HistoryPath + "/" + url.PathEscape(record.ID),
		})
	}
	body, err := s.pages.RenderHistory(r.Context(), html.HistoryView{
		Entries:   entries,
		WizardURL: WizardPath,
	})
	if err != nil {
		s.fail(w, "render history", err)
		return
	}
	writeHTML(w, http.StatusOK, body)
}

func (s *Server) handleSavedRoadmap(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.NotFound(w, r)
		return
	}
	record, err := s.history.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.fail(w, "load roadmap", err)
		return
	}

	body, err := s.pages.Render(r.Context(), render.Project(record.Roadmap), render.RenderOptions{Saved: true})
	if err != nil {
		s.fail(w, "render roadmap", err)
		return
	}
	writeHTML(w, http.StatusOK, body)
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	s.logger.Error("request failed", zap.String("action", action), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
