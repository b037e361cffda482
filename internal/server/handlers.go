package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"sportsmeet-portal/internal/auth"
	"sportsmeet-portal/internal/eligibility"
	"sportsmeet-portal/internal/export"
	"sportsmeet-portal/internal/models"
	"sportsmeet-portal/internal/util"
)

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type disciplineDTO struct {
	Name string `json:"name"`
}

func (h *Handlers) catalog(w http.ResponseWriter, r *http.Request) {
	ds := eligibility.Catalog()
	out := make([]disciplineDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, disciplineDTO{Name: d.String()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"disciplines": out,
		"slots": map[string]int{
			"female":  eligibility.SlotCapacity("female"),
			"default": eligibility.SlotCapacity(""),
		},
	})
}

func (h *Handlers) category(w http.ResponseWriter, r *http.Request) {
	gender := r.URL.Query().Get("gender")
	age, _ := eligibility.ParseAge(r.URL.Query().Get("age"))
	writeJSON(w, http.StatusOK, map[string]any{
		"category": eligibility.Classify(gender, age),
		"slots":    eligibility.SlotCapacity(gender),
	})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		hlog.FromRequest(r).Warn().Str("username", req.Username).Msg("login rejected")
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	msg := fmt.Sprintf("Logged in as %s (%s).", s.Username, models.TeamLabel(s.Team))
	if s.Admin {
		msg = "Logged in as admin: " + s.Username
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": s, "message": msg})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.auth.SessionFromRequest(r); ok {
		h.registration.Discard(s.ID)
		h.auth.Logout(s.ID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

// teamRequest resolves the {team} parameter and the caller's session.
func teamRequest(r *http.Request) (auth.Session, int, error) {
	s, _ := auth.FromContext(r.Context())
	team, err := teamParam(r)
	return s, team, err
}

func (h *Handlers) createSlots(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req slotsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.registration.CreateSlots(s.Principal(), s.ID, team, *req.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"created": n,
		"message": fmt.Sprintf("Created %d participant slots for %s.", n, models.TeamLabel(team)),
	})
}

type rosterRow struct {
	models.Entry
	Capacity int `json:"capacity"`
}

func (h *Handlers) roster(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ros, err := h.registration.Roster(s.Principal(), s.ID, team)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries := eligibility.Entries(ros)
	rows := make([]rosterRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, rosterRow{Entry: e, Capacity: eligibility.SlotCapacity(e.Gender)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"team":         models.TeamLabel(team),
		"teamNumber":   team,
		"participants": rows,
	})
}

func (h *Handlers) updateParticipant(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	index, err := intParam(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req fieldRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.registration.UpdateParticipant(s.Principal(), s.ID, team, index, req.Field, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) updateSport(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	index, err := intParam(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	slot, err := intParam(r, "slot")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req sportRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.registration.UpdateSport(s.Principal(), s.ID, team, index, slot, req.Sport); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) validate(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.registration.Validate(s.Principal(), s.ID, team); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handlers) submit(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, msg, err := h.registration.Submit(r.Context(), s.Principal(), s.ID, team, s.Username)
	if err != nil {
		apiErr := toAPIError(err)
		if apiErr.Status == http.StatusInternalServerError {
			// transport failures from the store
			hlog.FromRequest(r).Error().Err(err).Int("team", team).Msg("submit roster")
			apiErr = NewAPIError(http.StatusBadGateway, "STORE_UNAVAILABLE", "Submission failed. Please try again.")
		}
		writeError(w, r, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      msg,
		"submissionId": sub.ID,
		"participants": len(sub.Participants),
	})
}

func (h *Handlers) teamCSV(w http.ResponseWriter, r *http.Request) {
	s, team, err := teamRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ros, err := h.registration.Roster(s.Principal(), s.ID, team)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(ros.Participants) == 0 {
		writeError(w, r, NotFound("No participant slots to export."))
		return
	}
	writeCSV(w, export.TeamFilename(team), export.TeamCSV(team, eligibility.Entries(ros)))
}

func (h *Handlers) registrations(w http.ResponseWriter, r *http.Request) {
	tb, err := h.exportTable(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"header": tb.Header, "rows": tb.Rows})
}

func (h *Handlers) registrationsCSV(w http.ResponseWriter, r *http.Request) {
	tb, err := h.exportTable(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCSV(w, export.AllFilename, export.TableCSV(tb))
}

// signedExport serves the download link handed out to admins over Telegram.
func (h *Handlers) signedExport(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, r, BadRequest("token required"))
		return
	}
	if !util.ValidToken(h.exportSecret, util.ExportScopeAll, token) {
		writeError(w, r, NewAPIError(http.StatusForbidden, "FORBIDDEN", "invalid token"))
		return
	}
	h.registrationsCSV(w, r)
}

func (h *Handlers) exportTable(r *http.Request) (models.Table, error) {
	tb, err := h.store.Export(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("export registrations")
		return models.Table{}, NewAPIError(http.StatusBadGateway, "STORE_UNAVAILABLE", "Could not load registrations.")
	}
	return tb, nil
}
