package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/bryan-cox/taskboard/internal/dashboard"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Query parameters understood by the dashboard endpoints.
const (
	ParamWorkspace = "workspace"
	ParamDate      = "date"
	ParamEvent     = "event"
	ParamCurrent   = "current"
)

// parseRequest reads a dashboard request from the query string. Empty
// values in repeated parameters are ignored.
// parseRequest builds a dashboard request from query parameters. A link
// that carries a selection but no event is a fresh filter, as if the form
// had been submitted with Apply.
func parseRequest(q url.Values) (dashboard.Request, error) {
	ev, err := dashboard.ParseEvent(q.Get(ParamEvent))
	if err != nil {
		return dashboard.Request{}, err
	}
	sel := model.Selection{
		Workspaces: nonEmpty(q[ParamWorkspace]),
		Dates:      nonEmpty(q[ParamDate]),
	}
	if !q.Has(ParamEvent) && len(sel.Workspaces)+len(sel.Dates) > 0 {
		ev = dashboard.EventFilterChanged
	}
	return dashboard.Request{
		Selection: sel,
		Event:     ev,
		Current:   q.Get(ParamCurrent),
	}, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, newPage(s.engine.Render(req))); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render dashboard page")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, r, http.StatusOK, s.engine.Render(req))
}

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	dates := s.engine.Dates(nonEmpty(r.URL.Query()[ParamWorkspace]))
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, r, http.StatusOK, datesBody{Dates: dates})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthBody{
		Status:     "ok",
		Workspaces: len(s.engine.Dataset()),
		Records:    s.engine.Dataset().Len(),
	})
}

type errorBody struct {
	Error string `json:"error"`
}

type datesBody struct {
	Dates []string `json:"dates"`
}

type healthBody struct {
	Status     string `json:"status"`
	Workspaces int    `json:"workspaces"`
	Records    int    `json:"records"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
