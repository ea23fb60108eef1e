package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"mindmate/internal/models"
	"mindmate/internal/providers"
	"mindmate/internal/services"
	"net/http"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger   providers.Logger
	workflow services.MoodWorkflowInterface
	daily    *services.DailyView
	weekly   *services.WeeklyView
}

func NewApiController(logger providers.Logger, workflow services.MoodWorkflowInterface, daily *services.DailyView, weekly *services.WeeklyView) *ApiController {
	return &ApiController{
		logger:   logger,
		workflow: workflow,
		daily:    daily,
		weekly:   weekly,
	}
}

type errorResponse struct {
	Error string                     `json:"error"`
	State *services.WorkflowSnapshot `json:"state,omitempty"`
}

type selectRequest struct {
	Mood string `json:"mood"`
}

type intensityRequest struct {
	Intensity *int `json:"intensity"`
}

type journalRequest struct {
	Text string `json:"text"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func statusOf(err error) int {
	var ve *services.ValidationError
	var se *services.StateError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &se), errors.Is(err, services.ErrStaleResult):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, view string, err error, state *services.WorkflowSnapshot) {
	status := statusOf(err)
	if status == http.StatusBadGateway {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{Error: services.UserMessage(view, err), State: state})
}

func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request"})
		return false
	}
	return true
}

func (ac *ApiController) GetMoodOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MoodOptions())
}

func (ac *ApiController) GetMood(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.workflow.State())
}

func (ac *ApiController) SelectMood(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !ac.decode(w, r, &req) {
		return
	}
	if err := ac.workflow.SelectMood(req.Mood); err != nil {
		ac.writeError(w, r, services.ViewMood, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, ac.workflow.State())
}

func (ac *ApiController) SetIntensity(w http.ResponseWriter, r *http.Request) {
	var req intensityRequest
	if !ac.decode(w, r, &req) {
		return
	}
	if req.Intensity == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Please choose an intensity between 1 and 10."})
		return
	}
	if _, err := ac.workflow.SetIntensity(*req.Intensity); err != nil {
		ac.writeError(w, r, services.ViewMood, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, ac.workflow.State())
}

func (ac *ApiController) SetJournal(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if !ac.decode(w, r, &req) {
		return
	}
	if err := ac.workflow.SetJournal(req.Text); err != nil {
		ac.writeError(w, r, services.ViewMood, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, ac.workflow.State())
}

// SubmitMood blocks until the workflow is ready or failed. A failed
// submission still reports the snapshot so the caller can tell whether the
// mood was stored.
func (ac *ApiController) SubmitMood(w http.ResponseWriter, r *http.Request) {
	snap, err := ac.workflow.Submit(r.Context())
	if err != nil {
		var state *services.WorkflowSnapshot
		if snap.State == services.StateFailed {
			state = &snap
		}
		ac.writeError(w, r, services.ViewMood, err, state)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (ac *ApiController) ResetMood(w http.ResponseWriter, r *http.Request) {
	if err := ac.workflow.LogAnother(); err != nil {
		ac.writeError(w, r, services.ViewMood, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, ac.workflow.State())
}

func (ac *ApiController) GetDaily(w http.ResponseWriter, r *http.Request) {
	res, err := ac.daily.Load(r.Context())
	if err != nil {
		ac.writeError(w, r, services.ViewDaily, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (ac *ApiController) GetWeekly(w http.ResponseWriter, r *http.Request) {
	res, err := ac.weekly.Load(r.Context())
	if err != nil {
		ac.writeError(w, r, services.ViewWeekly, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
