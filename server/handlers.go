package server

import (
	"math"
	"net/http"
	"strconv"
)

// HealthHandler reports liveness; it needs no token.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReportHandler serves every row of table as a JSON array.
func (s *Server) ReportHandler(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.services.Reports.ReportAll(table)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// StudentPerformance is the body of a dropout prediction request. The integer
// fields are decoded as numbers so that whole floats such as 1.0 are accepted.
type StudentPerformance struct {
	StudentID  *float64 `json:"student_id"`
	Score      *float64 `json:"score"`
	Attendance *float64 `json:"attendance"`
	Behavior   *float64 `json:"behavior"`
}

func (p StudentPerformance) validate() error {
	switch {
	case p.StudentID == nil:
		return unprocessable("field required: student_id")
	case p.Score == nil:
		return unprocessable("field required: score")
	case p.Attendance == nil:
		return unprocessable("field required: attendance")
	case p.Behavior == nil:
		return unprocessable("field required: behavior")
	}
	if !isWhole(*p.StudentID) {
		return unprocessable("field student_id must be an integer")
	}
	if !isWhole(*p.Behavior) {
		return unprocessable("field behavior must be an integer")
	}
	return nil
}

// isWhole reports whether f is an integer that fits in an int.
func isWhole(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

type DropoutResponse struct {
	DropoutRisk int `json:"dropout_risk"`
}

func (s *Server) PredictDropoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req StudentPerformance
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := req.validate(); err != nil {
			s.writeError(w, r, err)
			return
		}

		risk, err := s.services.Predictor.PredictDropout(*req.Score, *req.Attendance, int(*req.Behavior))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, DropoutResponse{DropoutRisk: risk})
	}
}

type RevenueResponse struct {
	PredictedRevenue float64 `json:"predicted_revenue"`
}

// PredictRevenueHandler reads the integer query parameter next_month.
func (s *Server) PredictRevenueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if !query.Has("next_month") {
			s.writeError(w, r, unprocessable("query parameter required: next_month"))
			return
		}
		nextMonth, err := strconv.Atoi(query.Get("next_month"))
		if err != nil {
			s.writeError(w, r, unprocessable("query parameter next_month must be an integer"))
			return
		}

		revenue, err := s.services.Predictor.PredictRevenue(nextMonth)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, RevenueResponse{PredictedRevenue: revenue})
	}
}

type VoiceRequest struct {
	Text *string `json:"text"`
}

type IntentResponse struct {
	Intent string `json:"intent"`
}

// VoiceInterpretHandler classifies the "text" field; a missing field is "".
func (s *Server) VoiceInterpretHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req VoiceRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		text := ""
		if req.Text != nil {
			text = *req.Text
		}
		writeJSON(w, http.StatusOK, IntentResponse{Intent: string(s.services.Intents.Classify(text))})
	}
}
