package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/observability"
)

const dateLayout = "2006-01-02"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code string, err error) {
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	s.writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: err.Error()}})
}

// parseRange reads optional start/end date query parameters. Absent
// parameters leave the corresponding bound open. The end date is
// inclusive, so it is advanced by one day before querying.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	var start, end time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q: %w", raw, err)
		}
		start = t
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q: %w", raw, err)
		}
		end = t.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return n, nil
}

func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	minutes, err := intParam(r, "min_gap", s.cfg.Quality.MinGapMinutes)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	gaps, err := s.quality.Gaps(r.Context(), start, end, time.Duration(minutes)*time.Minute)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"gaps": gaps, "count": len(gaps)})
}

func (s *Server) handleGapStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	minutes, err := intParam(r, "min_gap", s.cfg.Quality.MinGapMinutes)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	stats, err := s.quality.GapStats(r.Context(), start, end, time.Duration(minutes)*time.Minute)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	threshold, err := intParam(r, "threshold", s.cfg.Quality.SimilarityThreshold)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	groups, err := s.quality.Duplicates(r.Context(), start, end, threshold)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"groups": groups, "count": len(groups)})
}

func (s *Server) handleMergeable(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	maxGap, err := intParam(r, "max_gap", s.cfg.Quality.MergeMaxGapSeconds)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	groups, err := s.quality.Mergeable(r.Context(), start, end, time.Duration(maxGap)*time.Second)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"groups": groups, "count": len(groups)})
}

func (s *Server) handleOrphans(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	orphans, err := s.quality.Orphans(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"orphans": orphans, "count": len(orphans)})
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	batch, err := s.quality.Validate(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	result, err := s.quality.Recalculate(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleZeroDuration(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	remove := r.URL.Query().Get("remove") == "true"
	result, err := s.quality.ZeroDuration(r.Context(), start, end, remove)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	report, err := s.quality.Report(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	observability.RecordReportScore(report.QualityScore)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	now := time.Now()
	if end.IsZero() {
		end = now
	} else {
		end = end.AddDate(0, 0, -1) // parseRange made it exclusive
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -6)
	}
	stats, err := s.analytics.Daily(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"days": stats})
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", s.cfg.Analytics.HourlyPatternDays)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	patterns, err := s.analytics.Hourly(r.Context(), days)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hours": patterns})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", time.Now().Year())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	days, err := s.analytics.Heatmap(r.Context(), year)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"year": year, "days": days})
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_param", err)
		return
	}
	summary, err := s.analytics.Weekly(r.Context(), offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_range", err)
		return
	}
	now := time.Now()
	if end.IsZero() {
		end = now
	} else {
		end = end.AddDate(0, 0, -1)
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -29)
	}
	groupBy := r.URL.Query().Get("group_by")
	if groupBy == "" {
		groupBy = "day"
	}
	if !analytics.ValidGroupBy(groupBy) {
		s.writeError(w, http.StatusBadRequest, "invalid_param", fmt.Errorf("invalid group_by %q (use day, week, or month)", groupBy))
		return
	}
	points, err := s.analytics.Trends(r.Context(), start, end, groupBy)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"group_by": groupBy, "points": points})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.analytics.Insights(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analytics.Summary(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}
