package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/evaluation"
	"github.com/agusespa/chateval/internal/store"
	"github.com/agusespa/chateval/internal/types"
)

type criteriaResp struct {
	Criteria         []types.EvaluationCriterion   `json:"criteria"`
	Thresholds       map[types.CriterionID]float64 `json:"thresholds"`
	OverallThreshold float64                       `json:"overallThreshold"`
}

func (s *Server) listCriteria(w http.ResponseWriter, r *http.Request) {
	thresholds := criteria.DefaultThresholds()
	for id, v := range s.thresholds {
		thresholds[id] = v
	}
	writeJSON(w, http.StatusOK, criteriaResp{
		Criteria:         criteria.Defaults(),
		Thresholds:       thresholds,
		OverallThreshold: criteria.ResolveOverall(s.overall),
	})
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, criteria.Models())
}

type evaluateReq struct {
	Question       string                      `json:"question"`
	ExpectedAnswer string                      `json:"expectedAnswer"`
	ActualAnswer   string                      `json:"actualAnswer"`
	Criteria       []types.EvaluationCriterion `json:"criteria,omitempty"`
	PassThreshold  *float64                    `json:"passThreshold,omitempty"`
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errResp{"question is required"})
		return
	}

	list := req.Criteria
	if len(list) == 0 {
		list = criteria.Defaults()
	} else if err := criteria.ValidateWeights(list); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{err.Error()})
		return
	}

	threshold := criteria.ResolveOverall(s.overall)
	if req.PassThreshold != nil {
		threshold = *req.PassThreshold
	}

	writeJSON(w, http.StatusOK, s.runner.EvaluateQuestion(req.Question, req.ExpectedAnswer, req.ActualAnswer, list, threshold))
}

type batchReq struct {
	Items    []types.Item             `json:"items"`
	Criteria types.EvaluationCriteria `json:"criteria"`
	// Config switches to the weighted, per-question evaluation path
	Config *types.AutoEvalConfig `json:"config,omitempty"`
}

type batchResp struct {
	Summary types.EvaluationSummary      `json:"summary"`
	Results []types.AutoEvaluationResult `json:"results"`
}

func (s *Server) batch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Config != nil {
		out, err := s.runner.RunBatchEvaluation(r.Context(), *req.Config, req.Items, nil)
		if err != nil {
			s.writeRunError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	checks := criteria.WithDefaults(req.Criteria, s.thresholds)
	if checks.OverallThreshold == nil && s.overall != nil {
		checks.OverallThreshold = s.overall
	}

	results, err := s.runner.RunBatch(r.Context(), req.Items, checks, nil)
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	if results == nil {
		results = []types.AutoEvaluationResult{}
	}
	writeJSON(w, http.StatusOK, batchResp{Summary: evaluation.GetEvaluationSummary(results), Results: results})
}

func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("batch aborted", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errResp{err.Error()})
		return
	}
	s.logger.Error("batch failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
}

type exportReq struct {
	Results []types.AutoEvaluationResult `json:"results"`
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	var req exportReq
	if !decodeBody(w, r, &req) {
		return
	}

	var buf bytes.Buffer
	if err := evaluation.ExportCSV(&buf, req.Results); err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="evaluation-results.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeJSON(w, http.StatusServiceUnavailable, errResp{"storage is not configured"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) putRecord(w http.ResponseWriter, r *http.Request) {
	var rec store.Record
	if !decodeBody(w, r, &rec) {
		return
	}
	saved, err := s.store.Put(r.Context(), chi.URLParam(r, "name"), rec)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUnknownCollection):
		writeJSON(w, http.StatusNotFound, errResp{err.Error()})
	default:
		s.logger.Error("store request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
	}
}
