package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/paigang/paigang/internal/metrics"
	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
	"github.com/paigang/paigang/pkg/scheduler/solver"
	"github.com/paigang/paigang/pkg/stats"
	"github.com/paigang/paigang/pkg/validator"
)

// ScheduleHandler 派岗处理器
type ScheduleHandler struct {
	engine  *condition.Engine
	auditor *validator.Auditor
	timeout time.Duration
	audit   bool
}

// NewScheduleHandler 创建派岗处理器
func NewScheduleHandler(engine *condition.Engine, timeout time.Duration, audit bool) *ScheduleHandler {
	return &ScheduleHandler{
		engine:  engine,
		auditor: validator.NewAuditor(),
		timeout: timeout,
		audit:   audit,
	}
}

// GenerateResponse 派岗生成响应
type GenerateResponse struct {
	Success     bool                  `json:"success"`
	RunID       string                `json:"run_id"`
	Assignments []model.Assignment    `json:"assignments"`
	Shifts      []*model.ShiftSlot    `json:"shifts"`
	Unfilled    []model.UnfilledEntry `json:"unfilled,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
	Statistics  solver.Statistics     `json:"statistics"`
	AuditIssues []validator.Issue     `json:"audit_issues,omitempty"`
	Duration    string                `json:"duration"`
}

// Generate 生成派岗
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req solver.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	h.runAndRespond(w, r, &req)
}

// runAndRespond 执行派岗并写回响应
func (h *ScheduleHandler) runAndRespond(w http.ResponseWriter, r *http.Request, req *solver.Request) {
	solveCtx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	for _, kind := range h.engine.UnsupportedKinds(req.Conditions) {
		metrics.RecordUnsupportedCondition(kind)
	}

	s := solver.NewGreedySolver(h.engine)
	result, err := s.Solve(solveCtx, req)
	if err != nil {
		metrics.RecordScheduleRun(false, 0)
		if stderrors.Is(err, context.DeadlineExceeded) {
			respondError(w, errors.New(errors.CodeTimeout, "派岗计算超时，请缩短排班周期"))
			return
		}
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			respondError(w, appErr)
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "派岗失败"))
		return
	}

	metrics.RecordScheduleRun(true, result.Duration)
	report := stats.BuildFairnessReport(req.Employees, result.Shifts, result.Assignments)
	metrics.SetRunQuality(result.Statistics.FillRate, len(result.Unfilled), report.Gini)

	resp := GenerateResponse{
		Success:     true,
		RunID:       result.RunID,
		Assignments: result.Assignments,
		Shifts:      result.Shifts,
		Unfilled:    result.Unfilled,
		Warnings:    result.Warnings,
		Statistics:  result.Statistics,
		Duration:    result.Duration.String(),
	}
	if h.audit {
		resp.AuditIssues = h.auditor.Audit(req, result)
	}

	respondJSON(w, http.StatusOK, resp)
}

// ValidateRequest 派岗复核请求
// 提交一份既有的分配方案，与输入快照做一致性复核
type ValidateRequest struct {
	Shifts       []model.ShiftSlot          `json:"shifts"`
	Employees    []model.Employee           `json:"employees"`
	Availability []model.AvailabilityWindow `json:"availability"`
	Assignments  []model.Assignment         `json:"assignments"`
}

// ValidateResponse 复核响应
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Issues []validator.Issue `json:"issues"`
}

// Validate 复核既有派岗方案
func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	// 把分配方案回填到班次副本上，复用审计器
	shiftMap := make(map[string]*model.ShiftSlot, len(req.Shifts))
	shifts := make([]*model.ShiftSlot, len(req.Shifts))
	for i := range req.Shifts {
		s := req.Shifts[i]
		s.AssignedUsers = append([]string(nil), req.Shifts[i].AssignedUsers...)
		shifts[i] = &s
		shiftMap[s.ID] = &s
	}
	for _, a := range req.Assignments {
		if s, ok := shiftMap[a.ShiftID]; ok && !s.HasUser(a.UserID) {
			s.AssignedUsers = append(s.AssignedUsers, a.UserID)
		}
	}

	solverReq := &solver.Request{
		Shifts:       req.Shifts,
		Employees:    req.Employees,
		Availability: req.Availability,
	}
	result := &solver.Result{
		Assignments: req.Assignments,
		Shifts:      shifts,
	}

	issues := h.auditor.Audit(solverReq, result)
	respondJSON(w, http.StatusOK, ValidateResponse{
		Valid:  len(issues) == 0,
		Issues: issues,
	})
}
