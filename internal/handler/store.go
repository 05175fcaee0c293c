package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/paigang/paigang/internal/database"
	"github.com/paigang/paigang/internal/repository"
	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/logger"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/solver"
)

// StoreHandler 库存模式派岗处理器
// 输入快照从数据库读取，结果写回数据库
type StoreHandler struct {
	schedule     *ScheduleHandler
	roster       *repository.RosterRepository
	slots        *repository.SlotRepository
	availability *repository.AvailabilityRepository
	conditions   *repository.ConditionRepository
	schedules    *repository.ScheduleRepository
}

// NewStoreHandler 创建库存模式处理器
func NewStoreHandler(schedule *ScheduleHandler, db *database.DB) *StoreHandler {
	return &StoreHandler{
		schedule:     schedule,
		roster:       repository.NewRosterRepository(db),
		slots:        repository.NewSlotRepository(db),
		availability: repository.NewAvailabilityRepository(db),
		conditions:   repository.NewConditionRepository(db),
		schedules:    repository.NewScheduleRepository(db),
	}
}

// GenerateFromStoreRequest 库存模式生成请求
type GenerateFromStoreRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Persist   bool   `json:"persist"`    // 是否将结果写回数据库
}

// GenerateFromStore 从数据库快照生成派岗
func (h *StoreHandler) GenerateFromStore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateFromStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if !model.ValidDate(req.StartDate) || !model.ValidDate(req.EndDate) || req.EndDate < req.StartDate {
		respondError(w, errors.New(errors.CodeInvalidInput, "无效的日期范围"))
		return
	}

	ctx := r.Context()
	dr := repository.DateRange{Start: req.StartDate, End: req.EndDate}

	shifts, err := h.slots.ListByDateRange(ctx, dr)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取班次槽位失败"))
		return
	}
	employees, err := h.roster.List(ctx)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取花名册失败"))
		return
	}
	availability, err := h.availability.ListByDateRange(ctx, dr)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取空闲申报失败"))
		return
	}
	conditions, err := h.conditions.ListEnabled(ctx)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取排班条件失败"))
		return
	}

	solverReq := &solver.Request{
		Shifts:       shifts,
		Employees:    employees,
		Availability: availability,
		Conditions:   conditions,
	}

	if !req.Persist {
		h.schedule.runAndRespond(w, r, solverReq)
		return
	}

	h.generateAndPersist(w, r, solverReq)
}

// generateAndPersist 生成派岗并落库
func (h *StoreHandler) generateAndPersist(w http.ResponseWriter, r *http.Request, req *solver.Request) {
	s := solver.NewGreedySolver(h.schedule.engine)
	result, err := s.Solve(r.Context(), req)
	if err != nil {
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			appErr = errors.Wrap(err, errors.CodeInternal, "派岗失败")
		}
		respondError(w, appErr)
		return
	}

	if err := h.schedules.SaveResult(r.Context(), result); err != nil {
		logger.WithError(err).Str("run_id", result.RunID).Msg("派岗结果落库失败")
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存派岗结果失败"))
		return
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Success:     true,
		RunID:       result.RunID,
		Assignments: result.Assignments,
		Shifts:      result.Shifts,
		Unfilled:    result.Unfilled,
		Warnings:    result.Warnings,
		Statistics:  result.Statistics,
		Duration:    result.Duration.String(),
	})
}
