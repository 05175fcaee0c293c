package handler

import (
	"encoding/json"
	"net/http"

	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/stats"
)

// StatsRequest 统计分析请求
type StatsRequest struct {
	Employees   []model.Employee   `json:"employees"`
	Shifts      []model.ShiftSlot  `json:"shifts"`
	Assignments []model.Assignment `json:"assignments"`
}

// decodeStatsRequest 解析统计请求并转换班次为指针列表
func decodeStatsRequest(r *http.Request) (*StatsRequest, []*model.ShiftSlot, *errors.AppError) {
	if r.Method != http.MethodPost {
		return nil, nil, errors.New(errors.CodeInvalidInput, "仅支持POST方法")
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败")
	}

	shifts := make([]*model.ShiftSlot, len(req.Shifts))
	for i := range req.Shifts {
		shifts[i] = &req.Shifts[i]
	}
	return &req, shifts, nil
}

// GetFairnessHandler 工时公平性分析
func GetFairnessHandler(w http.ResponseWriter, r *http.Request) {
	req, shifts, appErr := decodeStatsRequest(r)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	report := stats.BuildFairnessReport(req.Employees, shifts, req.Assignments)
	respondJSON(w, http.StatusOK, report)
}

// GetCoverageHandler 班次覆盖率分析
func GetCoverageHandler(w http.ResponseWriter, r *http.Request) {
	_, shifts, appErr := decodeStatsRequest(r)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"coverage": stats.BuildCoverage(shifts),
	})
}
