// Package solver 实现贪心派岗求解器
package solver

import (
	"time"

	"github.com/paigang/paigang/pkg/model"
)

// Request 一次派岗运行的完整输入
// 求解器不修改入参，填充动作发生在内部副本上
type Request struct {
	Shifts       []model.ShiftSlot          `json:"shifts"`
	Employees    []model.Employee           `json:"employees"`
	Availability []model.AvailabilityWindow `json:"availability"`
	Conditions   []model.ScheduleCondition  `json:"conditions,omitempty"`
}

// Result 一次派岗运行的完整输出
type Result struct {
	RunID       string                `json:"run_id"`
	Assignments []model.Assignment    `json:"assignments"`
	Shifts      []*model.ShiftSlot    `json:"shifts"`
	Unfilled    []model.UnfilledEntry `json:"unfilled"`
	Warnings    []string              `json:"warnings"`
	Statistics  Statistics            `json:"statistics"`
	Duration    time.Duration         `json:"duration"`
}

// Statistics 运行统计
type Statistics struct {
	TotalShifts      int     `json:"total_shifts"`
	TotalEmployees   int     `json:"total_employees"`
	TotalAssignments int     `json:"total_assignments"`
	FilledShifts     int     `json:"filled_shifts"`
	UnfilledShifts   int     `json:"unfilled_shifts"`
	FillRate         float64 `json:"fill_rate"` // 已满员班次占比
}

// buildStatistics 汇总运行统计
func buildStatistics(shifts []*model.ShiftSlot, employees int, assignments, unfilled int) Statistics {
	stats := Statistics{
		TotalShifts:      len(shifts),
		TotalEmployees:   employees,
		TotalAssignments: assignments,
		UnfilledShifts:   unfilled,
		FilledShifts:     len(shifts) - unfilled,
	}
	if stats.TotalShifts > 0 {
		stats.FillRate = float64(stats.FilledShifts) / float64(stats.TotalShifts)
	}
	return stats
}
