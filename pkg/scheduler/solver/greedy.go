package solver

import (
	gocontext "context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/logger"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
	"github.com/paigang/paigang/pkg/scheduler/eligibility"
	"github.com/paigang/paigang/pkg/scheduler/fairness"
)

// GreedySolver 贪心派岗求解器
// 单遍扫描所有班次，逐个席位挑选工时最少的合格候选人，不回溯
// 同一输入必然产生同一输出
type GreedySolver struct {
	engine *condition.Engine
	logger *logger.SchedulerLogger
}

// NewGreedySolver 创建贪心求解器
func NewGreedySolver(engine *condition.Engine) *GreedySolver {
	return &GreedySolver{
		engine: engine,
		logger: logger.NewSchedulerLogger(),
	}
}

// Solve 执行一次派岗运行
// 输入校验不通过时返回错误；缺员和未识别条件只产生警告，不中断运行
func (g *GreedySolver) Solve(ctx gocontext.Context, req *Request) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	if ve := validateRequest(req); ve != nil {
		return nil, ve.ToAppError()
	}

	shifts := cloneShifts(req.Shifts)
	employees := make([]*model.Employee, len(req.Employees))
	for i := range req.Employees {
		employees[i] = &req.Employees[i]
	}
	availability := make([]*model.AvailabilityWindow, len(req.Availability))
	for i := range req.Availability {
		availability[i] = &req.Availability[i]
	}

	g.logger.StartRun(runID, len(shifts), len(employees))

	runCtx := condition.NewContext(shifts, employees, availability)
	scorer := fairness.NewScorer(employees)

	var warnings []string
	for _, kind := range g.engine.UnsupportedKinds(req.Conditions) {
		g.logger.UnsupportedCondition(kind)
		warnings = append(warnings, fmt.Sprintf("未识别的条件种类 %q，已按放行处理", kind))
	}

	sortShifts(shifts)

	var unfilled []model.UnfilledEntry
	for _, shift := range shifts {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CodeTimeout, "派岗运行被中断")
		}
		blockedReason := g.fillShift(runCtx, scorer, req.Conditions, shift)

		if remaining := shift.Remaining(); remaining > 0 {
			g.logger.Shortfall(shift.ID, shift.Date, remaining)
			unfilled = append(unfilled, model.UnfilledEntry{ShiftID: shift.ID, Remaining: remaining})
			msg := fmt.Sprintf("班次 %s（%s %s）缺员 %d 人", shift.ID, shift.Date, shift.TimeSlot.String(), remaining)
			if blockedReason != "" {
				msg += "，条件否决: " + blockedReason
			}
			warnings = append(warnings, msg)
		}
	}

	result := &Result{
		RunID:       runID,
		Assignments: runCtx.Assignments,
		Shifts:      shifts,
		Unfilled:    unfilled,
		Warnings:    warnings,
		Statistics:  buildStatistics(shifts, len(employees), len(runCtx.Assignments), len(unfilled)),
		Duration:    time.Since(start),
	}

	g.logger.RunComplete(runID, result.Duration, len(result.Assignments), len(result.Unfilled))
	return result, nil
}

// fillShift 为单个班次逐席位挑选候选人
// 每提交一人就重新筛选，直到满员或无人可用
// 返回值为候选人全部被条件否决时记录的第一个否决原因，满员时为空
func (g *GreedySolver) fillShift(runCtx *condition.Context, scorer *fairness.Scorer, conds []model.ScheduleCondition, shift *model.ShiftSlot) string {
	for shift.Remaining() > 0 {
		candidates := eligibility.Candidates(runCtx, shift)
		if len(candidates) == 0 {
			return ""
		}

		committed := false
		firstDeny := ""
		for _, emp := range scorer.Rank(candidates) {
			verdict := g.engine.Permit(runCtx, conds, emp, shift)
			if !verdict.OK {
				if firstDeny == "" {
					firstDeny = verdict.Reason
				}
				continue
			}

			shift.AssignedUsers = append(shift.AssignedUsers, emp.UID)
			runCtx.Commit(shift, emp)
			scorer.Commit(emp.UID, shift.TimeSlot.Minutes())
			committed = true
			break
		}
		if !committed {
			return firstDeny
		}
	}
	return ""
}

// cloneShifts 复制班次列表，保护调用方数据不被填充动作改动
func cloneShifts(shifts []model.ShiftSlot) []*model.ShiftSlot {
	cloned := make([]*model.ShiftSlot, len(shifts))
	for i := range shifts {
		s := shifts[i]
		s.AssignedUsers = append([]string(nil), shifts[i].AssignedUsers...)
		cloned[i] = &s
	}
	return cloned
}

// sortShifts 确定班次处理顺序
// 日期和开始时间升序；同时段最低人数多者优先；最后按班次ID升序兜底
func sortShifts(shifts []*model.ShiftSlot) {
	sort.SliceStable(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		si, sj := shifts[i].TimeSlot.StartMinutes(), shifts[j].TimeSlot.StartMinutes()
		if si != sj {
			return si < sj
		}
		if shifts[i].MinUsers != shifts[j].MinUsers {
			return shifts[i].MinUsers > shifts[j].MinUsers
		}
		return shifts[i].ID < shifts[j].ID
	})
}
