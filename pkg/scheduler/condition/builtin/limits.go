package builtin

import (
	"fmt"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// MaxShiftsPerWeekRule 每周班次数上限规则
// 参数: max 整数上限; employee 可选，限定只约束某个员工
type MaxShiftsPerWeekRule struct{}

// Kind 返回规则种类
func (r *MaxShiftsPerWeekRule) Kind() string {
	return model.KindMaxShiftsPerWeek
}

// Check 检查员工本周已提交班次数是否达到上限
func (r *MaxShiftsPerWeekRule) Check(ctx *condition.Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) condition.Verdict {
	if !cond.AppliesTo(emp.UID) {
		return condition.Permit()
	}

	max := cond.Params.GetInt("max", 0)
	if max <= 0 {
		return condition.Permit()
	}

	count := ctx.ShiftCountInWeek(emp.UID, shift.Date)
	if count >= max {
		return condition.Deny(fmt.Sprintf("本周已排 %d 班，达到上限 %d", count, max))
	}
	return condition.Permit()
}

// MaxShiftsPerDayRule 每日班次数上限规则
// 参数: max 整数上限; employee 可选
type MaxShiftsPerDayRule struct{}

// Kind 返回规则种类
func (r *MaxShiftsPerDayRule) Kind() string {
	return model.KindMaxShiftsPerDay
}

// Check 检查员工当天已提交班次数是否达到上限
func (r *MaxShiftsPerDayRule) Check(ctx *condition.Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) condition.Verdict {
	if !cond.AppliesTo(emp.UID) {
		return condition.Permit()
	}

	max := cond.Params.GetInt("max", 0)
	if max <= 0 {
		return condition.Permit()
	}

	count := len(ctx.EmployeeSlotsOnDate(emp.UID, shift.Date))
	if count >= max {
		return condition.Deny(fmt.Sprintf("当日已排 %d 班，达到上限 %d", count, max))
	}
	return condition.Permit()
}

// MaxMinutesPerWeekRule 每周工作分钟数上限规则
// 参数: minutes 整数上限; employee 可选
type MaxMinutesPerWeekRule struct{}

// Kind 返回规则种类
func (r *MaxMinutesPerWeekRule) Kind() string {
	return model.KindMaxMinutesPerWeek
}

// Check 检查加上本班次后员工本周工时是否超出上限
func (r *MaxMinutesPerWeekRule) Check(ctx *condition.Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) condition.Verdict {
	if !cond.AppliesTo(emp.UID) {
		return condition.Permit()
	}

	max := cond.Params.GetInt("minutes", 0)
	if max <= 0 {
		return condition.Permit()
	}

	minutes := ctx.MinutesInWeek(emp.UID, shift.Date) + shift.TimeSlot.Minutes()
	if minutes > max {
		return condition.Deny(fmt.Sprintf("本周工时将达 %d 分钟，超出上限 %d", minutes, max))
	}
	return condition.Permit()
}
