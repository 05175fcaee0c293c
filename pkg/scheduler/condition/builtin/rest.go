package builtin

import (
	"fmt"
	"time"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// MinRestHoursRule 班次间最短休息时长规则
// 参数: hours 最短休息小时数（支持小数）; employee 可选
// 跨日生效，检查新班次与所有已提交班次的首尾间隔
type MinRestHoursRule struct{}

// Kind 返回规则种类
func (r *MinRestHoursRule) Kind() string {
	return model.KindMinRestHours
}

// Check 检查新班次与已有班次之间的休息间隔
func (r *MinRestHoursRule) Check(ctx *condition.Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) condition.Verdict {
	if !cond.AppliesTo(emp.UID) {
		return condition.Permit()
	}

	hours := cond.Params.GetFloat("hours", 0)
	if hours <= 0 {
		return condition.Permit()
	}
	minRest := time.Duration(hours * float64(time.Hour))

	newStart := condition.SlotStartTime(shift)
	newEnd := condition.SlotEndTime(shift)

	for _, s := range ctx.EmployeeSlots(emp.UID) {
		existStart := condition.SlotStartTime(s)
		existEnd := condition.SlotEndTime(s)

		var gap time.Duration
		switch {
		case !newStart.Before(existEnd):
			gap = newStart.Sub(existEnd)
		case !existStart.Before(newEnd):
			gap = existStart.Sub(newEnd)
		default:
			// 时间重叠，交给资格过滤处理，这里不重复否决
			continue
		}

		if gap < minRest {
			return condition.Deny(fmt.Sprintf("与班次 %s 间隔 %.1f 小时，不足 %.1f 小时", s.ID, gap.Hours(), hours))
		}
	}
	return condition.Permit()
}
