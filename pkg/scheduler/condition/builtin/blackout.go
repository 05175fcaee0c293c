package builtin

import (
	"fmt"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// BlackoutDateRule 禁排日期规则
// 参数: dates 日期列表; employee 可选，不填则对所有人禁排
type BlackoutDateRule struct{}

// Kind 返回规则种类
func (r *BlackoutDateRule) Kind() string {
	return model.KindBlackoutDate
}

// Check 检查班次日期是否在禁排名单内
func (r *BlackoutDateRule) Check(ctx *condition.Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) condition.Verdict {
	if !cond.AppliesTo(emp.UID) {
		return condition.Permit()
	}

	for _, d := range cond.Params.GetStrings("dates") {
		if d == shift.Date {
			return condition.Deny(fmt.Sprintf("日期 %s 为禁排日", shift.Date))
		}
	}
	return condition.Permit()
}
