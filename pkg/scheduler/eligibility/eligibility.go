// Package eligibility 实现派岗候选人的硬性资格过滤
package eligibility

import (
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// 资格不通过的原因
const (
	ReasonAlreadyAssigned = "已在本班次"
	ReasonRoleMismatch    = "岗位不匹配"
	ReasonNotAvailable    = "空闲时段不覆盖班次"
	ReasonTimeConflict    = "与当日已排班次时间冲突"
)

// Check 检查单个员工对单个班次的硬性资格
// 三道硬性门槛：岗位匹配、空闲覆盖、当日无时间冲突，缺一不可
// 返回是否通过与不通过的原因
func Check(ctx *condition.Context, emp *model.Employee, shift *model.ShiftSlot) (bool, string) {
	if shift.HasUser(emp.UID) {
		return false, ReasonAlreadyAssigned
	}

	if !emp.HasRole(shift.Role) {
		return false, ReasonRoleMismatch
	}

	avail := ctx.GetAvailability(emp.UID, shift.Date)
	if avail == nil || !avail.Covers(shift.TimeSlot) {
		return false, ReasonNotAvailable
	}

	for _, s := range ctx.EmployeeSlotsOnDate(emp.UID, shift.Date) {
		if s.TimeSlot.Overlaps(shift.TimeSlot) {
			return false, ReasonTimeConflict
		}
	}

	return true, ""
}

// Candidates 筛选班次的全部合格候选人，保持花名册顺序
func Candidates(ctx *condition.Context, shift *model.ShiftSlot) []*model.Employee {
	var candidates []*model.Employee
	for _, emp := range ctx.Employees {
		if ok, _ := Check(ctx, emp, shift); ok {
			candidates = append(candidates, emp)
		}
	}
	return candidates
}
