package builtin

import (
	"fmt"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// RoleExclusivityRule 岗位专属规则
// 参数: role 岗位名
// 生效后该岗位的班次只允许主岗位匹配的员工承接，兼岗不再放行
type RoleExclusivityRule struct{}

// Kind 返回规则种类
func (r *RoleExclusivityRule) Kind() string {
	return model.KindRoleExclusivity
}

// Check 检查专属岗位班次是否由主岗位员工承接
func (r *RoleExclusivityRule) Check(ctx *condition.Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) condition.Verdict {
	if !cond.AppliesTo(emp.UID) {
		return condition.Permit()
	}

	role := cond.Params.GetString("role", "")
	if role == "" || shift.Role != role {
		return condition.Permit()
	}

	if emp.Role != role {
		return condition.Deny(fmt.Sprintf("岗位 %s 仅限主岗位员工承接", role))
	}
	return condition.Permit()
}
