// Package validator 提供派岗结果的事后审计
package validator

import (
	"fmt"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/solver"
)

// Issue 审计发现的问题
type Issue struct {
	ShiftID string `json:"shift_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message"`
}

// Auditor 派岗结果审计器
// 对求解器输出做独立复核，任何发现都说明求解器有缺陷或输入被篡改
type Auditor struct{}

// NewAuditor 创建审计器
func NewAuditor() *Auditor {
	return &Auditor{}
}

// Audit 复核派岗结果与原始输入的一致性
func (a *Auditor) Audit(req *solver.Request, result *solver.Result) []Issue {
	var issues []Issue

	shiftMap := make(map[string]*model.ShiftSlot)
	for _, s := range result.Shifts {
		shiftMap[s.ID] = s
	}
	empMap := make(map[string]*model.Employee)
	for i := range req.Employees {
		empMap[req.Employees[i].UID] = &req.Employees[i]
	}
	availMap := make(map[string]map[string]*model.AvailabilityWindow)
	for i := range req.Availability {
		av := &req.Availability[i]
		if availMap[av.UserID] == nil {
			availMap[av.UserID] = make(map[string]*model.AvailabilityWindow)
		}
		availMap[av.UserID][av.Date] = av
	}

	// 逐条分配复核引用、岗位和空闲覆盖
	slotsByEmpDate := make(map[string][]*model.ShiftSlot)
	for _, asg := range result.Assignments {
		shift := shiftMap[asg.ShiftID]
		if shift == nil {
			issues = append(issues, Issue{ShiftID: asg.ShiftID, UserID: asg.UserID,
				Message: fmt.Sprintf("分配引用了不存在的班次 %q", asg.ShiftID)})
			continue
		}
		emp := empMap[asg.UserID]
		if emp == nil {
			issues = append(issues, Issue{ShiftID: asg.ShiftID, UserID: asg.UserID,
				Message: fmt.Sprintf("分配引用了不存在的员工 %q", asg.UserID)})
			continue
		}

		if !emp.HasRole(shift.Role) {
			issues = append(issues, Issue{ShiftID: shift.ID, UserID: emp.UID,
				Message: fmt.Sprintf("员工岗位不匹配班次岗位 %q", shift.Role)})
		}

		avail := availMap[emp.UID][shift.Date]
		if avail == nil || !avail.Covers(shift.TimeSlot) {
			issues = append(issues, Issue{ShiftID: shift.ID, UserID: emp.UID,
				Message: fmt.Sprintf("员工 %s 的空闲时段不覆盖班次时间 %s", shift.Date, shift.TimeSlot.String())})
		}

		key := emp.UID + "|" + shift.Date
		for _, prev := range slotsByEmpDate[key] {
			if prev.TimeSlot.Overlaps(shift.TimeSlot) {
				issues = append(issues, Issue{ShiftID: shift.ID, UserID: emp.UID,
					Message: fmt.Sprintf("与同日班次 %s 时间重叠", prev.ID)})
			}
		}
		slotsByEmpDate[key] = append(slotsByEmpDate[key], shift)
	}

	// 逐个班次复核人数上限
	for _, s := range result.Shifts {
		if s.AssignedCount() > s.MinUsers {
			issues = append(issues, Issue{ShiftID: s.ID,
				Message: fmt.Sprintf("分配人数 %d 超出最低人数 %d", s.AssignedCount(), s.MinUsers)})
		}
	}

	return issues
}
