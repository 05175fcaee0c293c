package solver

import (
	"fmt"

	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/model"
)

// validateRequest 校验派岗输入
// 任何一条不通过都拒绝整次运行，错误整体返回
func validateRequest(req *Request) *errors.ValidationErrors {
	ve := &errors.ValidationErrors{}

	shiftIDs := make(map[string]bool)
	for i := range req.Shifts {
		s := &req.Shifts[i]
		field := fmt.Sprintf("shifts[%d]", i)

		if s.ID == "" {
			ve.Add(field+".id", "班次ID不能为空")
		} else if shiftIDs[s.ID] {
			ve.Add(field+".id", fmt.Sprintf("班次ID %q 重复", s.ID))
		} else {
			shiftIDs[s.ID] = true
		}

		if !model.ValidDate(s.Date) {
			ve.Add(field+".date", fmt.Sprintf("无效的日期 %q", s.Date))
		}
		if err := s.TimeSlot.Validate(); err != nil {
			ve.Add(field+".time_slot", err.Error())
		}
		if s.MinUsers <= 0 {
			ve.Add(field+".min_users", fmt.Sprintf("最低人数必须为正数，当前为 %d", s.MinUsers))
		}
	}

	uids := make(map[string]bool)
	for i := range req.Employees {
		e := &req.Employees[i]
		field := fmt.Sprintf("employees[%d]", i)

		if e.UID == "" {
			ve.Add(field+".uid", "员工UID不能为空")
		} else if uids[e.UID] {
			ve.Add(field+".uid", fmt.Sprintf("员工UID %q 重复", e.UID))
		} else {
			uids[e.UID] = true
		}
		if e.Role == "" {
			ve.Add(field+".role", "员工主岗位不能为空")
		}
	}

	for i := range req.Availability {
		a := &req.Availability[i]
		field := fmt.Sprintf("availability[%d]", i)

		if a.UserID == "" {
			ve.Add(field+".user_id", "空闲申报的员工UID不能为空")
		}
		if !model.ValidDate(a.Date) {
			ve.Add(field+".date", fmt.Sprintf("无效的日期 %q", a.Date))
		}
		for j, r := range a.Ranges {
			if err := r.Validate(); err != nil {
				ve.Add(fmt.Sprintf("%s.ranges[%d]", field, j), err.Error())
			}
		}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
