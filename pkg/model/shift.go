// Package model 定义派岗引擎的核心数据模型
package model

// ShiftSlot 班次槽位：某一天某个时间段对某个岗位的用人需求
// 由班次模板展开生成（外部职责），求解器在运行中填充 AssignedUsers
type ShiftSlot struct {
	ID            string     `json:"id" db:"id"`
	TemplateID    string     `json:"template_id,omitempty" db:"template_id"`
	Date          string     `json:"date" db:"date"` // YYYY-MM-DD
	Label         string     `json:"label,omitempty" db:"label"`
	Role          string     `json:"role" db:"role"`
	TimeSlot      TimeWindow `json:"time_slot" db:"-"`
	MinUsers      int        `json:"min_users" db:"min_users"`
	AssignedUsers []string   `json:"assigned_users" db:"assigned_users"` // 已分配员工UID列表
}

// AssignedCount 返回当前已分配人数
func (s *ShiftSlot) AssignedCount() int {
	return len(s.AssignedUsers)
}

// HasUser 检查员工是否已分配到本班次
func (s *ShiftSlot) HasUser(uid string) bool {
	for _, u := range s.AssignedUsers {
		if u == uid {
			return true
		}
	}
	return false
}

// Remaining 返回距离最低人数还差的人数
func (s *ShiftSlot) Remaining() int {
	r := s.MinUsers - len(s.AssignedUsers)
	if r < 0 {
		return 0
	}
	return r
}

// Assignment 派岗分配：一次已提交的 (班次, 员工) 配对
type Assignment struct {
	ShiftID  string `json:"shift_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// UnfilledEntry 未满员记录：运行结束后仍未达到最低人数的班次
type UnfilledEntry struct {
	ShiftID   string `json:"shift_id"`
	Remaining int    `json:"remaining"`
}
