// Package condition 定义排班条件接口和求值引擎
package condition

import (
	"time"

	"github.com/paigang/paigang/pkg/model"
)

// Verdict 条件判定结果
type Verdict struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"` // 否决原因，OK 时为空
}

// Permit 返回放行判定
func Permit() Verdict {
	return Verdict{OK: true}
}

// Deny 返回否决判定
func Deny(reason string) Verdict {
	return Verdict{OK: false, Reason: reason}
}

// Rule 条件规则接口
// 每个 Kind 对应一条规则实现，针对 (员工, 班次, 暂定状态) 三元组判定
type Rule interface {
	// Kind 返回规则处理的条件种类
	Kind() string

	// Check 判定是否允许将员工分配到班次
	Check(ctx *Context, cond *model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) Verdict
}

// Context 一次派岗运行的暂定状态
// 每次运行独占一个实例，运行结束即丢弃，不跨运行共享
type Context struct {
	Shifts    []*model.ShiftSlot
	Employees []*model.Employee

	// 已提交的分配（按提交顺序）
	Assignments []model.Assignment

	// 索引缓存
	shiftMap     map[string]*model.ShiftSlot
	employeeMap  map[string]*model.Employee
	availability map[string]map[string]*model.AvailabilityWindow // uid → date → 空闲申报
	slotsByEmp   map[string][]*model.ShiftSlot                   // uid → 已提交班次
	slotsByDate  map[string]map[string][]*model.ShiftSlot        // uid → date → 已提交班次
}

// NewContext 创建派岗运行状态
func NewContext(shifts []*model.ShiftSlot, employees []*model.Employee, availability []*model.AvailabilityWindow) *Context {
	c := &Context{
		Shifts:       shifts,
		Employees:    employees,
		Assignments:  make([]model.Assignment, 0),
		shiftMap:     make(map[string]*model.ShiftSlot),
		employeeMap:  make(map[string]*model.Employee),
		availability: make(map[string]map[string]*model.AvailabilityWindow),
		slotsByEmp:   make(map[string][]*model.ShiftSlot),
		slotsByDate:  make(map[string]map[string][]*model.ShiftSlot),
	}

	for _, s := range shifts {
		c.shiftMap[s.ID] = s
	}
	for _, e := range employees {
		c.employeeMap[e.UID] = e
	}
	for _, a := range availability {
		if c.availability[a.UserID] == nil {
			c.availability[a.UserID] = make(map[string]*model.AvailabilityWindow)
		}
		c.availability[a.UserID][a.Date] = a
	}

	return c
}

// Commit 提交一次分配并更新索引
func (c *Context) Commit(shift *model.ShiftSlot, emp *model.Employee) {
	c.Assignments = append(c.Assignments, model.Assignment{
		ShiftID:  shift.ID,
		UserID:   emp.UID,
		UserName: emp.Name,
	})
	c.slotsByEmp[emp.UID] = append(c.slotsByEmp[emp.UID], shift)
	if c.slotsByDate[emp.UID] == nil {
		c.slotsByDate[emp.UID] = make(map[string][]*model.ShiftSlot)
	}
	c.slotsByDate[emp.UID][shift.Date] = append(c.slotsByDate[emp.UID][shift.Date], shift)
}

// GetShift 获取班次
func (c *Context) GetShift(id string) *model.ShiftSlot {
	return c.shiftMap[id]
}

// GetEmployee 获取员工
func (c *Context) GetEmployee(uid string) *model.Employee {
	return c.employeeMap[uid]
}

// GetAvailability 获取员工某天的空闲申报
func (c *Context) GetAvailability(uid, date string) *model.AvailabilityWindow {
	if byDate, ok := c.availability[uid]; ok {
		return byDate[date]
	}
	return nil
}

// EmployeeSlots 获取员工已提交的全部班次
func (c *Context) EmployeeSlots(uid string) []*model.ShiftSlot {
	return c.slotsByEmp[uid]
}

// EmployeeSlotsOnDate 获取员工某天已提交的班次
func (c *Context) EmployeeSlotsOnDate(uid, date string) []*model.ShiftSlot {
	if byDate, ok := c.slotsByDate[uid]; ok {
		return byDate[date]
	}
	return nil
}

// ShiftCountInWeek 统计员工在指定日期所在周已提交的班次数
func (c *Context) ShiftCountInWeek(uid, date string) int {
	weekStart := model.WeekStart(date)
	count := 0
	for _, s := range c.slotsByEmp[uid] {
		if model.WeekStart(s.Date) == weekStart {
			count++
		}
	}
	return count
}

// MinutesInWeek 统计员工在指定日期所在周已提交的工作分钟数
func (c *Context) MinutesInWeek(uid, date string) int {
	weekStart := model.WeekStart(date)
	minutes := 0
	for _, s := range c.slotsByEmp[uid] {
		if model.WeekStart(s.Date) == weekStart {
			minutes += s.TimeSlot.Minutes()
		}
	}
	return minutes
}

// SlotStartTime 返回班次开始的绝对时间
func SlotStartTime(s *model.ShiftSlot) time.Time {
	return slotTime(s.Date, s.TimeSlot.StartMinutes())
}

// SlotEndTime 返回班次结束的绝对时间
func SlotEndTime(s *model.ShiftSlot) time.Time {
	return slotTime(s.Date, s.TimeSlot.EndMinutes())
}

// slotTime 将日期加当日分钟数转换为绝对时间
func slotTime(date string, minutes int) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t.Add(time.Duration(minutes) * time.Minute)
}
