// Package model 定义派岗引擎的核心数据模型
package model

// ScheduleCondition 排班条件：一条可以否决 (员工, 班次) 配对的规则
// Kind 标识规则种类，Params 为该种类的专有参数
// 条件按运行传入，引擎不会修改；未识别的 Kind 按放行处理
type ScheduleCondition struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Params JSONMap `json:"params,omitempty"`
}

// 内置条件种类
const (
	KindMaxShiftsPerWeek  = "max-shifts-per-week"
	KindMaxShiftsPerDay   = "max-shifts-per-day"
	KindMaxMinutesPerWeek = "max-minutes-per-week"
	KindMinRestHours      = "min-rest-hours"
	KindBlackoutDate      = "blackout-date"
	KindRoleExclusivity   = "role-exclusivity"
)

// AppliesTo 检查条件是否作用于指定员工
// 带 employee 参数的条件只约束该员工，不带则约束所有人
func (c *ScheduleCondition) AppliesTo(uid string) bool {
	target := c.Params.GetString("employee", "")
	return target == "" || target == uid
}
