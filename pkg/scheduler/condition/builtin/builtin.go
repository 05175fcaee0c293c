// Package builtin 提供内置的排班条件规则
package builtin

import (
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// NewDefaultEngine 创建注册了全部内置规则的求值引擎
func NewDefaultEngine() *condition.Engine {
	engine := condition.NewEngine()
	RegisterAll(engine)
	return engine
}

// RegisterAll 注册全部内置规则
func RegisterAll(engine *condition.Engine) {
	engine.Register(&MaxShiftsPerWeekRule{})
	engine.Register(&MaxShiftsPerDayRule{})
	engine.Register(&MaxMinutesPerWeekRule{})
	engine.Register(&MinRestHoursRule{})
	engine.Register(&BlackoutDateRule{})
	engine.Register(&RoleExclusivityRule{})
}
