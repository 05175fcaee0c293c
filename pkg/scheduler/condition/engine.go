// Package condition 定义排班条件接口和求值引擎
package condition

import (
	"sort"
	"sync"

	"github.com/paigang/paigang/pkg/logger"
	"github.com/paigang/paigang/pkg/model"
)

// Engine 条件求值引擎
// 按 Kind 分发到已注册规则；未注册的 Kind 按放行处理（向前兼容策略）
type Engine struct {
	rules    map[string]Rule
	mu       sync.RWMutex
	logger   *logger.SchedulerLogger
	observer func(kind string, permitted bool)
}

// NewEngine 创建条件求值引擎
func NewEngine() *Engine {
	return &Engine{
		rules:  make(map[string]Rule),
		logger: logger.NewSchedulerLogger(),
	}
}

// Register 注册规则，同种类后注册者覆盖先注册者
func (e *Engine) Register(r Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules[r.Kind()] = r
}

// SetObserver 设置条件判定回调，用于外部统计
func (e *Engine) SetObserver(fn func(kind string, permitted bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer = fn
}

// GetRule 获取指定种类的规则
func (e *Engine) GetRule(kind string) Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules[kind]
}

// Kinds 返回所有已注册的条件种类（字典序）
func (e *Engine) Kinds() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	kinds := make([]string, 0, len(e.rules))
	for k := range e.rules {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Permit 判定是否允许将员工分配到班次
// 所有条件都放行才算通过；返回第一个否决条件的判定
func (e *Engine) Permit(ctx *Context, conds []model.ScheduleCondition, emp *model.Employee, shift *model.ShiftSlot) Verdict {
	for i := range conds {
		cond := &conds[i]
		rule := e.GetRule(cond.Kind)
		if rule == nil {
			// 未识别的种类不阻断派岗，只记录日志
			e.logger.UnsupportedCondition(cond.Kind)
			continue
		}

		verdict := rule.Check(ctx, cond, emp, shift)
		if e.observer != nil {
			e.observer(cond.Kind, verdict.OK)
		}
		if !verdict.OK {
			e.logger.ConditionRejected(cond.Name, emp.UID, shift.ID, verdict.Reason)
			return verdict
		}
	}
	return Permit()
}

// UnsupportedKinds 返回条件列表中未注册的种类（按首次出现顺序去重）
func (e *Engine) UnsupportedKinds(conds []model.ScheduleCondition) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[string]bool)
	var kinds []string
	for _, cond := range conds {
		if _, ok := e.rules[cond.Kind]; ok {
			continue
		}
		if seen[cond.Kind] {
			continue
		}
		seen[cond.Kind] = true
		kinds = append(kinds, cond.Kind)
	}
	return kinds
}
