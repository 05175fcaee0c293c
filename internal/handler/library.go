package handler

import (
	"net/http"

	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition"
)

// ConditionSpec 条件种类的参数说明
type ConditionSpec struct {
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params"`
}

// conditionLibrary 内置条件种类说明，顺序与引擎注册无关
var conditionLibrary = map[string]ConditionSpec{
	model.KindMaxShiftsPerWeek: {
		Kind:        model.KindMaxShiftsPerWeek,
		Description: "限制员工每周班次数",
		Params:      map[string]string{"max": "整数上限", "employee": "可选，限定员工UID"},
	},
	model.KindMaxShiftsPerDay: {
		Kind:        model.KindMaxShiftsPerDay,
		Description: "限制员工每日班次数",
		Params:      map[string]string{"max": "整数上限", "employee": "可选，限定员工UID"},
	},
	model.KindMaxMinutesPerWeek: {
		Kind:        model.KindMaxMinutesPerWeek,
		Description: "限制员工每周工作分钟数",
		Params:      map[string]string{"minutes": "整数上限", "employee": "可选，限定员工UID"},
	},
	model.KindMinRestHours: {
		Kind:        model.KindMinRestHours,
		Description: "限制班次间最短休息时长",
		Params:      map[string]string{"hours": "小时数，支持小数", "employee": "可选，限定员工UID"},
	},
	model.KindBlackoutDate: {
		Kind:        model.KindBlackoutDate,
		Description: "指定日期禁止排班",
		Params:      map[string]string{"dates": "日期列表 YYYY-MM-DD", "employee": "可选，限定员工UID"},
	},
	model.KindRoleExclusivity: {
		Kind:        model.KindRoleExclusivity,
		Description: "指定岗位仅限主岗位员工承接",
		Params:      map[string]string{"role": "岗位名", "employee": "可选，限定员工UID"},
	},
}

// LibraryHandler 条件库处理器
type LibraryHandler struct {
	engine *condition.Engine
}

// NewLibraryHandler 创建条件库处理器
func NewLibraryHandler(engine *condition.Engine) *LibraryHandler {
	return &LibraryHandler{engine: engine}
}

// List 返回引擎当前支持的条件种类和参数定义
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	var specs []ConditionSpec
	for _, kind := range h.engine.Kinds() {
		if spec, ok := conditionLibrary[kind]; ok {
			specs = append(specs, spec)
		} else {
			specs = append(specs, ConditionSpec{Kind: kind, Description: "自定义规则"})
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"conditions": specs,
	})
}
