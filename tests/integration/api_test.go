// Package integration 提供HTTP接口集成测试
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paigang/paigang/internal/handler"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition/builtin"
	"github.com/paigang/paigang/pkg/scheduler/solver"
)

func newTestMux() *http.ServeMux {
	engine := builtin.NewDefaultEngine()
	scheduleHandler := handler.NewScheduleHandler(engine, 30*time.Second, true)
	libraryHandler := handler.NewLibraryHandler(engine)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/schedule/generate", scheduleHandler.Generate)
	mux.HandleFunc("/api/v1/schedule/validate", scheduleHandler.Validate)
	mux.HandleFunc("/api/v1/conditions/library", libraryHandler.List)
	mux.HandleFunc("/api/v1/stats/fairness", handler.GetFairnessHandler)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func generateBody() solver.Request {
	return solver.Request{
		Shifts: []model.ShiftSlot{
			{ID: "s1", Date: "2025-01-06", Role: "Phục vụ",
				TimeSlot: model.TimeWindow{Start: "08:00", End: "12:00"}, MinUsers: 2},
		},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
			{UID: "u2", Name: "Bình", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{
			{UserID: "u1", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
			{UserID: "u2", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
		},
	}
}

func TestGenerateAPI(t *testing.T) {
	mux := newTestMux()

	w := postJSON(t, mux, "/api/v1/schedule/generate", generateBody())
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	var resp handler.GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	if !resp.Success {
		t.Error("应返回成功")
	}
	if len(resp.Assignments) != 2 {
		t.Errorf("分配数 = %d, expected 2", len(resp.Assignments))
	}
	if resp.RunID == "" {
		t.Error("应返回运行ID")
	}
	if len(resp.AuditIssues) != 0 {
		t.Errorf("审计不应发现问题: %v", resp.AuditIssues)
	}
}

func TestGenerateAPI_ValidationError(t *testing.T) {
	mux := newTestMux()

	body := generateBody()
	body.Shifts[0].MinUsers = 0

	w := postJSON(t, mux, "/api/v1/schedule/generate", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, expected 400, body = %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp["code"] != "VALIDATION_FAILED" {
		t.Errorf("错误码 = %v", resp["code"])
	}
}

func TestGenerateAPI_MethodNotAllowed(t *testing.T) {
	mux := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/generate", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, expected 400", w.Code)
	}
}

func TestValidateAPI(t *testing.T) {
	mux := newTestMux()

	body := handler.ValidateRequest{
		Shifts: []model.ShiftSlot{
			{ID: "s1", Date: "2025-01-06", Role: "Phục vụ",
				TimeSlot: model.TimeWindow{Start: "08:00", End: "12:00"}, MinUsers: 1},
		},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Bếp"}, // 岗位不匹配
		},
		Availability: []model.AvailabilityWindow{
			{UserID: "u1", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
		},
		Assignments: []model.Assignment{
			{ShiftID: "s1", UserID: "u1", UserName: "An"},
		},
	}

	w := postJSON(t, mux, "/api/v1/schedule/validate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	var resp handler.ValidateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Valid {
		t.Error("岗位不匹配的方案应判定为无效")
	}
	if len(resp.Issues) == 0 {
		t.Error("应报告审计问题")
	}
}

func TestConditionLibraryAPI(t *testing.T) {
	mux := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conditions/library", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", w.Code)
	}

	var resp struct {
		Conditions []handler.ConditionSpec `json:"conditions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Conditions) != 6 {
		t.Errorf("条件种类数 = %d, expected 6", len(resp.Conditions))
	}
}

func TestFairnessAPI(t *testing.T) {
	mux := newTestMux()

	body := handler.StatsRequest{
		Employees: []model.Employee{
			{UID: "u1", Name: "An"},
			{UID: "u2", Name: "Bình"},
		},
		Shifts: []model.ShiftSlot{
			{ID: "s1", Date: "2025-01-06", MinUsers: 1,
				TimeSlot: model.TimeWindow{Start: "08:00", End: "12:00"}, AssignedUsers: []string{"u1"}},
		},
		Assignments: []model.Assignment{
			{ShiftID: "s1", UserID: "u1", UserName: "An"},
		},
	}

	w := postJSON(t, mux, "/api/v1/stats/fairness", body)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Loads []struct {
			UserID  string `json:"user_id"`
			Minutes int    `json:"minutes"`
		} `json:"loads"`
		Gini float64 `json:"gini"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Loads) != 2 {
		t.Fatalf("负载条目数 = %d, expected 2", len(resp.Loads))
	}
	if resp.Loads[0].UserID != "u1" || resp.Loads[0].Minutes != 240 {
		t.Errorf("第一名 = %+v", resp.Loads[0])
	}
}
