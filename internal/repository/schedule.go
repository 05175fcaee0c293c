package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/paigang/paigang/internal/database"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/solver"
)

// ConditionRepository 排班条件仓储
type ConditionRepository struct {
	db DB
}

// NewConditionRepository 创建排班条件仓储
func NewConditionRepository(db DB) *ConditionRepository {
	return &ConditionRepository{db: db}
}

// ListEnabled 获取全部启用的排班条件，按名称升序
func (r *ConditionRepository) ListEnabled(ctx context.Context) ([]model.ScheduleCondition, error) {
	query := `
		SELECT name, kind, params
		FROM schedule_conditions
		WHERE enabled = true
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询排班条件失败: %w", err)
	}
	defer rows.Close()

	var conds []model.ScheduleCondition
	for rows.Next() {
		var c model.ScheduleCondition
		var paramsJSON []byte
		if err := rows.Scan(&c.Name, &c.Kind, &paramsJSON); err != nil {
			return nil, fmt.Errorf("扫描行失败: %w", err)
		}
		if len(paramsJSON) > 0 {
			if err := json.Unmarshal(paramsJSON, &c.Params); err != nil {
				return nil, fmt.Errorf("解析条件参数失败: %w", err)
			}
		}
		conds = append(conds, c)
	}

	return conds, rows.Err()
}

// ScheduleRepository 派岗结果仓储
type ScheduleRepository struct {
	db *database.DB
}

// NewScheduleRepository 创建派岗结果仓储
func NewScheduleRepository(db *database.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// SaveResult 持久化一次派岗运行的结果
// 运行摘要先落库；分配按班次分组，每个班次一个事务写入
// 单个班次失败不影响其他班次，失败的班次记入返回错误
func (r *ScheduleRepository) SaveResult(ctx context.Context, result *solver.Result) error {
	now := time.Now()

	warningsJSON, err := json.Marshal(result.Warnings)
	if err != nil {
		return fmt.Errorf("序列化警告失败: %w", err)
	}
	unfilledJSON, err := json.Marshal(result.Unfilled)
	if err != nil {
		return fmt.Errorf("序列化缺员记录失败: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO schedule_runs (id, total_shifts, total_assignments, unfilled, warnings, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, result.RunID, result.Statistics.TotalShifts, result.Statistics.TotalAssignments,
		unfilledJSON, warningsJSON, result.Duration.Milliseconds(), now)
	if err != nil {
		return fmt.Errorf("保存运行摘要失败: %w", err)
	}

	var failed []string
	for _, shift := range result.Shifts {
		if shift.AssignedCount() == 0 {
			continue
		}
		if err := r.saveShiftAssignments(ctx, result.RunID, shift, now); err != nil {
			failed = append(failed, shift.ID)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("保存分配失败的班次: %v", failed)
	}

	return nil
}

// saveShiftAssignments 在单个事务内写入一个班次的全部分配
func (r *ScheduleRepository) saveShiftAssignments(ctx context.Context, runID string, shift *model.ShiftSlot, now time.Time) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, uid := range shift.AssignedUsers {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO assignments (id, run_id, shift_id, user_id, date, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, uuid.New(), runID, shift.ID, uid, shift.Date, now); err != nil {
				return fmt.Errorf("写入分配失败: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE shift_slots SET assigned_users = $2, updated_at = $3 WHERE id = $1
		`, shift.ID, pq.Array(shift.AssignedUsers), now); err != nil {
			return fmt.Errorf("回写班次人员失败: %w", err)
		}
		return nil
	})
}

// ListAssignmentsByRun 获取一次运行的全部分配，按班次和员工升序
func (r *ScheduleRepository) ListAssignmentsByRun(ctx context.Context, runID string) ([]model.Assignment, error) {
	query := `
		SELECT a.shift_id, a.user_id, e.name
		FROM assignments a
		JOIN employees e ON e.uid = a.user_id
		WHERE a.run_id = $1
		ORDER BY a.shift_id ASC, a.user_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("查询分配失败: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ShiftID, &a.UserID, &a.UserName); err != nil {
			return nil, fmt.Errorf("扫描行失败: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
