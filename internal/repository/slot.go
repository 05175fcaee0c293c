package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paigang/paigang/pkg/model"
)

// SlotRepository 班次槽位仓储
type SlotRepository struct {
	db DB
}

// NewSlotRepository 创建班次槽位仓储
func NewSlotRepository(db DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// ListByDateRange 获取日期范围内的班次槽位，按日期和开始时间升序
func (r *SlotRepository) ListByDateRange(ctx context.Context, dr DateRange) ([]model.ShiftSlot, error) {
	query := `
		SELECT id, template_id, date, label, role, start_time, end_time, min_users
		FROM shift_slots
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, start_time ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("查询班次槽位失败: %w", err)
	}
	defer rows.Close()

	var slots []model.ShiftSlot
	for rows.Next() {
		var s model.ShiftSlot
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.Date, &s.Label, &s.Role,
			&s.TimeSlot.Start, &s.TimeSlot.End, &s.MinUsers); err != nil {
			return nil, fmt.Errorf("扫描行失败: %w", err)
		}
		slots = append(slots, s)
	}

	return slots, rows.Err()
}

// AvailabilityRepository 空闲申报仓储
type AvailabilityRepository struct {
	db DB
}

// NewAvailabilityRepository 创建空闲申报仓储
func NewAvailabilityRepository(db DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByDateRange 获取日期范围内的空闲申报
// ranges 列以 JSONB 存储时段列表
func (r *AvailabilityRepository) ListByDateRange(ctx context.Context, dr DateRange) ([]model.AvailabilityWindow, error) {
	query := `
		SELECT a.user_id, e.name, a.date, a.ranges
		FROM availability a
		JOIN employees e ON e.uid = a.user_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.user_id ASC, a.date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("查询空闲申报失败: %w", err)
	}
	defer rows.Close()

	var windows []model.AvailabilityWindow
	for rows.Next() {
		var w model.AvailabilityWindow
		var rangesJSON []byte
		if err := rows.Scan(&w.UserID, &w.UserName, &w.Date, &rangesJSON); err != nil {
			return nil, fmt.Errorf("扫描行失败: %w", err)
		}
		if err := json.Unmarshal(rangesJSON, &w.Ranges); err != nil {
			return nil, fmt.Errorf("解析空闲时段失败: %w", err)
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}
