package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/paigang/paigang/pkg/model"
)

// RosterRepository 花名册仓储
type RosterRepository struct {
	db DB
}

// NewRosterRepository 创建花名册仓储
func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// List 获取全部在职员工，按UID升序
func (r *RosterRepository) List(ctx context.Context) ([]model.Employee, error) {
	query := `
		SELECT uid, name, role, secondary_roles
		FROM employees
		WHERE active = true
		ORDER BY uid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询花名册失败: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.UID, &e.Name, &e.Role, pq.Array(&e.SecondaryRoles)); err != nil {
			return nil, fmt.Errorf("扫描行失败: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// GetByUID 根据UID获取员工
func (r *RosterRepository) GetByUID(ctx context.Context, uid string) (*model.Employee, error) {
	query := `
		SELECT uid, name, role, secondary_roles
		FROM employees
		WHERE uid = $1 AND active = true
	`

	e := &model.Employee{}
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&e.UID, &e.Name, &e.Role, pq.Array(&e.SecondaryRoles))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}

	return e, nil
}
