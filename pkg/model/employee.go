// Package model 定义派岗引擎的核心数据模型
package model

// Employee 员工
// 在一次派岗运行期间只读，花名册由外部系统维护
type Employee struct {
	UID            string   `json:"uid" db:"uid"`
	Name           string   `json:"name" db:"name"`
	Role           string   `json:"role" db:"role"`                           // 主岗位
	SecondaryRoles []string `json:"secondary_roles,omitempty" db:"secondary_roles"` // 副岗位
}

// HasRole 检查员工主岗位或副岗位是否匹配指定岗位
func (e *Employee) HasRole(role string) bool {
	if e.Role == role {
		return true
	}
	for _, r := range e.SecondaryRoles {
		if r == role {
			return true
		}
	}
	return false
}
