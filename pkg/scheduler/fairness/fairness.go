// Package fairness 实现工时公平排序
package fairness

import (
	"sort"

	"github.com/paigang/paigang/pkg/model"
)

// Scorer 公平性评分器
// 跟踪每个员工在本次运行中累计分配的工作分钟数，工时少者优先
type Scorer struct {
	minutes map[string]int
}

// NewScorer 创建公平性评分器，所有员工初始工时为零
func NewScorer(employees []*model.Employee) *Scorer {
	s := &Scorer{minutes: make(map[string]int, len(employees))}
	for _, e := range employees {
		s.minutes[e.UID] = 0
	}
	return s
}

// Minutes 返回员工累计工作分钟数
func (s *Scorer) Minutes(uid string) int {
	return s.minutes[uid]
}

// Commit 累加员工工作分钟数
func (s *Scorer) Commit(uid string, minutes int) {
	s.minutes[uid] += minutes
}

// Rank 按公平性排序候选人并返回副本，不改动入参
// 累计工时升序；工时相同按姓名字典序；姓名也相同按 UID 字典序
// 排序键全部确定，同一输入必然产生同一顺序
func (s *Scorer) Rank(candidates []*model.Employee) []*model.Employee {
	ranked := make([]*model.Employee, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := s.minutes[ranked[i].UID], s.minutes[ranked[j].UID]
		if mi != mj {
			return mi < mj
		}
		if ranked[i].Name != ranked[j].Name {
			return ranked[i].Name < ranked[j].Name
		}
		return ranked[i].UID < ranked[j].UID
	})
	return ranked
}
