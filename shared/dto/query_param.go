package dto

import (
	"fmt"
	"strings"

	"todolist/shared/constant"
)

// QueryParams controls ordering of list queries. Lists are never paginated.
type QueryParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// OrderBy renders the ORDER BY clause, appending tieBreaker in the same direction
// so rows sharing a sort value keep a stable order.
func (q QueryParams) OrderBy(tieBreaker string) string {
	if q.SortBy == "" {
		return ""
	}

	dir := strings.ToUpper(q.SortDir)
	if dir != constant.SortDirAsc {
		dir = constant.SortDirDesc
	}

	if tieBreaker == "" || tieBreaker == q.SortBy {
		return fmt.Sprintf("ORDER BY %s %s", q.SortBy, dir)
	}

	return fmt.Sprintf("ORDER BY %s %s, %s %s", q.SortBy, dir, tieBreaker, dir)
}
