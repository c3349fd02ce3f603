package repository

import (
	"fmt"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

// appendScope translates an access scope into SQL predicates against the
// given group and campus columns. Used by every scoped list query so the
// role-visibility rule lives in exactly one place.
func appendScope(scope models.AccessScope, groupCol, campusCol string, conditions []string, args []interface{}) ([]string, []interface{}) {
	if scope.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", groupCol, len(args)+1))
		args = append(args, scope.GroupID)
	}
	if scope.CampusID != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", campusCol, len(args)+1))
		args = append(args, scope.CampusID)
	}
	return conditions, args
}
