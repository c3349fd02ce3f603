package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

func TestAppendScope(t *testing.T) {
	tests := []struct {
		name      string
		scope     models.AccessScope
		wantConds []string
		wantArgs  []interface{}
	}{
		{
			name:      "unrestricted",
			scope:     models.AccessScope{},
			wantConds: []string{"1=1"},
			wantArgs:  []interface{}{},
		},
		{
			name:      "group scope",
			scope:     models.AccessScope{GroupID: "g1"},
			wantConds: []string{"1=1", "s.group_id = $1"},
			wantArgs:  []interface{}{"g1"},
		},
		{
			name:      "campus scope",
			scope:     models.AccessScope{CampusID: "c1"},
			wantConds: []string{"1=1", "g.campus_id = $1"},
			wantArgs:  []interface{}{"c1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, args := appendScope(tt.scope, "s.group_id", "g.campus_id", []string{"1=1"}, []interface{}{})
			assert.Equal(t, tt.wantConds, conds)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestAppendScopeContinuesPlaceholderNumbering(t *testing.T) {
	scope := models.AccessScope{GroupID: "g1"}
	conds, args := appendScope(scope, "s.group_id", "g.campus_id",
		[]string{"1=1", "r.report_date = $1::date"}, []interface{}{"2024-03-01"})
	assert.Equal(t, []string{"1=1", "r.report_date = $1::date", "s.group_id = $2"}, conds)
	assert.Equal(t, []interface{}{"2024-03-01", "g1"}, args)
}
