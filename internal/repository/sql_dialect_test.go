package repository

import "testing"

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "name LIKE ? OR description LIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", []string{"name"})
	if argCount != 1 || condition != "name ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s (%d)", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sort, order, want string
	}{
		{"createdAt", "desc", "created_at DESC"},
		{"price", "", "price ASC"},
		{"name", "DESC", "name DESC"},
		{"drop table", "desc", "id ASC"},
		{"", "", "id ASC"},
	}
	for _, tc := range cases {
		if got := orderClause(tc.sort, tc.order); got != tc.want {
			t.Fatalf("orderClause(%q, %q) want %s got %s", tc.sort, tc.order, tc.want, got)
		}
	}
}
