package schema

import (
	"path/filepath"
	"slices"
	"testing"

	"entgo.io/ent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sourcequiz/internal/store"
)

type described interface {
	Fields() []ent.Field
	Mixin() []ent.Mixin
}

func fieldNames(s described) []string {
	var names []string
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			names = append(names, f.Descriptor().Name)
		}
	}
	for _, f := range s.Fields() {
		names = append(names, f.Descriptor().Name)
	}
	return names
}

func tableColumns(t *testing.T, s *store.Store, table string) []string {
	t.Helper()
	rows, err := s.DB().Query("PRAGMA table_info(" + table + ")")
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             any
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	return cols
}

// The store creates its tables with hand-written DDL; these schemas must
// describe the same columns.
func TestSchemasMatchStoreTables(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer s.Close()

	tests := []struct {
		table  string
		schema described
		autoID bool
	}{
		{"llm_request_events", LLMRequestEvent{}, true},
		{"questions", Question{}, false},
		{"question_reviews", QuestionReview{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			want := fieldNames(tt.schema)
			if tt.autoID {
				want = append(want, "id")
			}
			got := tableColumns(t, s, tt.table)
			slices.Sort(want)
			slices.Sort(got)
			assert.Equal(t, want, got)
		})
	}
}

func TestFieldDescriptorsValid(t *testing.T) {
	for _, s := range []described{LLMRequestEvent{}, Question{}, QuestionReview{}} {
		for _, name := range fieldNames(s) {
			if name == "" {
				t.Fatalf("%T has an unnamed field", s)
			}
		}
		for _, f := range s.Fields() {
			if err := f.Descriptor().Err; err != nil {
				t.Errorf("%T field %s: %v", s, f.Descriptor().Name, err)
			}
		}
	}
}
