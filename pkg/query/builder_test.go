package query_test

import (
	"reflect"
	"testing"

	"github.com/efoncier/survey-lab/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "pages", "p").
		Project("id", "Id").
		Project("owner_id", "OwnerId").
		Project("sequence_number", "SequenceNumber").
		Project("created_at", "CreatedAt")
}

func TestProjectionMap_Table(t *testing.T) {
	got := testProjection().Table()
	want := "public.pages p"
	if got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMap_Columns_RegistrationOrder(t *testing.T) {
	got := testProjection().Columns()
	want := "p.id, p.owner_id, p.sequence_number, p.created_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMap_Column_UnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Column() on unknown field should panic")
		}
	}()
	testProjection().Column("Nope")
}

func TestParseSortFields(t *testing.T) {
	got := query.ParseSortFields("CreatedAt,-SequenceNumber")
	want := []query.SortField{
		{Field: "CreatedAt"},
		{Field: "SequenceNumber", Descending: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSortFields() = %v, want %v", got, want)
	}

	if query.ParseSortFields("") != nil {
		t.Error("ParseSortFields(\"\") should return nil")
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("OwnerId", "owner-1").
		BuildSingle("Id", "page-1")

	want := "SELECT p.id, p.owner_id, p.sequence_number, p.created_at " +
		"FROM public.pages p WHERE p.owner_id = $1 AND p.id = $2"
	if sql != want {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"owner-1", "page-1"}) {
		t.Errorf("BuildSingle() args = %v, want [owner-1 page-1]", args)
	}
}

func TestBuilder_BuildList_DefaultSort(t *testing.T) {
	sql, args := query.NewBuilder(testProjection(),
		query.SortField{Field: "SequenceNumber"},
	).BuildList()

	want := "SELECT p.id, p.owner_id, p.sequence_number, p.created_at " +
		"FROM public.pages p ORDER BY p.sequence_number ASC"
	if sql != want {
		t.Errorf("BuildList() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("BuildList() args = %v, want none", args)
	}
}

func TestBuilder_BuildPage(t *testing.T) {
	sql, args := query.NewBuilder(testProjection(),
		query.SortField{Field: "CreatedAt", Descending: true},
	).WhereEquals("OwnerId", "owner-1").BuildPage(2, 10)

	want := "SELECT p.id, p.owner_id, p.sequence_number, p.created_at " +
		"FROM public.pages p WHERE p.owner_id = $1 " +
		"ORDER BY p.created_at DESC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("BuildPage() sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"owner-1"}) {
		t.Errorf("BuildPage() args = %v, want [owner-1]", args)
	}
}

func TestBuilder_BuildCount(t *testing.T) {
	search := "leve"
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("OwnerId", "owner-1").
		WhereContains("Id", &search).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.pages p WHERE p.owner_id = $1 AND p.id ILIKE $2"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"owner-1", "%leve%"}) {
		t.Errorf("BuildCount() args = %v", args)
	}
}

func TestBuilder_WhereEquals_NilIgnored(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("OwnerId", nil).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.pages p"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuilder_OrderByFields_OverridesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(),
		query.SortField{Field: "CreatedAt", Descending: true},
	).OrderByFields([]query.SortField{{Field: "SequenceNumber"}}).BuildList()

	want := "SELECT p.id, p.owner_id, p.sequence_number, p.created_at " +
		"FROM public.pages p ORDER BY p.sequence_number ASC"
	if sql != want {
		t.Errorf("BuildList() sql = %q, want %q", sql, want)
	}
}
