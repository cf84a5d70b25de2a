package storage

import (
	"reflect"
	"testing"

	"github.com/aanand-mishra/professores-api/internal/types"
)

func TestPatchColumns(t *testing.T) {
	age, notes := types.Years(45), ""

	cols, args := PatchColumns(types.TeacherPatch{Age: &age, Notes: &notes})

	if want := []string{"idade", "observacoes"}; !reflect.DeepEqual(cols, want) {
		t.Errorf("cols = %v, want %v", cols, want)
	}
	if want := []any{45, ""}; !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}

	if cols, args := PatchColumns(types.TeacherPatch{}); len(cols) != 0 || len(args) != 0 {
		t.Errorf("empty patch gave %v %v", cols, args)
	}
}
