// Package types holds the data structures shared by the handlers and the
// storage backends. Keeping them in one place prevents import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Teacher is a stored teacher record.
//
// The JSON keys are the wire representation of the API and are kept in
// Portuguese: nome, idade, materia, observacoes.
type Teacher struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Age     int    `json:"idade"`
	Subject string `json:"materia"`
	Notes   string `json:"observacoes"`
}

// NewTeacher is the body of a create request.
//
// Fields are pointers so that "key absent" (nil) can be told apart from a
// zero value. validate:"required" on a pointer only checks that the key was
// present and not null; an age of 0 or an empty name is accepted.
type NewTeacher struct {
	Name    *string `json:"nome"        validate:"required"`
	Age     *Years  `json:"idade"       validate:"required"`
	Subject *string `json:"materia"     validate:"required"`
	Notes   *string `json:"observacoes"`
}

// Teacher converts the request into a record without an id.
// A missing observacoes becomes the empty string.
func (n NewTeacher) Teacher() Teacher {
	t := Teacher{}
	if n.Name != nil {
		t.Name = *n.Name
	}
	if n.Age != nil {
		t.Age = int(*n.Age)
	}
	if n.Subject != nil {
		t.Subject = *n.Subject
	}
	if n.Notes != nil {
		t.Notes = *n.Notes
	}
	return t
}

// TeacherPatch is the body of an update request. Only non-nil fields are
// written.
type TeacherPatch struct {
	Name    *string `json:"nome"`
	Age     *Years  `json:"idade"`
	Subject *string `json:"materia"`
	Notes   *string `json:"observacoes"`
}

// Apply overwrites the fields of t that are set in the patch.
func (p TeacherPatch) Apply(t *Teacher) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Age != nil {
		t.Age = int(*p.Age)
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}

// Years is an age as sent in a request body. Any whole JSON number is
// accepted, so 40 and 40.0 both decode to 40. The range is that of the
// 32-bit idade column.
type Years int

func (y *Years) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("idade must be a number: %w", err)
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("idade must be a whole number, got %s", b)
	}
	*y = Years(f)
	return nil
}
