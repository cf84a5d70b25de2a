package types

import (
	"encoding/json"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNewTeacher_DefaultsNotes(t *testing.T) {
	got := NewTeacher{Name: ptr("Ana"), Age: ptr(Years(30)), Subject: ptr("Artes")}.Teacher()
	want := Teacher{Name: "Ana", Age: 30, Subject: "Artes", Notes: ""}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTeacherPatch_Apply(t *testing.T) {
	base := Teacher{ID: 7, Name: "Ana", Age: 30, Subject: "Artes", Notes: "tarde"}

	tests := []struct {
		name  string
		patch TeacherPatch
		want  Teacher
	}{
		{"empty", TeacherPatch{}, base},
		{"age only", TeacherPatch{Age: ptr(Years(45))}, Teacher{ID: 7, Name: "Ana", Age: 45, Subject: "Artes", Notes: "tarde"}},
		{"clear notes", TeacherPatch{Notes: ptr("")}, Teacher{ID: 7, Name: "Ana", Age: 30, Subject: "Artes"}},
		{
			"all fields",
			TeacherPatch{Name: ptr("Bia"), Age: ptr(Years(22)), Subject: ptr("Inglês"), Notes: ptr("noite")},
			Teacher{ID: 7, Name: "Bia", Age: 22, Subject: "Inglês", Notes: "noite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base
			tt.patch.Apply(&got)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestYears_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Years
		wantErr bool
	}{
		{in: `40`, want: 40},
		{in: `40.0`, want: 40},
		{in: `4e1`, want: 40},
		{in: `-3`, want: -3},
		{in: `0`, want: 0},
		{in: `40.5`, wantErr: true},
		{in: `"40"`, wantErr: true},
		{in: `true`, wantErr: true},
		{in: `1e12`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Years
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewTeacher_NullAgeIsAbsent(t *testing.T) {
	var n NewTeacher
	if err := json.Unmarshal([]byte(`{"idade":null}`), &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Age != nil {
		t.Errorf("age = %d, want nil", *n.Age)
	}
}
