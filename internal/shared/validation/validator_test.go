package validation

import (
	"errors"
	"testing"
)

type profileInput struct {
	HeightCM float64 `json:"heightCm" validate:"gt=0,lte=260"`
	Gender   string  `json:"gender" validate:"required,oneof=male female unisex"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		in     profileInput
		fields []string
	}{
		{name: "valid", in: profileInput{HeightCM: 180, Gender: "male"}},
		{name: "missing_gender", in: profileInput{HeightCM: 180}, fields: []string{"gender"}},
		{name: "two_failures", in: profileInput{HeightCM: 300, Gender: "x"}, fields: []string{"heightCm", "gender"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if len(verr.Fields) != len(tt.fields) {
				t.Fatalf("expected %d field errors, got %+v", len(tt.fields), verr.Fields)
			}
			for i, f := range tt.fields {
				if verr.Fields[i].Field != f {
					t.Fatalf("field %d: expected %s, got %s", i, f, verr.Fields[i].Field)
				}
			}
		})
	}
}
