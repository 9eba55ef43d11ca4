package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type query struct {
	Month string `validate:"omitempty,month_key"`
	Role  string `validate:"omitempty,household_role"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("month_key", validateMonthKey); err != nil {
		t.Fatalf("register month_key: %v", err)
	}
	if err := v.RegisterValidation("household_role", validateHouseholdRole); err != nil {
		t.Fatalf("register household_role: %v", err)
	}
	return v
}

func TestValidators(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name  string
		in    query
		valid bool
	}{
		{"empty", query{}, true},
		{"month", query{Month: "2024-03"}, true},
		{"december", query{Month: "2024-12"}, true},
		{"month_13", query{Month: "2024-13"}, false},
		{"month_without_zero", query{Month: "2024-3"}, false},
		{"husband", query{Role: "husband"}, true},
		{"wife", query{Role: "wife"}, true},
		{"other_role", query{Role: "admin"}, false},
		{"role_case", query{Role: "Wife"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err == nil) != tt.valid {
				t.Errorf("expected valid=%v, got err=%v", tt.valid, err)
			}
		})
	}
}
