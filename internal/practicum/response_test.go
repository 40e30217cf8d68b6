package practicum

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantErr   bool
		wantField string
	}{
		{name: "valid", raw: `{"homeworks": [{"homework_name": "hw1", "status": "approved"}], "current_date": 1000}`},
		{name: "valid empty list", raw: `{"homeworks": [], "current_date": 1000}`},
		{name: "extra keys tolerated", raw: `{"homeworks": [], "current_date": 1000, "extra": true}`},
		{name: "not an object", raw: `[1, 2, 3]`, wantErr: true},
		{name: "homeworks missing", raw: `{"current_date": 1000}`, wantErr: true, wantField: "homeworks"},
		{name: "homeworks not a list", raw: `{"homeworks": {"a": 1}, "current_date": 1000}`, wantErr: true, wantField: "homeworks"},
		{name: "current_date missing", raw: `{"homeworks": []}`, wantErr: true, wantField: "current_date"},
		{name: "current_date not an integer", raw: `{"homeworks": [], "current_date": "soon"}`, wantErr: true, wantField: "current_date"},
		{name: "current_date fractional", raw: `{"homeworks": [], "current_date": 1000.5}`, wantErr: true, wantField: "current_date"},
		{name: "homeworks null", raw: `{"homeworks": null, "current_date": 1000}`, wantErr: true, wantField: "homeworks"},
		{name: "both fields null", raw: `{"homeworks": null, "current_date": null}`, wantErr: true, wantField: "homeworks"},
		{name: "current_date null", raw: `{"homeworks": [{"homework_name": "hw1", "status": "approved"}], "current_date": null}`, wantErr: true, wantField: "current_date"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, err := ValidateResponse(json.RawMessage(tt.raw))

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateResponse error: %v", err)
				}
				if resp.CurrentDate != 1000 {
					t.Fatalf("CurrentDate = %d, want 1000", resp.CurrentDate)
				}
				return
			}

			var se *ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *ShapeError", err)
			}
			if se.Field != tt.wantField {
				t.Fatalf("Field = %q, want %q", se.Field, tt.wantField)
			}
		})
	}
}
