package prompt

import (
	"errors"
	"testing"

	"tableflip.dev/planboard/pkg/increment"
)

func TestDateValidation(t *testing.T) {
	tests := map[string]struct {
		in   string
		want error
	}{
		"valid":        {in: "2025-06-01"},
		"padded":       {in: " 2025-06-01 "},
		"empty":        {in: "  ", want: errRequired},
		"wrong layout": {in: "2025/06/01", want: increment.ErrInvalidDate},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := date(tc.in)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected %q to pass, got %v", tc.in, err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
