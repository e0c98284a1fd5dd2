package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStreamVideoID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"Valid Lowercase", "9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e5f", false},
		{"Valid Uppercase", "9F1C2D3E-4A5B-6C7D-8E9F-0A1B2C3D4E5F", false},
		{"Empty", "", true},
		{"Missing Dashes", "9f1c2d3e4a5b6c7d8e9f0a1b2c3d4e5f", true},
		{"Too Short", "9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e", true},
		{"Non Hex", "9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4g5z", true},
		{"Braced", "{9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e5f}", true},
		{"Trailing Garbage", "9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e5f/extra", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStreamVideoID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
