package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "schoolapi/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestPhoneNormalizer_Normalize(t *testing.T) {
	p := NewPhoneNormalizer("us")

	tests := []struct {
		name    string
		raw     *string
		want    *string
		wantErr error
	}{
		{name: "nil", raw: nil, want: nil},
		{name: "blank", raw: strPtr("   "), want: nil},
		{name: "national format", raw: strPtr("(650) 253-0000"), want: strPtr("+16502530000")},
		{name: "international format", raw: strPtr("+1 650 253 0000"), want: strPtr("+16502530000")},
		{name: "letters", raw: strPtr("call me"), wantErr: apperrors.ErrInvalidPhone},
		{name: "too short", raw: strPtr("123"), wantErr: apperrors.ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Normalize(tt.raw)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPhoneNormalizer_DefaultRegion(t *testing.T) {
	assert.Equal(t, DefaultPhoneRegion, NewPhoneNormalizer("").region)
}
