package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectedErr error
	}{
		{"positive amount", decimal.NewFromInt(100), nil},
		{"smallest positive amount", decimal.NewFromFloat(0.01), nil},
		{"zero amount", decimal.Zero, ErrInvalidAmount},
		{"negative amount", decimal.NewFromInt(-1), ErrInvalidAmount},
		{"amount above maximum", decimal.RequireFromString("1000000000001"), ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedErr), "expected %v, got %v", tt.expectedErr, err)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription("groceries"))

	long := make([]byte, MaxDescriptionLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ValidateDescription(string(long)), ErrDescriptionTooLong)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"User.Name+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret1"))
	assert.ErrorIs(t, ValidatePassword("abc"), ErrPasswordTooWeak)

	long := make([]byte, MaxPasswordLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.ErrorIs(t, ValidatePassword(string(long)), ErrPasswordTooWeak)
}
