package storage

import (
	"math"
	"strings"
	"testing"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "Code",
			paramName: "process",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "process",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "title",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  main.go  ",
			paramName: "title",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, validateKey("Code", "main.go"))
	assert.ErrorIs(t, validateKey("", "main.go"), common.ErrInvalidInput)
	assert.ErrorIs(t, validateKey("Code", " "), common.ErrInvalidInput)
}

func TestValidateMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		wantErr bool
	}{
		{name: "zero", minutes: 0},
		{name: "fractional", minutes: 0.25},
		{name: "manual step", minutes: 15},
		{name: "negative", minutes: -1, wantErr: true},
		{name: "not a number", minutes: math.NaN(), wantErr: true},
		{name: "infinite", minutes: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateEntries(t *testing.T) {
	assert.NoError(t, validateEntries(model.Entries{}))
	assert.NoError(t, validateEntries(model.Entries{
		"Code":     {"main.go": 12.5, "go.mod": 0},
		"Terminal": {"zsh": 3},
	}))
	assert.Error(t, validateEntries(model.Entries{"Code": {"main.go": -2}}))
	assert.Error(t, validateEntries(model.Entries{"Code": {"main.go": math.Inf(-1)}}))
}
