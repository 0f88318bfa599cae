package storage

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
)

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", common.ErrInvalidInput, paramName)
	}
	return nil
}

// validateKey ensures both halves of a ledger key are present.
func validateKey(process, title string) error {
	if err := validateString(process, "process"); err != nil {
		return err
	}
	return validateString(title, "title")
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateMinutes ensures an accrual is a finite, non-negative amount.
func validateMinutes(minutes float64) error {
	if minutes < 0 || !finite(minutes) {
		return fmt.Errorf("%w: minutes must be a non-negative number, got %v", common.ErrInvalidInput, minutes)
	}
	return nil
}

// validateEntries checks a decoded ledger for values no writer could have produced.
func validateEntries(entries model.Entries) error {
	for process, titles := range entries {
		for title, minutes := range titles {
			if minutes < 0 || !finite(minutes) {
				return fmt.Errorf("negative or invalid minutes %v for [%s] %s", minutes, process, title)
			}
		}
	}
	return nil
}
