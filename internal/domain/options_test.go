package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/github-traffic/internal/apperr"
)

func TestReportOptions_Validate_Timeframe(t *testing.T) {
	for days := MinTimeframeDays; days <= MaxTimeframeDays; days++ {
		t.Run(fmt.Sprintf("%d days is valid", days), func(t *testing.T) {
			opts := DefaultReportOptions()
			opts.TimeframeDays = days
			assert.NoError(t, opts.Validate())
		})
	}

	for _, days := range []int{-1, 0, 15, 30} {
		t.Run(fmt.Sprintf("%d days is rejected", days), func(t *testing.T) {
			opts := DefaultReportOptions()
			opts.TimeframeDays = days
			err := opts.Validate()
			assert.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestReportOptions_Validate_SortKey(t *testing.T) {
	opts := DefaultReportOptions()
	assert.NoError(t, opts.Validate())

	opts.SortBy = SortKey("popularity")
	err := opts.Validate()
	assert.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}
