package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	assert.True(t, IsUsage(Usage("--%s is required", "title")))
	assert.True(t, IsValidation(Invalid("bad")))
	assert.True(t, IsNotFound(NotFound("service %q", "x")))
	assert.True(t, IsIntegration(Integration(errors.New("smtp down"), "send failed")))
	assert.Equal(t, ErrCodeStore, Code(Store(errors.New("disk"), "write failed")))
}

func TestCode_SurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("updating service: %w", NotFound("service %q not found", "it-consulting"))
	assert.True(t, IsNotFound(err))
}

func TestCode_PlainError(t *testing.T) {
	assert.Equal(t, "", Code(errors.New("plain")))
	assert.Equal(t, "", Code(nil))
	assert.False(t, IsNotFound(nil))
}
