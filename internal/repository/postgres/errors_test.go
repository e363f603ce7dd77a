package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

func TestClassifyNoRows(t *testing.T) {
	err := classify(sql.ErrNoRows, "slot")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "slot not found: sql: no rows in result set", err.Error())
}

func TestClassifyUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: pq.ErrorCode(pgUniqueViolation)}
	err := classify(pqErr, "schedule template")
	assert.True(t, apperrors.IsConflict(err))
}

func TestClassifyIntegrityViolations(t *testing.T) {
	for _, code := range []string{pgForeignKeyViolation, pgCheckViolation} {
		pqErr := &pq.Error{Code: pq.ErrorCode(code)}
		err := classify(pqErr, "slot")
		assert.True(t, apperrors.IsConflict(err), "code %s", code)
	}
}

func TestClassifyWrappedDriverError(t *testing.T) {
	pqErr := &pq.Error{Code: pq.ErrorCode(pgUniqueViolation)}
	wrapped := fmt.Errorf("insert failed: %w", pqErr)
	assert.True(t, apperrors.IsConflict(classify(wrapped, "slot")))
}

func TestClassifyUnknownError(t *testing.T) {
	err := classify(errors.New("connection reset"), "slot")
	assert.Equal(t, apperrors.ErrPersistence, apperrors.Code(err))
	// Driver details never leak into the message.
	assert.NotContains(t, err.Error(), "slot")
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil, "slot"))
}
