package application

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDuplicateMapsUniqueViolation(t *testing.T) {
	err := translateDuplicate(&pq.Error{Code: "23505", Constraint: "application_user_job_idx"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTranslateDuplicatePassesThroughOtherErrors(t *testing.T) {
	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, error(fk), translateDuplicate(fk))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateDuplicate(plain))
}
