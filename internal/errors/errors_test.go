package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", NewError("bad").Mark(ErrValidation), http.StatusBadRequest, ErrCodeValidation},
		{"invalid operation", NewError("off").Mark(ErrInvalidOperation), http.StatusBadRequest, ErrCodeInvalidOperation},
		{"not found", NewError("gone").Mark(ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"conflict", NewError("dup").Mark(ErrAlreadyExists), http.StatusConflict, ErrCodeAlreadyExists},
		{"storage", NewError("s3").Mark(ErrStorage), http.StatusBadGateway, ErrCodeStorage},
		{"database", NewError("pg").Mark(ErrDatabase), http.StatusInternalServerError, ErrCodeDatabase},
		{"unmarked", fmt.Errorf("plain"), http.StatusInternalServerError, ErrCodeSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestHTTPStatusFromErr_ClientMarkWins(t *testing.T) {
	// a validation failure surfaced through the database layer stays a 400
	err := WithError(NewError("bad number").Mark(ErrValidation)).Mark(ErrDatabase)
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromErr(err))
	assert.True(t, IsValidation(err))
}

func TestDisplayMessage(t *testing.T) {
	assert.Empty(t, DisplayMessage(NewError("no hint").Mark(ErrSystem)))

	inner := NewError("disk full").WithHint("Could not store the document").Mark(ErrStorage)
	outer := WithError(inner).WithHint("Archive failed").Mark(ErrStorage)
	assert.Equal(t, "Archive failed", DisplayMessage(outer))
	assert.True(t, IsStorage(outer))
}

func TestReportableDetails(t *testing.T) {
	assert.Nil(t, ReportableDetails(NewError("x").Mark(ErrValidation)))

	err := NewError("bad item").
		WithField("items[0].price", "must be greater than 0").
		WithReportableDetails(map[string]any{"max_items": 5}).
		WithReportableDetails(nil).
		Mark(ErrValidation)

	details := ReportableDetails(err)
	assert.Equal(t, "must be greater than 0", details["items[0].price"])
	assert.EqualValues(t, 5, details["max_items"])
	assert.Len(t, details, 2)
}
