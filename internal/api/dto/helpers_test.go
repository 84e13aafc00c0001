package dto

import (
	"strings"

	"github.com/cockroachdb/errors"
)

func errorsHints(err error) string {
	return strings.Join(errors.GetAllHints(err), "\n")
}
