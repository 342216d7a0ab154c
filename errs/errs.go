// Package errs defines the OP_NET error-kind taxonomy. Each kind carries a
// distinct propagation policy enforced by the caller, never mixed: a
// ParseError demotes a transaction, a StorageError reverts a block. The
// kinds are sentinel markers checked with errors.Is; cockroachdb/errors
// supplies stack-trace capture that is only rendered when dev mode is on.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind is a distinct error category from the OP_NET error table.
type Kind struct{ name string }

func (k Kind) Error() string { return k.name }

var (
	KindParse             = Kind{"parse_error"}
	KindValidation         = Kind{"validation_error"}
	KindExecutionRevert    = Kind{"execution_revert"}
	KindExecutionPanic     = Kind{"execution_panic"}
	KindBlockOutOfGas      = Kind{"block_out_of_gas"}
	KindBlockAborted       = Kind{"block_aborted"}
	KindDataCorrupted      = Kind{"data_corrupted"}
	KindStorageError       = Kind{"storage_error"}
	KindAdmissionRejected  = Kind{"admission_rejected"}
)

// Wrap attaches kind k to err with a short reason, capturing a stack trace
// that is rendered only when devMode reporting is requested by the caller.
func Wrap(kind Kind, reason string, cause error) error {
	if cause == nil {
		return errors.WithStack(errors.Wrap(kind, reason))
	}
	return errors.WithStack(errors.Wrapf(errors.Mark(cause, kind), "%s: %s", kind.name, reason))
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}

// Reason renders the short, user-visible string for err: no stack trace
// unless devMode is set.
func Reason(err error, devMode bool) string {
	if err == nil {
		return ""
	}
	if devMode {
		return fmt.Sprintf("%+v", err)
	}
	return err.Error()
}
