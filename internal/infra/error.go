package infra

import (
	"errors"

	"booking-checkout/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err as the first of kinds, or KindStorageFailure when none is given.
func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindStorageFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost RepositoryError in err's chain, or "".
func KindOf(err error) RepositoryErrorKind {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Infrastructure-specific error kinds
const (
	KindNotFound       RepositoryErrorKind = "NOT_FOUND"
	KindStorageFailure RepositoryErrorKind = "STORAGE_FAILURE"
	KindDecode         RepositoryErrorKind = "DECODE"
	KindRejected       RepositoryErrorKind = "REJECTED"
	KindUnauthorized   RepositoryErrorKind = "UNAUTHORIZED"
	KindUnavailable    RepositoryErrorKind = "UNAVAILABLE"
	KindTimeout        RepositoryErrorKind = "TIMEOUT"
)
