// Package assert contains error assertions that understand
// cockroachdb/errors marks, unlike testify.
package assert

import (
	"testing"

	"github.com/cockroachdb/errors"
)

// ErrorIs fails the test if err doesn't match target.
func ErrorIs(t testing.TB, err error, target error) {
	t.Helper()
	ErrorIsf(t, err, target, "Expected error to be %v but got %v instead", target, err)
}

func ErrorIsf(t testing.TB, err error, target error, str string, args ...interface{}) {
	t.Helper()

	if errors.Is(err, target) {
		return
	}
	t.Logf(str, args...)
	if err != nil {
		t.Logf("Details:\n%+v", err)
	}
	t.FailNow()
}

// ErrorIsAll fails the test unless err matches every target,
// typically an error kind and the store error that caused it.
func ErrorIsAll(t testing.TB, err error, targets ...error) {
	t.Helper()

	for _, target := range targets {
		ErrorIsf(t, err, target, "Expected error to match %v but got %v instead", target, err)
	}
}
