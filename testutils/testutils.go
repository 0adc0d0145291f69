// Package testutils provides helpers for table-driven tests:
// a generic test case structure, error assertions and temporary file handling.
package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCase represents a generic test case structure.
// It is parameterized by T, the type of the expected result, and D, the type of the test data.
type TestCase[T any, D any] struct {
	// Name is the identifier for the test case, used for reporting purposes.
	Name string
	// Expected is the anticipated result of the test. It should be left empty if an error is expected.
	Expected T
	// Data contains the input for the test.
	Data D
	// Error is a function that checks the error returned by the test function, if an error is anticipated.
	Error func(*testing.T, error)
}

// F returns a test function that executes the logic of the test case, suitable for use with t.Run().
// It takes a function f that processes the test data and returns an actual result along with an error, if any.
// After executing f, it verifies the actual result against the expected result or evaluates the error condition.
func (tc TestCase[T, D]) F(f func(D) (T, error)) func(t *testing.T) {
	return func(t *testing.T) {
		actual, err := f(tc.Data)

		if tc.Error != nil {
			tc.Error(t, err)
		} else {
			require.NoError(t, err)
			require.Equal(t, tc.Expected, actual)
		}
	}
}

// ErrorAs returns a function that checks if the error is of a specific type T.
func ErrorAs[T error]() func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var expected T
		require.ErrorAs(t, err, &expected)
	}
}

// ErrorContains returns a function that checks if the error message contains the expected substring.
func ErrorContains(expected string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		require.ErrorContains(t, err, expected)
	}
}

// ErrorIs returns a function that checks if the error is equal to the expected error.
func ErrorIs(expected error) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		require.ErrorIs(t, err, expected)
	}
}

// All returns a function that runs every given check against the error.
func All(checks ...func(t *testing.T, err error)) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		for _, check := range checks {
			check(t, err)
		}
	}
}

// WithFile creates a temporary file matching pattern, see [os.CreateTemp], with the provided content
// and executes a function with the file. The file is removed after the function returns.
func WithFile(t *testing.T, pattern, content string, f func(file *os.File)) {
	file, err := os.CreateTemp("", pattern)
	require.NoError(t, err)

	defer func(name string) {
		_ = os.Remove(name) // #nosec G703 -- name is not user supplied, but from os.CreateTemp
	}(file.Name())

	_, err = file.WriteString(content)
	require.NoError(t, err)

	require.NoError(t, file.Close())

	f(file)
}
