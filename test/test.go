// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions report a failed test
// but allow the test to continue. The DemandEquality() function stops the
// test immediately on failure.
//
// The ExpectSuccess() and ExpectFailure() functions accept either a bool or an
// error value. A nil error is considered a success and a non-nil error is a
// failure.
package test

import (
	"math"
	"testing"
)

// ExpectEquality is used to test equality between one value and another
func ExpectEquality[T comparable](t *testing.T, value T, expectedValue T) bool {
	t.Helper()
	if value != expectedValue {
		t.Errorf("equality test of type %T failed: %v does not equal %v)", value, value, expectedValue)
		return false
	}
	return true
}

// DemandEquality is used to test equality between one value and another. If
// the test fails it is a fatal error
func DemandEquality[T comparable](t *testing.T, value T, expectedValue T) {
	t.Helper()
	if value != expectedValue {
		t.Fatalf("equality test of type %T failed: %v does not equal %v)", value, value, expectedValue)
	}
}

// ExpectInequality is used to test inequality between one value and another
func ExpectInequality[T comparable](t *testing.T, value T, expectedValue T) bool {
	t.Helper()
	if value == expectedValue {
		t.Errorf("inequality test of type %T failed: %v does equal %v)", value, value, expectedValue)
		return false
	}
	return true
}

// ExpectApproximate is used to test approximate equality between one value
// and another. The tolerance is absolute
func ExpectApproximate(t *testing.T, value float64, expectedValue float64, tolerance float64) bool {
	t.Helper()
	if math.Abs(value-expectedValue) > tolerance {
		t.Errorf("approximation test failed: %v is not within %v of %v", value, tolerance, expectedValue)
		return false
	}
	return true
}

// ExpectSuccess tests for a true bool or a nil error
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("a success value is expected for type %T", v)
			return false
		}
	case error:
		if v != nil {
			t.Errorf("a success value is expected for type %T (%s)", v, v)
			return false
		}
	case nil:
	default:
		t.Fatalf("unsupported type %T for ExpectSuccess()", v)
		return false
	}

	return true
}

// ExpectFailure tests for a false bool or a non-nil error
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("a failure value is expected for type %T", v)
			return false
		}
	case error:
		if v == nil {
			t.Errorf("a failure value is expected for type %T", v)
			return false
		}
	case nil:
		t.Errorf("a failure value is expected for nil")
		return false
	default:
		t.Fatalf("unsupported type %T for ExpectFailure()", v)
		return false
	}

	return true
}
