package assert

import (
	"errors"
	"reflect"
	"testing"
)

func Equal[T any](t *testing.T, a T, b T) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("%v != %v", a, b)
	}
}

func NotEqual[T any](t *testing.T, a T, b T) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Fatalf("%v == %v", a, b)
	}
}

func IsNil(t *testing.T, value any) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("%v is not nil", value)
	}
}

func NotNil(t *testing.T, value any) {
	t.Helper()
	if isNil(value) {
		t.Fatal("value is nil")
	}
}

func ErrorIs(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%v does not match %v", err, target)
	}
}

func True(t *testing.T, value bool) {
	t.Helper()
	if !value {
		t.Fatal("value is false")
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
