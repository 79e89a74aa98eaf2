package lang

import (
	"fmt"
	"log/slog"
	"reflect"
)

// errType is the reflected error interface, used to recognize error results.
//
//nolint:gochecknoglobals
var errType = reflect.TypeOf((*error)(nil)).Elem()

// invoke calls a resolved function with the given arguments, converting each
// argument to the corresponding parameter type. Functions may return no
// value, a single value, a single error, or a (value, error) pair. A panic
// inside the function is recovered and reported as an invocation failure.
func invoke(c callable, name string, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = ErrInvoke.
				Wrap(fmt.Errorf("panic: %v", r)).
				With(slog.String("name", name))
		}
	}()

	typ := c.fn.Type()

	fixed := typ.NumIn()
	if typ.IsVariadic() {
		fixed--

		if len(args) < fixed {
			return nil, arityError(name, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, arityError(name, fixed, len(args))
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		target := typ.In(min(i, fixed))
		if typ.IsVariadic() && i >= fixed {
			target = typ.In(fixed).Elem()
		}

		v, convErr := convertArg(arg, target)
		if convErr != nil {
			return nil, ErrInvoke.
				Wrap(convErr).
				With(
					slog.String("name", name),
					slog.Int("argument", i),
				)
		}

		in[i] = v
	}

	out := c.fn.Call(in)

	for _, o := range out {
		if o.Type().Implements(errType) {
			if !o.IsNil() {
				callErr, ok := o.Interface().(error)
				if ok {
					return nil, ErrInvoke.
						Wrap(callErr).
						With(slog.String("name", name))
				}
			}

			continue
		}

		result = o.Interface()
	}

	return result, nil
}

// arityError reports an argument-count mismatch.
func arityError(name string, expected, got int) error {
	return ErrInvoke.
		With(
			slog.String("name", name),
			slog.Int("expected", expected),
			slog.Int("got", got),
		)
}

// convertArg adapts one argument value to a parameter type. Assignable
// values pass through; string parameters accept any value through
// stringification (pipelines are string-oriented); remaining cases use Go
// value conversion when defined.
func convertArg(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(target), nil
	}

	v := reflect.ValueOf(arg)

	if v.Type().AssignableTo(target) {
		return v, nil
	}

	if target.Kind() == reflect.String {
		return reflect.ValueOf(stringify(arg)), nil
	}

	if v.Type().ConvertibleTo(target) {
		return v.Convert(target), nil
	}

	return reflect.Value{}, fmt.Errorf(
		"cannot use %T as %s", arg, target,
	)
}
