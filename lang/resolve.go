package lang

import (
	"log/slog"
	"reflect"
)

// Resolver tier labels, used for debug logging only.
const (
	tierCustom = "custom"
	tierClass  = "class"
	tierHost   = "host"
)

// callable is a resolved function ready for invocation.
type callable struct {
	fn   reflect.Value
	tier string
}

// resolve looks up a function name through the three resolver tiers, first
// match wins: the custom function table, the exported methods of registered
// class values in registration order, then the host function table.
// Matching is an exact string comparison at every tier.
func (e *Engine) resolve(name string) (callable, error) {
	if fn, ok := e.funcs[name]; ok {
		v := reflect.ValueOf(fn)
		if v.Kind() != reflect.Func {
			return callable{}, ErrNotCallable.
				With(slog.String("name", name))
		}

		return callable{fn: v, tier: tierCustom}, nil
	}

	for _, class := range e.classes {
		method := reflect.ValueOf(class).MethodByName(name)
		if method.IsValid() {
			return callable{fn: method, tier: tierClass}, nil
		}
	}

	if fn, ok := e.host[name]; ok {
		return callable{fn: reflect.ValueOf(fn), tier: tierHost}, nil
	}

	return callable{}, ErrFunctionNotFound.
		With(slog.String("name", name))
}
