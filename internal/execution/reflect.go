package execution

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"caserun/internal/domain"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// ReflectCandidate calls an arbitrary Go function, converting each input
// record to the matching parameter type
type ReflectCandidate struct {
	fn      reflect.Value
	typ     reflect.Type
	withCtx bool // first parameter is a context.Context
	withErr bool // last result is an error
}

// Reflect wraps fn, which must be a function. A leading context.Context
// parameter receives the case context; a trailing error result is reported
// as the invocation error; two or more remaining results form a Tuple.
func Reflect(fn any) (*ReflectCandidate, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("candidate must be a function, got %T", fn)
	}

	t := v.Type()
	return &ReflectCandidate{
		fn:      v,
		typ:     t,
		withCtx: t.NumIn() > 0 && t.In(0) == contextType,
		withErr: t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType,
	}, nil
}

// MustReflect is like Reflect but panics if fn is not a function
func MustReflect(fn any) *ReflectCandidate {
	c, err := Reflect(fn)
	if err != nil {
		panic(err)
	}
	return c
}

// Arity returns the number of record arguments the function takes, and
// whether it accepts more through a variadic parameter
func (c *ReflectCandidate) Arity() (int, bool) {
	n := c.typ.NumIn()
	if c.withCtx {
		n--
	}
	if c.typ.IsVariadic() {
		return n - 1, true
	}
	return n, false
}

// Call converts args, calls the function and collects its results.
// A panic inside the function is returned as an error.
func (c *ReflectCandidate) Call(ctx context.Context, args []domain.Record) (result any, err error) {
	in, err := c.arguments(ctx, args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	out := c.fn.Call(in)

	if c.withErr {
		if e := out[len(out)-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
		out = out[:len(out)-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		tuple := make(Tuple, len(out))
		for i, o := range out {
			tuple[i] = o.Interface()
		}
		return tuple, nil
	}
}

func (c *ReflectCandidate) arguments(ctx context.Context, args []domain.Record) ([]reflect.Value, error) {
	fixed, variadic := c.Arity()
	if len(args) < fixed || (!variadic && len(args) > fixed) {
		want := fmt.Sprintf("%d", fixed)
		if variadic {
			want = fmt.Sprintf("at least %d", fixed)
		}
		return nil, fmt.Errorf("expected %s argument(s), got %d", want, len(args))
	}

	in := make([]reflect.Value, 0, len(args)+1)
	offset := 0
	if c.withCtx {
		in = append(in, reflect.ValueOf(ctx))
		offset = 1
	}

	for i, arg := range args {
		var paramType reflect.Type
		if variadic && i >= fixed {
			paramType = c.typ.In(c.typ.NumIn() - 1).Elem()
		} else {
			paramType = c.typ.In(i + offset)
		}

		v, err := convertRecord(arg, paramType)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		in = append(in, v)
	}
	return in, nil
}

// convertRecord turns a decoded JSON value into a value of type t
func convertRecord(record domain.Record, t reflect.Type) (reflect.Value, error) {
	if record == nil {
		return reflect.Zero(t), nil
	}
	if v := reflect.ValueOf(record); v.Type().AssignableTo(t) {
		return v, nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(t)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s", data, t)
		}
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}
