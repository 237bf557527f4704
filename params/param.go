package params

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Param is an optional query parameter value. The zero value is unset and
// never serialized; a set zero or empty value is serialized as-is.
type Param[T any] struct {
	value T
	set   bool
}

// Set returns a Param holding v
func Set[T any](v T) Param[T] {
	return Param[T]{value: v, set: true}
}

// IsSet reports whether a value was provided
func (p Param[T]) IsSet() bool {
	return p.set
}

// Get returns the value and whether it was provided
func (p Param[T]) Get() (T, bool) {
	return p.value, p.set
}

// IsZero reports whether the parameter is unset. go-querystring uses it for omitempty.
func (p Param[T]) IsZero() bool {
	return !p.set
}

// String returns the serialized value, or "" when unset
func (p Param[T]) String() string {
	if !p.set {
		return ""
	}
	return format(p.value)
}

// EncodeValues implements query.Encoder
func (p Param[T]) EncodeValues(key string, v *url.Values) error {
	if p.set {
		v.Set(key, format(p.value))
	}
	return nil
}

// pair adds name=value to dst when the parameter is set
func (p Param[T]) pair(dst url.Values, name string) {
	if p.set {
		dst.Set(name, format(p.value))
	}
}

// format renders a parameter value in its canonical wire form
func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case Date:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
