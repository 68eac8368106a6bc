package confloader

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider is a koanf provider that loads configuration from a map.
// Dotted keys are expanded into nested maps.
type mapProvider map[string]any

// ReadBytes returns an error as map provider doesn't support byte serialization.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration map.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// Flatten returns the koanf-tagged fields of v (a struct or pointer to
// struct) as a map of dotted keys. Fields without a koanf tag are skipped.
func Flatten(v any) map[string]any {
	out := make(map[string]any)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return out
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		flatten(rv, "", out)
	}
	return out
}

func flatten(rv reflect.Value, prefix string, out map[string]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if tag == "" || tag == "-" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		fv := rv.Field(i)
		if f.Type.Kind() == reflect.Struct && f.Type != durationType {
			flatten(fv, key, out)
			continue
		}
		out[key] = fv.Interface()
	}
}
