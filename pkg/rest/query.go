package rest

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// QueryFromMap converts a JSON-like map to query parameters, any value type
// is cast to string. A slice value "k" is expanded to "k[0]", "k[1]", ...
// and a string map value to "k[name]".
func QueryFromMap(in map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for k, v := range in {
		ty := reflect.TypeOf(v)
		switch {
		case ty != nil && ty.Kind() == reflect.Slice:
			value := reflect.ValueOf(v)
			for i := 0; i < value.Len(); i++ {
				item, err := cast.ToStringE(value.Index(i).Interface())
				if err != nil {
					return nil, fmt.Errorf(`cannot cast query parameter "%s[%d]" of type %T to string: %w`, k, i, v, err)
				}
				out[fmt.Sprintf("%s[%d]", k, i)] = item
			}
		case ty != nil && ty.Kind() == reflect.Map && ty.Key().Kind() == reflect.String:
			value := reflect.ValueOf(v)
			for _, key := range value.MapKeys() {
				item, err := cast.ToStringE(value.MapIndex(key).Interface())
				if err != nil {
					return nil, fmt.Errorf(`cannot cast query parameter "%s[%s]" of type %T to string: %w`, k, key.String(), v, err)
				}
				out[fmt.Sprintf("%s[%s]", k, key.String())] = item
			}
		default:
			item, err := cast.ToStringE(v)
			if err != nil {
				return nil, fmt.Errorf(`cannot cast query parameter "%s" of type %T to string: %w`, k, v, err)
			}
			out[k] = item
		}
	}
	return out, nil
}
