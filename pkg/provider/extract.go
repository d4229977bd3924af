package provider

import (
	"strings"

	"github.com/antonholmquist/jason"
)

// StringAt returns an Extractor reading the string at the key path.
func StringAt(keys ...string) Extractor {
	return func(body *jason.Object) string {
		s, err := body.GetString(keys...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
}

// FirstStringAt returns an Extractor reading keys from the first element of the array at arrayKey.
func FirstStringAt(arrayKey string, keys ...string) Extractor {
	return func(body *jason.Object) string {
		first := firstElement(body, arrayKey)
		if first == nil {
			return ""
		}
		return StringAt(keys...)(first)
	}
}

// FirstStringTemplate reads keys from the first element of arrayKey and
// substitutes the value for "{}" in tmpl. An empty value yields "".
func FirstStringTemplate(tmpl, arrayKey string, keys ...string) Extractor {
	inner := FirstStringAt(arrayKey, keys...)
	return func(body *jason.Object) string {
		v := inner(body)
		if v == "" {
			return ""
		}
		return strings.Replace(tmpl, "{}", v, 1)
	}
}

func firstElement(body *jason.Object, arrayKey string) *jason.Object {
	items, err := body.GetObjectArray(arrayKey)
	if err != nil || len(items) == 0 {
		return nil
	}
	return items[0]
}
