package premiumize

import (
	"net/url"
	"strconv"
)

const apiKeyParam = "apikey"

// params builds the flat query of an operation. Optional values are
// pointers; a nil pointer leaves the key out of the query entirely.
type params url.Values

func newParams() params {
	return params{}
}

func (p params) set(key, value string) params {
	url.Values(p).Set(key, value)
	return p
}

func (p params) optional(key string, value *string) params {
	if value != nil {
		p.set(key, *value)
	}
	return p
}

func (p params) optionalBool(key string, value *bool) params {
	if value != nil {
		p.set(key, strconv.FormatBool(*value))
	}
	return p
}

// list adds values under key[]. An empty list adds nothing.
func (p params) list(key string, values []string) params {
	for _, v := range values {
		url.Values(p).Add(key+"[]", v)
	}
	return p
}

func (p params) values() url.Values {
	return url.Values(p)
}
