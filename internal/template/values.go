package template

import "fmt"

// Values holds the user-supplied value of every placeholder.
// It is a fixed-size value type: copies are independent snapshots and the
// key set cannot grow or shrink. The zero value has every field empty.
type Values struct {
	v [keyCount]string
}

// ValuesFromMap builds Values from a name → value map.
// Names are resolved with ParseKey; an unknown name yields ErrUnknownKey.
func ValuesFromMap(m map[string]string) (Values, error) {
	var vals Values
	for name, value := range m {
		k, err := ParseKey(name)
		if err != nil {
			return Values{}, err
		}
		vals.v[k] = value
	}
	return vals, nil
}

// Get returns the value of k, or "" for an invalid key.
func (v Values) Get(k Key) string {
	if !k.Valid() {
		return ""
	}
	return v.v[k]
}

// Set stores value for k. It panics on an invalid key since keys can only
// be produced from the constants or ParseKey.
func (v *Values) Set(k Key, value string) {
	if !k.Valid() {
		panic(fmt.Sprintf("template.Values.Set: invalid key %d", int(k)))
	}
	v.v[k] = value
}

// With returns a copy of v with k set to value.
func (v Values) With(k Key, value string) Values {
	v.Set(k, value)
	return v
}

// Merge returns a copy of v where every non-empty value of other wins.
func (v Values) Merge(other Values) Values {
	for i, s := range other.v {
		if s != "" {
			v.v[i] = s
		}
	}
	return v
}

// Filled returns the keys with a non-empty value, in canonical order.
func (v Values) Filled() []Key {
	var keys []Key
	for i, s := range v.v {
		if s != "" {
			keys = append(keys, Key(i))
		}
	}
	return keys
}

// Map returns the values keyed by token name. Empty values are included.
func (v Values) Map() map[string]string {
	m := make(map[string]string, keyCount)
	for i, s := range v.v {
		m[keyNames[i]] = s
	}
	return m
}
