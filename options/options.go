// Package options parses the "--key value" tokens accepted by the
// field-style content commands.
package options

import (
	"sort"
	"strconv"
	"strings"

	"episolve/apperr"
)

// Options holds parsed flags in the order they were first seen, plus the
// positional arguments.
type Options struct {
	values      map[string]string
	keys        []string
	Positionals []string
}

// Parse walks tokens left to right. A "--key" followed by a non-flag
// token takes it as its value; a "--key" followed by another flag or by
// nothing is recorded as "true". Later occurrences overwrite earlier ones.
func Parse(tokens []string) *Options {
	o := &Options{values: map[string]string{}}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isFlag(tok) {
			o.Positionals = append(o.Positionals, tok)
			continue
		}

		key := strings.TrimPrefix(tok, "--")
		value := "true"
		if i+1 < len(tokens) && !isFlag(tokens[i+1]) {
			value = tokens[i+1]
			i++
		}
		o.Set(key, value)
	}
	return o
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "--") && len(tok) > 2
}

func (o *Options) Set(key, value string) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Options) Get(key string) string {
	return o.values[key]
}

func (o *Options) GetOr(key, fallback string) string {
	if v, ok := o.values[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Bool reports whether key was given as exactly "true".
func (o *Options) Bool(key string) bool {
	return o.values[key] == "true"
}

// Int parses key as an integer. A missing key yields 0 and no error.
func (o *Options) Int(key string) (int, error) {
	v, ok := o.values[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, apperr.Usage("--%s must be a number, got %q", key, v)
	}
	return n, nil
}

// List splits a comma-separated value, dropping empty entries.
func (o *Options) List(key string) []string {
	var out []string
	for _, part := range strings.Split(o.values[key], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Keys returns the flag names in first-seen order.
func (o *Options) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len is the number of distinct flags.
func (o *Options) Len() int {
	return len(o.keys)
}

// Require returns a usage error naming every missing or empty key.
func (o *Options) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if o.values[k] == "" {
			missing = append(missing, "--"+k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperr.Usage("missing required options: %s", strings.Join(missing, ", "))
}

// Positional returns the i-th positional argument or "".
func (o *Options) Positional(i int) string {
	if i < len(o.Positionals) {
		return o.Positionals[i]
	}
	return ""
}
