package config

import "dario.cat/mergo"

// mergeOverride merges src into dst, with non-zero fields in src
// overriding dst's defaults.
func mergeOverride(dst, src *Config) error {
	return mergo.Merge(dst, src, mergo.WithOverride)
}
