package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/fpstore/registry"
)

// parseSpec parses "key=value" pairs separated by commas. Locators may not
// contain commas; use --config for those.
func parseSpec(s string) (registry.Spec, error) {
	var spec registry.Spec
	for _, field := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return registry.Spec{}, fmt.Errorf("doc spec %q: %q is not key=value", s, field)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "name":
			spec.Name = value
		case "kind":
			spec.Kind = value
		case "nbits":
			n, err := strconv.Atoi(value)
			if err != nil {
				return registry.Spec{}, fmt.Errorf("doc spec %q: nbits: %w", s, err)
			}
			spec.NBits = n
		case "source":
			spec.Source = value
		case "locator":
			spec.Locator = value
		case "checksum":
			spec.Checksum = value
		default:
			return registry.Spec{}, fmt.Errorf("doc spec %q: unknown key %q", s, key)
		}
	}
	return spec, nil
}
