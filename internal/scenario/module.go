// Package scenario loads, validates and exports game configuration suites.
package scenario

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dop251/goja"
)

const evalTimeout = 2 * time.Second

var modulePattern = regexp.MustCompile(`export\s+const\s+gameConfig\s*(?::[^=]*)?=\s*`)

// extractLiteral returns the object literal assigned to gameConfig, from
// its first '{' to the last '}' in the text.
func extractLiteral(text string) (string, bool) {
	loc := modulePattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	start := strings.Index(rest, "{")
	end := strings.LastIndex(rest, "}")
	if start < 0 || end < start {
		return "", false
	}
	return rest[start : end+1], true
}

// evalLiteral evaluates a JavaScript object literal in a fresh sandboxed
// runtime and returns it as JSON. Unquoted keys, single quotes, comments
// and trailing commas are accepted.
func evalLiteral(literal string) (string, error) {
	vm := goja.New()
	vm.Set("require", goja.Undefined())
	vm.Set("eval", goja.Undefined())
	vm.Set("Function", goja.Undefined())

	timer := time.AfterFunc(evalTimeout, func() {
		vm.Interrupt("config evaluation timeout")
	})
	defer timer.Stop()

	value, err := vm.RunString("JSON.stringify((" + literal + "))")
	if err != nil {
		return "", fmt.Errorf("failed to evaluate config object: %w", err)
	}
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return "", fmt.Errorf("config object evaluated to nothing")
	}
	return value.String(), nil
}
