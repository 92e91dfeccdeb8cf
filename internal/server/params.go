package server

import (
	"fmt"
	"strings"

	"github.com/mj1618/uimap/internal/platform"
)

// JSON numbers arrive as float64.

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// connectParams reads the window selector. A title or path that is given
// but blank is an error rather than a missing selector.
func connectParams(params map[string]interface{}) (platform.ConnectOptions, error) {
	opts := platform.ConnectOptions{
		PID:   intParam(params, "pid", 0),
		Title: stringParam(params, "title", ""),
		Path:  stringParam(params, "path", ""),
	}
	for _, key := range []string{"title", "path"} {
		if v, ok := params[key].(string); ok && strings.TrimSpace(v) == "" {
			return platform.ConnectOptions{}, fmt.Errorf("%s cannot be blank", key)
		}
	}
	if opts.PID < 0 {
		return platform.ConnectOptions{}, fmt.Errorf("invalid pid %d: must be positive", opts.PID)
	}
	if opts.IsZero() {
		return platform.ConnectOptions{}, fmt.Errorf("specify title, pid, or path")
	}
	return opts, nil
}
