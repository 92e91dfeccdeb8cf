package model

import "errors"

// ControlInfo is a control with its traversal position instead of children.
type ControlInfo struct {
	Index        int    `yaml:"i"                       json:"i"`
	Depth        int    `yaml:"depth"                   json:"depth"`
	Name         string `yaml:"name,omitempty"          json:"name,omitempty"`
	ClassName    string `yaml:"class,omitempty"         json:"class,omitempty"`
	ControlType  string `yaml:"type"                    json:"type"`
	AutomationID string `yaml:"automation_id,omitempty" json:"automation_id,omitempty"`
	Rect         Rect   `yaml:"rect"                    json:"rect"`
	Enabled      bool   `yaml:"enabled"                 json:"enabled"`
	Offscreen    bool   `yaml:"offscreen,omitempty"     json:"offscreen,omitempty"`
	Path         string `yaml:"p,omitempty"             json:"p,omitempty"`
}

// SkipChildren can be returned from a WalkFunc to skip the subtree of the
// control being visited.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every control reached by Walk.
type WalkFunc func(c *Control, depth int) error

// Walk visits root and its descendants depth-first in pre-order.
func Walk(root *Control, fn WalkFunc) error {
	return walk(root, 0, fn)
}

func walk(c *Control, depth int, fn WalkFunc) error {
	if err := fn(c, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for i := range c.Children {
		if err := walk(&c.Children[i], depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Flatten converts a control tree into a pre-order list. The root gets
// index 1 and depth 0. Each entry carries a path of control types joined
// with " > " showing its location in the tree.
func Flatten(root Control) []ControlInfo {
	result := make([]ControlInfo, 0, root.Count())
	flattenRecursive(root, 0, "", &result)
	return result
}

func flattenRecursive(c Control, depth int, parentPath string, result *[]ControlInfo) {
	currentPath := c.ControlType
	if parentPath != "" {
		currentPath = parentPath + " > " + c.ControlType
	}

	*result = append(*result, ControlInfo{
		Index:        len(*result) + 1,
		Depth:        depth,
		Name:         c.Name,
		ClassName:    c.ClassName,
		ControlType:  c.ControlType,
		AutomationID: c.AutomationID,
		Rect:         c.Rect,
		Enabled:      c.Enabled,
		Offscreen:    c.Offscreen,
		Path:         currentPath,
	})

	for _, child := range c.Children {
		flattenRecursive(child, depth+1, currentPath, result)
	}
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
