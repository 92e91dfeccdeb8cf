package model

import "strings"

// FilterControls returns the entries whose control type is in types (case-insensitive)
// and whose name, class or automation id contains text (case-insensitive).
// Empty types or text disable that filter. Indices are preserved, so a
// filtered listing still lines up with the annotated screenshot.
func FilterControls(controls []ControlInfo, types []string, text string) []ControlInfo {
	if len(types) == 0 && text == "" {
		return controls
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			typeSet[strings.ToLower(t)] = true
		}
	}
	textLower := strings.ToLower(text)

	result := make([]ControlInfo, 0, len(controls))
	for _, c := range controls {
		if len(typeSet) > 0 && !typeSet[strings.ToLower(c.ControlType)] {
			continue
		}
		if textLower != "" && !textMatchesControl(c, textLower) {
			continue
		}
		result = append(result, c)
	}
	return result
}

func textMatchesControl(c ControlInfo, textLower string) bool {
	return strings.Contains(strings.ToLower(c.Name), textLower) ||
		strings.Contains(strings.ToLower(c.ClassName), textLower) ||
		strings.Contains(strings.ToLower(c.AutomationID), textLower)
}

// MaxDepth returns the deepest depth present in controls, or -1 if empty.
func MaxDepth(controls []ControlInfo) int {
	max := -1
	for _, c := range controls {
		if c.Depth > max {
			max = c.Depth
		}
	}
	return max
}
