package model

// Control is a node of an application's UI automation tree.
type Control struct {
	Name         string    `yaml:"name,omitempty"          json:"name,omitempty"`
	ClassName    string    `yaml:"class,omitempty"         json:"class,omitempty"`
	ControlType  string    `yaml:"type"                    json:"type"`
	AutomationID string    `yaml:"automation_id,omitempty" json:"automation_id,omitempty"`
	Rect         Rect      `yaml:"rect"                    json:"rect"`
	Enabled      bool      `yaml:"enabled"                 json:"enabled"`
	Offscreen    bool      `yaml:"offscreen,omitempty"     json:"offscreen,omitempty"`
	Children     []Control `yaml:"children,omitempty"      json:"children,omitempty"`
}

// Count returns the number of controls in the subtree rooted at c, c included.
func (c *Control) Count() int {
	n := 0
	Walk(c, func(*Control, int) error {
		n++
		return nil
	})
	return n
}
