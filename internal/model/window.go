package model

// Window represents a top-level application window.
type Window struct {
	App       string  `yaml:"app"             json:"app"`
	PID       int     `yaml:"pid"             json:"pid"`
	Title     string  `yaml:"title"           json:"title"`
	ClassName string  `yaml:"class"           json:"class"`
	Handle    uintptr `yaml:"handle"          json:"handle"`
	Rect      Rect    `yaml:"rect"            json:"rect"`
	Focused   bool    `yaml:"focused,omitempty" json:"focused,omitempty"`
}
