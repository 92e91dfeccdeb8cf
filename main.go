package main

import (
	"github.com/mj1618/uimap/cmd"

	// Registers the Windows UI Automation backend; builds to nothing elsewhere.
	_ "github.com/mj1618/uimap/internal/platform/windows"
)

func main() {
	cmd.Execute()
}
