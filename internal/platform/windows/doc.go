// Package windows provides Windows platform support using UI Automation (COM)
// and the Win32 window APIs.
package windows
