package statusbar

import "slate/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: tasks  m: move  /: filter  v: select  ?: help  q: quit"
	case types.ModeGoto:
		return "g: top  e: end  h: first col  l: last col  Esc: cancel"
	case types.ModeSelect:
		return "Space: toggle  V: extend  a: column  A: visible  m: move  d: archive  Esc: cancel"
	case types.ModeSearch:
		return "Type to filter  Enter: keep  Esc: clear"
	default:
		return ""
	}
}
