package plan

import "strings"

// shellQuote wraps the argument in single quotes when it contains characters
// a POSIX shell would interpret. Embedded single quotes use the '\'' escape.
func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if isShellSafe(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func isShellSafe(arg string) bool {
	for _, r := range arg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.', r == '/', r == ':', r == ',', r == '+', r == '=', r == '@', r == '%':
		default:
			return false
		}
	}
	return true
}
