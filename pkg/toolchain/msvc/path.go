package msvc

import "strings"

// join joins path elements with the Windows separator. Elements are used
// verbatim except for separators at the boundaries, which are collapsed.
func join(elem ...string) string {
	var b strings.Builder

	for _, e := range elem {
		if e == "" {
			continue
		}

		if b.Len() > 0 {
			if s := b.String(); !strings.HasSuffix(s, `\`) && !strings.HasSuffix(s, "/") {
				b.WriteByte('\\')
			}
			e = strings.TrimLeft(e, `\/`)
		}

		b.WriteString(e)
	}

	return b.String()
}
