package content

import (
	"fmt"
	"strings"
)

// Icon identifies one of the skill badge icons the site can render.
type Icon string

// Supported icons.
const (
	IconReact      Icon = "FaReact"
	IconJavaScript Icon = "SiJavascript"
	IconTailwind   Icon = "SiTailwindcss"
	IconHTML5      Icon = "FaHtml5"
	IconCSS3       Icon = "FaCss3Alt"
	IconNodeJS     Icon = "FaNodeJs"
)

var allIcons = []Icon{IconReact, IconJavaScript, IconTailwind, IconHTML5, IconCSS3, IconNodeJS}

// AllIcons returns the supported icons in display order.
func AllIcons() []Icon {
	out := make([]Icon, len(allIcons))
	copy(out, allIcons)
	return out
}

// IsValid reports whether the icon is one of the supported identifiers.
func (i Icon) IsValid() bool {
	for _, known := range allIcons {
		if i == known {
			return true
		}
	}
	return false
}

// ParseIcon validates an icon identifier. Matching is exact: the stored
// value is the identifier the frontend looks up.
func ParseIcon(s string) (Icon, error) {
	icon := Icon(s)
	if !icon.IsValid() {
		names := make([]string, len(allIcons))
		for i, known := range allIcons {
			names[i] = string(known)
		}
		return "", fmt.Errorf("unsupported icon %q (allowed: %s)", s, strings.Join(names, ", "))
	}
	return icon, nil
}
