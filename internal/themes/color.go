package themes

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// parseColor recognises any CSS colour with real channels: hex, named
// colours and the rgb/hsl/hwb functions. Alpha channels are dropped.
// transparent and currentColor carry no usable channels and are rejected,
// as are bare hex digits ("600" is a font weight, not #660000).
func parseColor(value string) (csscolorparser.Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "transparent" || v == "currentcolor" || !colorSyntax(v) {
		return csscolorparser.Color{}, false
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return csscolorparser.Color{}, false
	}
	return c, true
}

// rgbChannels renders a colour as "r, g, b".
func rgbChannels(c csscolorparser.Color) string {
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}

// colorSyntax reports whether v is shaped like a hex colour, a colour
// function or a colour keyword. Bare hex digits are none of these.
func colorSyntax(v string) bool {
	switch {
	case v == "":
		return false
	case strings.HasPrefix(v, "#"), strings.HasSuffix(v, ")"):
		return true
	case strings.Trim(v, "0123456789abcdef") == "":
		return false
	}
	return strings.Trim(v, "abcdefghijklmnopqrstuvwxyz") == ""
}
