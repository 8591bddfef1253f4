package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidColor indicates a color spec that is neither a W3C color
// name nor a hex value.
var ErrInvalidColor = errors.New("console: invalid color spec")

// ParseColor resolves a user-supplied color spec: a W3C color name
// ("green", "rebeccapurple") or a hex value ("#0f0", "#00ff00").
// Unknown specs fail; the color command depends on that to reject bad
// input before persisting it.
func ParseColor(spec string) (tcell.Color, error) {
	if spec == "" {
		return tcell.ColorDefault, fmt.Errorf("%w: empty spec", ErrInvalidColor)
	}

	if strings.HasPrefix(spec, "#") {
		return parseHexColor(spec)
	}

	if c, ok := tcell.ColorNames[strings.ToLower(spec)]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("%w: %s", ErrInvalidColor, spec)
}

func parseHexColor(spec string) (tcell.Color, error) {
	hex := spec[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return tcell.ColorDefault, fmt.Errorf("%w: %s", ErrInvalidColor, spec)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("%w: %s", ErrInvalidColor, spec)
	}
	return tcell.NewHexColor(int32(v)), nil
}
