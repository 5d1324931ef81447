package core

// Color is the foreground color of a screen cell. Values map onto the
// ANSI 256-color palette; ColorDefault leaves the terminal's own color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange // fire power, fireballs
	ColorGray   // hints, locked goal flag
	ColorBrown  // ground

	NumColors
)

var ansiCodes = [NumColors]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
	ColorBrown:         "130",
}

// ANSI returns the 256-color code for c, or "" for ColorDefault and
// values outside the palette.
func (c Color) ANSI() string {
	if c >= NumColors {
		return ""
	}
	return ansiCodes[c]
}
