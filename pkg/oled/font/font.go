// Package font holds the 8x8 bitmap font baked into the display ROM.
package font

// Glyph is eight row bytes, most significant bit leftmost.  The panel is
// mounted with pages running across, so each row byte lands in display
// RAM as one column of eight pixels.
type Glyph [8]byte

// Font maps every character code to a glyph.  Codes without artwork are
// blank.
type Font [256]Glyph

// New builds the font from its artwork.  Printable ASCII is populated;
// everything else renders as a blank cell.
func New() *Font {
	var f Font
	for code, rows := range art {
		var g Glyph
		for r, row := range rows {
			var b byte
			for c := 0; c < 8 && c < len(row); c++ {
				if row[c] == '#' {
					b |= 0x80 >> c
				}
			}
			g[r] = b
		}
		f[code] = g
	}
	return &f
}

// Glyph returns the artwork for code.
func (f *Font) Glyph(code byte) Glyph {
	return f[code]
}

// Glyphs are 5x7 in an 8x8 cell, leaving a blank descender row and
// inter-character gap.
var art = map[byte][8]string{
	'!': {
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"........",
		"..#.....",
		"........",
	},
	'"': {
		".#.#....",
		".#.#....",
		".#.#....",
		"........",
		"........",
		"........",
		"........",
		"........",
	},
	'#': {
		".#.#....",
		".#.#....",
		"#####...",
		".#.#....",
		"#####...",
		".#.#....",
		".#.#....",
		"........",
	},
	'$': {
		"..#.....",
		".####...",
		"#.......",
		".###....",
		"....#...",
		"####....",
		"..#.....",
		"........",
	},
	'%': {
		"##......",
		"##..#...",
		"...#....",
		"..#.....",
		".#......",
		"#..##...",
		"...##...",
		"........",
	},
	'&': {
		".##.....",
		"#..#....",
		"#.#.....",
		".#......",
		"#.#.#...",
		"#..#....",
		".##.#...",
		"........",
	},
	'\'': {
		"..#.....",
		"..#.....",
		"..#.....",
		"........",
		"........",
		"........",
		"........",
		"........",
	},
	'(': {
		"...#....",
		"..#.....",
		".#......",
		".#......",
		".#......",
		"..#.....",
		"...#....",
		"........",
	},
	')': {
		".#......",
		"..#.....",
		"...#....",
		"...#....",
		"...#....",
		"..#.....",
		".#......",
		"........",
	},
	'*': {
		"........",
		"..#.....",
		"#.#.#...",
		".###....",
		"#.#.#...",
		"..#.....",
		"........",
		"........",
	},
	'+': {
		"........",
		"..#.....",
		"..#.....",
		"#####...",
		"..#.....",
		"..#.....",
		"........",
		"........",
	},
	',': {
		"........",
		"........",
		"........",
		"........",
		"........",
		"..#.....",
		"..#.....",
		".#......",
	},
	'-': {
		"........",
		"........",
		"........",
		"#####...",
		"........",
		"........",
		"........",
		"........",
	},
	'.': {
		"........",
		"........",
		"........",
		"........",
		"........",
		".##.....",
		".##.....",
		"........",
	},
	'/': {
		"....#...",
		"....#...",
		"...#....",
		"..#.....",
		".#......",
		"#.......",
		"#.......",
		"........",
	},
	'0': {
		".###....",
		"#...#...",
		"#..##...",
		"#.#.#...",
		"##..#...",
		"#...#...",
		".###....",
		"........",
	},
	'1': {
		"..#.....",
		".##.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		".###....",
		"........",
	},
	'2': {
		".###....",
		"#...#...",
		"....#...",
		"...#....",
		"..#.....",
		".#......",
		"#####...",
		"........",
	},
	'3': {
		"#####...",
		"...#....",
		"..#.....",
		"...#....",
		"....#...",
		"#...#...",
		".###....",
		"........",
	},
	'4': {
		"...#....",
		"..##....",
		".#.#....",
		"#..#....",
		"#####...",
		"...#....",
		"...#....",
		"........",
	},
	'5': {
		"#####...",
		"#.......",
		"####....",
		"....#...",
		"....#...",
		"#...#...",
		".###....",
		"........",
	},
	'6': {
		"..##....",
		".#......",
		"#.......",
		"####....",
		"#...#...",
		"#...#...",
		".###....",
		"........",
	},
	'7': {
		"#####...",
		"....#...",
		"...#....",
		"..#.....",
		".#......",
		".#......",
		".#......",
		"........",
	},
	'8': {
		".###....",
		"#...#...",
		"#...#...",
		".###....",
		"#...#...",
		"#...#...",
		".###....",
		"........",
	},
	'9': {
		".###....",
		"#...#...",
		"#...#...",
		".####...",
		"....#...",
		"...#....",
		".##.....",
		"........",
	},
	':': {
		"........",
		".##.....",
		".##.....",
		"........",
		".##.....",
		".##.....",
		"........",
		"........",
	},
	';': {
		"........",
		".##.....",
		".##.....",
		"........",
		".##.....",
		"..#.....",
		".#......",
		"........",
	},
	'<': {
		"...#....",
		"..#.....",
		".#......",
		"#.......",
		".#......",
		"..#.....",
		"...#....",
		"........",
	},
	'=': {
		"........",
		"........",
		"#####...",
		"........",
		"#####...",
		"........",
		"........",
		"........",
	},
	'>': {
		".#......",
		"..#.....",
		"...#....",
		"....#...",
		"...#....",
		"..#.....",
		".#......",
		"........",
	},
	'?': {
		".###....",
		"#...#...",
		"....#...",
		"...#....",
		"..#.....",
		"........",
		"..#.....",
		"........",
	},
	'@': {
		".###....",
		"#...#...",
		"#.###...",
		"#.#.#...",
		"#.###...",
		"#.......",
		".###....",
		"........",
	},
	'A': {
		"..#.....",
		".#.#....",
		"#...#...",
		"#...#...",
		"#####...",
		"#...#...",
		"#...#...",
		"........",
	},
	'B': {
		"####....",
		"#...#...",
		"#...#...",
		"####....",
		"#...#...",
		"#...#...",
		"####....",
		"........",
	},
	'C': {
		".###....",
		"#...#...",
		"#.......",
		"#.......",
		"#.......",
		"#...#...",
		".###....",
		"........",
	},
	'D': {
		"####....",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"####....",
		"........",
	},
	'E': {
		"#####...",
		"#.......",
		"#.......",
		"####....",
		"#.......",
		"#.......",
		"#####...",
		"........",
	},
	'F': {
		"#####...",
		"#.......",
		"#.......",
		"####....",
		"#.......",
		"#.......",
		"#.......",
		"........",
	},
	'G': {
		".###....",
		"#...#...",
		"#.......",
		"#.##....",
		"#...#...",
		"#...#...",
		".####...",
		"........",
	},
	'H': {
		"#...#...",
		"#...#...",
		"#...#...",
		"#####...",
		"#...#...",
		"#...#...",
		"#...#...",
		"........",
	},
	'I': {
		".###....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		".###....",
		"........",
	},
	'J': {
		"..###...",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		"#..#....",
		".##.....",
		"........",
	},
	'K': {
		"#...#...",
		"#..#....",
		"#.#.....",
		"##......",
		"#.#.....",
		"#..#....",
		"#...#...",
		"........",
	},
	'L': {
		"#.......",
		"#.......",
		"#.......",
		"#.......",
		"#.......",
		"#.......",
		"#####...",
		"........",
	},
	'M': {
		"#...#...",
		"##.##...",
		"#.#.#...",
		"#.#.#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"........",
	},
	'N': {
		"#...#...",
		"##..#...",
		"#.#.#...",
		"#..##...",
		"#...#...",
		"#...#...",
		"#...#...",
		"........",
	},
	'O': {
		".###....",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		".###....",
		"........",
	},
	'P': {
		"####....",
		"#...#...",
		"#...#...",
		"####....",
		"#.......",
		"#.......",
		"#.......",
		"........",
	},
	'Q': {
		".###....",
		"#...#...",
		"#...#...",
		"#...#...",
		"#.#.#...",
		"#..#....",
		".##.#...",
		"........",
	},
	'R': {
		"####....",
		"#...#...",
		"#...#...",
		"####....",
		"#.#.....",
		"#..#....",
		"#...#...",
		"........",
	},
	'S': {
		".####...",
		"#.......",
		"#.......",
		".###....",
		"....#...",
		"....#...",
		"####....",
		"........",
	},
	'T': {
		"#####...",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"........",
	},
	'U': {
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		".###....",
		"........",
	},
	'V': {
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		".#.#....",
		"..#.....",
		"........",
	},
	'W': {
		"#...#...",
		"#...#...",
		"#...#...",
		"#.#.#...",
		"#.#.#...",
		"##.##...",
		"#...#...",
		"........",
	},
	'X': {
		"#...#...",
		"#...#...",
		".#.#....",
		"..#.....",
		".#.#....",
		"#...#...",
		"#...#...",
		"........",
	},
	'Y': {
		"#...#...",
		"#...#...",
		".#.#....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"........",
	},
	'Z': {
		"#####...",
		"....#...",
		"...#....",
		"..#.....",
		".#......",
		"#.......",
		"#####...",
		"........",
	},
	'[': {
		".###....",
		".#......",
		".#......",
		".#......",
		".#......",
		".#......",
		".###....",
		"........",
	},
	'\\': {
		"#.......",
		"#.......",
		".#......",
		"..#.....",
		"...#....",
		"....#...",
		"....#...",
		"........",
	},
	']': {
		".###....",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		".###....",
		"........",
	},
	'^': {
		"..#.....",
		".#.#....",
		"#...#...",
		"........",
		"........",
		"........",
		"........",
		"........",
	},
	'_': {
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"#####...",
	},
	'`': {
		".#......",
		"..#.....",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	},
	'a': {
		"........",
		"........",
		".###....",
		"....#...",
		".####...",
		"#...#...",
		".####...",
		"........",
	},
	'b': {
		"#.......",
		"#.......",
		"####....",
		"#...#...",
		"#...#...",
		"#...#...",
		"####....",
		"........",
	},
	'c': {
		"........",
		"........",
		".###....",
		"#.......",
		"#.......",
		"#...#...",
		".###....",
		"........",
	},
	'd': {
		"....#...",
		"....#...",
		".####...",
		"#...#...",
		"#...#...",
		"#...#...",
		".####...",
		"........",
	},
	'e': {
		"........",
		"........",
		".###....",
		"#...#...",
		"#####...",
		"#.......",
		".###....",
		"........",
	},
	'f': {
		"..##....",
		".#......",
		"###.....",
		".#......",
		".#......",
		".#......",
		".#......",
		"........",
	},
	'g': {
		"........",
		"........",
		".####...",
		"#...#...",
		"#...#...",
		".####...",
		"....#...",
		".###....",
	},
	'h': {
		"#.......",
		"#.......",
		"####....",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"........",
	},
	'i': {
		"..#.....",
		"........",
		".##.....",
		"..#.....",
		"..#.....",
		"..#.....",
		".###....",
		"........",
	},
	'j': {
		"...#....",
		"........",
		"..##....",
		"...#....",
		"...#....",
		"...#....",
		"#..#....",
		".##.....",
	},
	'k': {
		"#.......",
		"#.......",
		"#..#....",
		"#.#.....",
		"##......",
		"#.#.....",
		"#..#....",
		"........",
	},
	'l': {
		".##.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		".###....",
		"........",
	},
	'm': {
		"........",
		"........",
		"##.#....",
		"#.#.#...",
		"#.#.#...",
		"#.#.#...",
		"#.#.#...",
		"........",
	},
	'n': {
		"........",
		"........",
		"####....",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		"........",
	},
	'o': {
		"........",
		"........",
		".###....",
		"#...#...",
		"#...#...",
		"#...#...",
		".###....",
		"........",
	},
	'p': {
		"........",
		"........",
		"####....",
		"#...#...",
		"#...#...",
		"####....",
		"#.......",
		"#.......",
	},
	'q': {
		"........",
		"........",
		".####...",
		"#...#...",
		"#...#...",
		".####...",
		"....#...",
		"....#...",
	},
	'r': {
		"........",
		"........",
		"#.##....",
		"##......",
		"#.......",
		"#.......",
		"#.......",
		"........",
	},
	's': {
		"........",
		"........",
		".####...",
		"#.......",
		".###....",
		"....#...",
		"####....",
		"........",
	},
	't': {
		".#......",
		".#......",
		"###.....",
		".#......",
		".#......",
		".#..#...",
		"..##....",
		"........",
	},
	'u': {
		"........",
		"........",
		"#...#...",
		"#...#...",
		"#...#...",
		"#...#...",
		".####...",
		"........",
	},
	'v': {
		"........",
		"........",
		"#...#...",
		"#...#...",
		"#...#...",
		".#.#....",
		"..#.....",
		"........",
	},
	'w': {
		"........",
		"........",
		"#...#...",
		"#.#.#...",
		"#.#.#...",
		"#.#.#...",
		".#.#....",
		"........",
	},
	'x': {
		"........",
		"........",
		"#...#...",
		".#.#....",
		"..#.....",
		".#.#....",
		"#...#...",
		"........",
	},
	'y': {
		"........",
		"........",
		"#...#...",
		"#...#...",
		"#...#...",
		".####...",
		"....#...",
		".###....",
	},
	'z': {
		"........",
		"........",
		"#####...",
		"...#....",
		"..#.....",
		".#......",
		"#####...",
		"........",
	},
	'{': {
		"...##...",
		"..#.....",
		"..#.....",
		".#......",
		"..#.....",
		"..#.....",
		"...##...",
		"........",
	},
	'|': {
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"..#.....",
		"........",
	},
	'}': {
		"##......",
		"..#.....",
		"..#.....",
		"...#....",
		"..#.....",
		"..#.....",
		"##......",
		"........",
	},
	'~': {
		"........",
		".#......",
		"#.#.#...",
		"....#...",
		"........",
		"........",
		"........",
		"........",
	},
}
