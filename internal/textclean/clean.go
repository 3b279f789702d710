package textclean

import "strings"

// glyphs lists the formatting artifacts stripped from generated text.
// "â€¢" is a UTF-8 bullet that was decoded as Windows-1252 somewhere upstream.
var glyphs = strings.NewReplacer(
	"*", "",
	"â€¢", "",
	"•", "",
	"◦", "",
	"▪", "",
	"‣", "",
	"⁃", "",
)

// Clean removes markdown emphasis markers and bullet glyphs from text,
// trims every line and drops the blank ones.
// Clean is idempotent: Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	// Removing one glyph can join the halves of another one, so repeat
	// until nothing changes.
	for {
		stripped := glyphs.Replace(text)
		if stripped == text {
			break
		}
		text = stripped
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
