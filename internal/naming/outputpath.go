package naming

import (
	"path/filepath"
	"strings"
)

// BaseName returns the filename without directory and final extension:
// "public/hero.HEIC" -> "hero". Dotfiles keep their name (".env" -> ".env").
func BaseName(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// OutputName returns the output filename for input with the given target
// extension (with leading dot): ("hero.png", ".webp") -> "hero.webp".
func OutputName(input, ext string) string {
	return BaseName(input) + ext
}

// OutputPath joins outputDir and [OutputName].
func OutputPath(outputDir, input, ext string) string {
	return filepath.Join(outputDir, OutputName(input, ext))
}
