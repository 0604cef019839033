// Package fonts locates and parses TrueType fonts for raster rendering.
//
// Fonts are discovered on the host system via go-findfont rather than
// bundled, so the library works with whatever serif/sans fonts the machine
// provides. Parsed fonts are cached; discovery runs once per font name.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/logictree/pkg/errors"
)

// DefaultFamily is the CSS font-family used in SVG output.
const DefaultFamily = `'Times New Roman', 'Liberation Serif', 'DejaVu Serif', serif`

// TitleFamily is the CSS font-family used for figure titles in SVG output.
const TitleFamily = DefaultFamily

// defaultCandidates are tried in order when no explicit font is requested.
var defaultCandidates = []string{
	"Times New Roman.ttf",
	"LiberationSerif-Regular.ttf",
	"DejaVuSerif.ttf",
	"DejaVuSans.ttf",
	"Arial.ttf",
}

var (
	mu    sync.Mutex
	cache = map[string]*truetype.Font{}
)

// Find returns the path of the named font file on this system.
func Find(name string) (string, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFontNotFound, err, "font %q not found", name)
	}
	return path, nil
}

// Load finds and parses the named TrueType font. Results are cached.
func Load(name string) (*truetype.Font, error) {
	mu.Lock()
	defer mu.Unlock()

	if f, ok := cache[name]; ok {
		return f, nil
	}

	path, err := Find(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "reading font %q", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parsing font %q", path)
	}

	cache[name] = f
	return f, nil
}

// Default returns the first parsable font from the default candidate list.
func Default() (*truetype.Font, error) {
	var lastErr error
	for _, name := range defaultCandidates {
		f, err := Load(name)
		if err == nil {
			return f, nil
		}
		lastErr = err
	}
	return nil, errors.Wrap(errors.ErrCodeFontNotFound, lastErr, "no usable default font on this system")
}

// Face returns a font.Face for f at the given point size, suitable for
// measuring and drawing text with a raster canvas.
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}
