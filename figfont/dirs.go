package figfont

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// known file names for the families used by the presets,
// indexed by slant
var fileNames = map[string][2][]string{
	"times new roman": {
		{"times new roman.ttf", "times.ttf", "timesnewroman.ttf", "timesnewromanpsmt.ttf"},
		{"times new roman italic.ttf", "timesi.ttf", "timesnewroman-italic.ttf", "timesnewromanps-italicmt.ttf"},
	},
	"computer modern roman": {
		{"cmunrm.ttf", "cmunrm.otf", "cmr10.ttf"},
		{"cmunti.ttf", "cmunti.otf", "cmmi10.ttf"},
	},
	"dejavu serif": {
		{"dejavuserif.ttf"},
		{"dejavuserif-italic.ttf"},
	},
	"dejavu sans": {
		{"dejavusans.ttf"},
		{"dejavusans-oblique.ttf"},
	},
	"arial": {
		{"arial.ttf"},
		{"ariali.ttf", "arial italic.ttf"},
	},
	"helvetica": {
		{"helvetica.ttf"},
		{"helvetica-oblique.ttf"},
	},
}

var (
	indexMu    sync.Mutex
	searchDirs []string          // nil means the system defaults
	index      map[string]string // lower case base name -> path
)

// SetSearchDirs overrides the directories scanned for font files.
// Passing nil restores the system defaults.
func SetSearchDirs(dirs []string) {
	indexMu.Lock()
	searchDirs = dirs
	index = nil
	indexMu.Unlock()
}

func resetIndex() {
	indexMu.Lock()
	index = nil
	indexMu.Unlock()
}

func systemDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	case "darwin":
		return []string{"/Library/Fonts", "/System/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	default:
		return []string{"/usr/share/fonts", "/usr/local/share/fonts",
			filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts")}
	}
}

func buildIndex(dirs []string) map[string]string {
	out := make(map[string]string)
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			name := strings.ToLower(d.Name())
			if _, seen := out[name]; !seen {
				out[name] = path
			}
			return nil
		})
	}
	return out
}

// lookup returns the file path of `family` with the given slant.
func lookup(family string, slant Slant) (string, bool) {
	indexMu.Lock()
	if index == nil {
		dirs := searchDirs
		if dirs == nil {
			dirs = systemDirs()
		}
		index = buildIndex(dirs)
	}
	idx := index
	indexMu.Unlock()

	family = strings.ToLower(strings.TrimSpace(family))
	candidates := append([]string(nil), fileNames[family][slant]...)
	// also try the plain family name, as "Family.ttf" or "Family-Italic.ttf"
	base := strings.ReplaceAll(family, " ", "")
	if slant == Italic {
		candidates = append(candidates, family+" italic.ttf", base+"-italic.ttf", base+"-italic.otf")
	} else {
		candidates = append(candidates, family+".ttf", base+".ttf", base+"-regular.ttf", base+".otf", base+"-regular.otf")
	}
	for _, name := range candidates {
		if path, ok := idx[name]; ok {
			return path, true
		}
	}
	return "", false
}

func parseFile(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return sfnt.Parse(data)
}
