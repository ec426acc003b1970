package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed municipalities.json images.txt
var FS embed.FS

// CatalogJSON returns the raw embedded municipality catalog.
func CatalogJSON() ([]byte, error) {
	return FS.ReadFile("municipalities.json")
}

// ImageCodes returns the municipality codes that have an illustration
// asset, lower-cased, comments and blank lines skipped.
func ImageCodes() ([]string, error) {
	f, err := FS.Open("images.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}
