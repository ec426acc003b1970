// internal/entity/entity.go
//
// Municipality catalog management.
//
// Responsibilities:
//   - Load the entity catalog from an environment-provided file or fall
//     back to the embedded default.
//   - Maintain the full catalog (used to resolve guesses by name) and the
//     target pool (only entities with an illustration asset).
//   - Supply lookups: Find (case-insensitive exact name), Stats, and the
//     daily target selection.
//
// Environment variables:
//   CATALOG_FILE=/path/to/municipalities.json
//   IMAGES_FILE=/path/to/images.txt
//
// Constraints:
//   • Entity names are unique under case-insensitive comparison.
//   • Codes are normalized to lowercase (they key the asset path).
//   • Catalog order is fixed for the process lifetime; the pool keeps the
//     catalog's order, so a day key maps to the same target forever.
//   • Initialization runs once (sync.Once); an empty target pool is a
//     configuration error reported from Init, not at guess time.

package entity

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/kommundle/go-server/assets"
	"github.com/kommundle/go-server/internal/daykey"
)

// ErrEmptyPool means no catalog entity has an illustration asset, so no
// daily target can ever be chosen. Fatal at startup.
var ErrEmptyPool = errors.New("entity: target pool is empty")

// Entity is one guessable municipality. Immutable after load.
type Entity struct {
	Name string  `json:"name"` // unique, matched case-insensitively
	Code string  `json:"code"` // lowercase asset key
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

var (
	initOnce   sync.Once
	all        []Entity          // full catalog, load order preserved
	pool       []Entity          // entities with an illustration asset
	byName     map[string]Entity // keyed by lowercase name
	initialErr error
)

// Init loads the catalog exactly once. Returns an error if the catalog
// cannot be parsed or the target pool ends up empty.
func Init() error {
	initOnce.Do(func() {
		var raw []byte
		var codes []string
		var err error

		if path := os.Getenv("CATALOG_FILE"); path != "" {
			raw, err = os.ReadFile(path)
		} else {
			raw, err = assets.CatalogJSON()
		}
		if err != nil {
			initialErr = fmt.Errorf("entity: read catalog: %w", err)
			return
		}

		if path := os.Getenv("IMAGES_FILE"); path != "" {
			codes, err = readCodeFile(path)
		} else {
			codes, err = assets.ImageCodes()
		}
		if err != nil {
			initialErr = fmt.Errorf("entity: read image codes: %w", err)
			return
		}

		all, pool, byName, initialErr = build(raw, codes)
	})
	return initialErr
}

// build parses the catalog and derives the target pool and name index.
func build(raw []byte, imageCodes []string) ([]Entity, []Entity, map[string]Entity, error) {
	var list []Entity
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil, nil, fmt.Errorf("entity: parse catalog: %w", err)
	}

	withImage := make(map[string]struct{}, len(imageCodes))
	for _, c := range imageCodes {
		withImage[strings.ToLower(c)] = struct{}{}
	}

	index := make(map[string]Entity, len(list))
	var p []Entity
	for i := range list {
		list[i].Code = strings.ToLower(list[i].Code)
		key := strings.ToLower(list[i].Name)
		if _, dup := index[key]; dup {
			return nil, nil, nil, fmt.Errorf("entity: duplicate name %q", list[i].Name)
		}
		index[key] = list[i]
		if _, ok := withImage[list[i].Code]; ok {
			p = append(p, list[i])
		}
	}

	if len(p) == 0 {
		return nil, nil, nil, ErrEmptyPool
	}
	return list, p, index, nil
}

// readCodeFile loads one code per line, lowercased, skipping blanks and
// comment lines.
func readCodeFile(path string) ([]string, error) {
	f, err := os.Open(path)
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

// All returns the full catalog in load order.
func All() []Entity { return all }

// Pool returns the target pool (entities with illustrations) in load order.
func Pool() []Entity { return pool }

// Find resolves a name to its catalog entry, case-insensitively.
func Find(name string) (Entity, bool) {
	e, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Stats returns counts of loaded entities: (total, with image).
func Stats() (total int, withImage int) {
	return len(all), len(pool)
}

// SelectDaily picks the target for a day key from the given pool.
// Same key and same pool order give the same entity, forever.
func SelectDaily(dayKey string, p []Entity) (Entity, error) {
	if len(p) == 0 {
		return Entity{}, ErrEmptyPool
	}
	idx := int(math.Floor(daykey.NewStream(dayKey).Float64() * float64(len(p))))
	return p[idx], nil
}
