// package catalog provides the static song catalog embedded in the binary.
//
// The catalog is parsed and validated once at startup and never mutated
// afterwards. Songs keep their file order.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

//go:embed songs.toml
var songData []byte

var validate = validator.New()

// Catalog is an immutable ordered collection of songs.
type Catalog struct {
	songs []models.Song
	byID  map[string]int
}

type songFile struct {
	Songs []models.Song `toml:"songs"`
}

// Load parses and validates the embedded song catalog.
func Load() (*Catalog, error) {
	return parse(songData)
}

func parse(data []byte) (*Catalog, error) {
	var file songFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCatalog, err)
	}

	if len(file.Songs) == 0 {
		return nil, shared.ErrEmptyCatalog
	}

	byID := make(map[string]int, len(file.Songs))
	for i, song := range file.Songs {
		if err := validate.Struct(song); err != nil {
			return nil, fmt.Errorf("%w: song %q: %v", shared.ErrInvalidCatalog, song.ID, err)
		}
		if _, dup := byID[song.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate song id %q", shared.ErrInvalidCatalog, song.ID)
		}
		byID[song.ID] = i
	}

	return &Catalog{songs: file.Songs, byID: byID}, nil
}

// Songs returns all songs in catalog order. The returned slice is a copy.
func (c *Catalog) Songs() []models.Song {
	songs := make([]models.Song, len(c.songs))
	copy(songs, c.songs)
	return songs
}

// Get retrieves a song by its identifier.
func (c *Catalog) Get(id string) (models.Song, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Song{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return c.songs[i], nil
}

// Len returns the number of songs in the catalog.
func (c *Catalog) Len() int {
	return len(c.songs)
}
