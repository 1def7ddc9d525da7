package catalog

import (
	"errors"
	"testing"

	"github.com/windlearn/kazegaku/internal/shared"
)

func TestLoad(t *testing.T) {
	songs, err := Load()
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}

	if songs.Len() == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	t.Run("songs keep file order", func(t *testing.T) {
		all := songs.Songs()
		if all[0].ID != "hana" {
			t.Errorf("expected hana first, got %s", all[0].ID)
		}
	})

	t.Run("Songs returns a copy", func(t *testing.T) {
		all := songs.Songs()
		all[0].Title = "mutated"

		again, _ := songs.Get(all[0].ID)
		if again.Title == "mutated" {
			t.Error("expected catalog to be unaffected by caller mutation")
		}
	})

	t.Run("Get by id", func(t *testing.T) {
		song, err := songs.Get("hana")
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if song.Title != "花" {
			t.Errorf("expected 花, got %s", song.Title)
		}
	})

	t.Run("Get unknown id", func(t *testing.T) {
		_, err := songs.Get("unknown")
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})
}

func TestParse(t *testing.T) {
	tc := []struct {
		name string
		data string
		want error
	}{
		{
			name: "malformed toml",
			data: `[[songs` + "\n",
			want: shared.ErrInvalidCatalog,
		},
		{
			name: "empty catalog",
			data: ``,
			want: shared.ErrEmptyCatalog,
		},
		{
			name: "missing required field",
			data: `
[[songs]]
id = "hana"
title = "花"
`,
			want: shared.ErrInvalidCatalog,
		},
		{
			name: "invalid difficulty",
			data: `
[[songs]]
id = "hana"
title = "花"
romaji_title = "Hana"
lyrics = "歌詞"
difficulty = "Expert"
`,
			want: shared.ErrInvalidCatalog,
		},
		{
			name: "duplicate song id",
			data: `
[[songs]]
id = "hana"
title = "花"
romaji_title = "Hana"
lyrics = "歌詞"
difficulty = "Beginner"

[[songs]]
id = "hana"
title = "花"
romaji_title = "Hana"
lyrics = "歌詞"
difficulty = "Beginner"
`,
			want: shared.ErrInvalidCatalog,
		},
		{
			name: "valid catalog",
			data: `
[[songs]]
id = "hana"
title = "花"
romaji_title = "Hana"
lyrics = "歌詞"
difficulty = "Beginner"
`,
			want: nil,
		},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			songs, err := parse([]byte(c.data))
			if c.want != nil {
				if !errors.Is(err, c.want) {
					t.Errorf("expected %v, got %v", c.want, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if songs.Len() != 1 {
				t.Errorf("expected 1 song, got %d", songs.Len())
			}
		})
	}
}
