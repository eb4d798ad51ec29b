package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/autoartists/internal/config"
	"golang.org/x/sync/errgroup"
)

func TestLibrary_Items(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, filepath.Join(root, "b", "two.mp3"), "Jim Croce & Another artist", "Time")
	writeTrack(t, filepath.Join(root, "a", "one.MP3"), "Beyoncé", "Halo")
	if err := os.WriteFile(filepath.Join(root, "cover.jpg"), []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	lib := newTestLibrary(root)

	items, err := lib.Items(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Items() returned %d items, want 2", len(items))
	}
	if items[0].Artist != "Beyoncé" || items[1].Title != "Time" {
		t.Errorf("items not sorted by path: %v, %v", items[0], items[1])
	}

	items, err = lib.Items(context.Background(), ParseQuery([]string{"artist:croce"}))
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Time" {
		t.Errorf("query returned %v", items)
	}
}

func TestLibrary_NotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.mp3")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	for _, root := range []string{file, filepath.Join(t.TempDir(), "missing")} {
		_, err := newTestLibrary(root).Items(context.Background(), Query{})
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("Items(%q) error = %v, want ErrNotDirectory", root, err)
		}
	}
}

func TestLibrary_Canceled(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, filepath.Join(root, "one.mp3"), "A", "Song")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestLibrary(root).Scan(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestLibrary_Store(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, filepath.Join(root, "one.mp3"), "A & B", "Song")
	lib := newTestLibrary(root)

	items, err := lib.Items(context.Background(), Query{})
	if err != nil || len(items) != 1 {
		t.Fatalf("Items() = %v, %v", items, err)
	}

	want := []string{"A", "B"}
	if err := lib.Store(context.Background(), items[0], want); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !reflect.DeepEqual(items[0].Artists, want) {
		t.Errorf("item.Artists = %q, want %q", items[0].Artists, want)
	}

	rescanned, err := lib.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(rescanned[0].Artists, want) {
		t.Errorf("stored artists = %q, want %q", rescanned[0].Artists, want)
	}
}

func TestLibrary_StoreDistinctItemsConcurrently(t *testing.T) {
	root := t.TempDir()
	names := []string{"one", "two", "three", "four"}
	for _, name := range names {
		writeTrack(t, filepath.Join(root, name+".mp3"), name+" & guest", "Song")
	}
	lib := newTestLibrary(root)

	ctx := context.Background()
	items, err := lib.Items(ctx, Query{})
	if err != nil || len(items) != len(names) {
		t.Fatalf("Items() = %v, %v", items, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			artists := []string{item.Artist, "guest"}
			if err := lib.Store(gctx, item, artists); err != nil {
				return err
			}
			artists[0] = "mutated"
			return nil
		})
		g.Go(func() error {
			_, err := lib.Items(gctx, Query{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	for _, item := range items {
		if want := []string{item.Artist, "guest"}; !reflect.DeepEqual(item.Artists, want) {
			t.Errorf("%s: Artists = %q, want %q", item.Path, item.Artists, want)
		}
	}
}

func TestLibrary_StoreWithoutWriteTags(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, filepath.Join(root, "one.mp3"), "A & B", "Song")

	settings := config.DefaultSettings()
	settings.LibraryPath = root
	settings.WriteTags = false
	lib := New(settings, nil)

	items, err := lib.Items(context.Background(), Query{})
	if err != nil || len(items) != 1 {
		t.Fatalf("Items() = %v, %v", items, err)
	}
	if err := lib.Store(context.Background(), items[0], []string{"A", "B"}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	rescanned, err := lib.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rescanned[0].HasArtists() {
		t.Errorf("file was written despite write_tags=false: %q", rescanned[0].Artists)
	}
}

func newTestLibrary(root string) *Library {
	settings := config.DefaultSettings()
	settings.LibraryPath = root
	settings.MaxConcurrentReads = 2
	return New(settings, nil)
}

func writeTrack(t *testing.T, path, artist, title string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(artist)
	tag.SetTitle(title)
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
}
