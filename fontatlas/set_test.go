package fontatlas

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/text/unicode/rangetable"

	"github.com/gogpu/atlas/assets"
)

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	fn()
}

func TestNewSet_Defaults(t *testing.T) {
	set := NewSet(SetConfig{})

	if set.pageSize != DefaultPageSize {
		t.Errorf("pageSize = %d, want %d", set.pageSize, DefaultPageSize)
	}
	if set.padding != DefaultPadding {
		t.Errorf("padding = %d, want %d", set.padding, DefaultPadding)
	}
	if set.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", set.PageCount())
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestNewSet_InvalidConfig(t *testing.T) {
	expectPanic(t, func() { NewSet(SetConfig{PageSize: -1}) })
	expectPanic(t, func() { NewSet(SetConfig{Padding: -1}) })
}

func TestSet_Glyph_CachesRef(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 128})

	first, err := set.Glyph(store, face, 'A')
	if err != nil {
		t.Fatalf("Glyph failed: %v", err)
	}
	if !first.Visible() {
		t.Fatal("expected a visible glyph for 'A'")
	}
	if first.Page != 0 || first.Index != 0 {
		t.Errorf("expected page 0 index 0, got page %d index %d", first.Page, first.Index)
	}
	if !first.Region.IsValid() || !first.Region.In(128, 128) {
		t.Errorf("region %v not inside the page", first.Region)
	}
	if first.Advance <= 0 {
		t.Errorf("expected positive advance, got %v", first.Advance)
	}

	second, err := set.Glyph(store, face, 'A')
	if err != nil {
		t.Fatalf("second Glyph failed: %v", err)
	}
	if second != first {
		t.Errorf("expected cached ref %+v, got %+v", first, second)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
	if set.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1", set.PageCount())
	}
}

func TestSet_Glyph_Whitespace(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 128})

	ref, err := set.Glyph(store, face, ' ')
	if err != nil {
		t.Fatalf("Glyph failed: %v", err)
	}
	if ref.Visible() {
		t.Error("expected whitespace to be invisible")
	}
	if ref.Page != -1 || ref.Index != -1 {
		t.Errorf("expected page -1 index -1, got page %d index %d", ref.Page, ref.Index)
	}
	if ref.Advance <= 0 {
		t.Errorf("expected positive advance, got %v", ref.Advance)
	}
	// No page should be opened for a glyph that occupies no space.
	if set.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", set.PageCount())
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestSet_Glyph_Missing(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 128})

	_, err := set.Glyph(store, face, 'ا')
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("expected ErrGlyphNotFound, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestSet_Glyph_WritesPixels(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 128})

	ref, err := set.Glyph(store, face, 'A')
	if err != nil {
		t.Fatalf("Glyph failed: %v", err)
	}

	page := set.Page(ref.Page)
	img, ok := store.Get(page.Target())
	if !ok {
		t.Fatal("page handle does not resolve")
	}
	if img.Format() != gputypes.TextureFormatR8Unorm {
		t.Errorf("page format = %v, want R8Unorm", img.Format())
	}
	if img.Width() != 128 || img.Height() != 128 {
		t.Errorf("page size = %dx%d, want 128x128", img.Width(), img.Height())
	}

	var ink int
	data := img.Data()
	for y := ref.Region.Y; y < ref.Region.MaxY(); y++ {
		for x := ref.Region.X; x < ref.Region.MaxX(); x++ {
			if data[y*128+x] != 0 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("no coverage written inside the glyph region")
	}
}

func TestSet_Glyph_PageGrowth(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 64})

	refs := make([]GlyphRef, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		ref, err := set.Glyph(store, face, r)
		if err != nil {
			t.Fatalf("Glyph(%q) failed: %v", r, err)
		}
		if !ref.Visible() {
			t.Fatalf("expected %q to be visible", r)
		}
		if !ref.Region.In(64, 64) {
			t.Fatalf("region %v for %q not inside the page", ref.Region, r)
		}
		refs = append(refs, ref)
	}

	if set.PageCount() < 2 {
		t.Errorf("PageCount() = %d, want at least 2", set.PageCount())
	}
	if set.PageCount() != store.Len() {
		t.Errorf("store holds %d images, set has %d pages", store.Len(), set.PageCount())
	}
	if set.Len() != 26 {
		t.Errorf("Len() = %d, want 26", set.Len())
	}

	// Glyphs on the same page must not overlap.
	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			if refs[i].Page != refs[j].Page {
				continue
			}
			if refs[i].Region.Intersects(refs[j].Region) {
				t.Errorf("regions %v and %v overlap on page %d",
					refs[i].Region, refs[j].Region, refs[i].Page)
			}
		}
	}
}

func TestSet_Glyph_TooLarge(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 48)
	set := NewSet(SetConfig{PageSize: 16})

	_, err := set.Glyph(store, face, 'W')
	if !errors.Is(err, ErrGlyphTooLarge) {
		t.Fatalf("expected ErrGlyphTooLarge, got %v", err)
	}
	// The failed placement opened the initial page and one growth page.
	if set.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", set.PageCount())
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestSet_Preload(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 256})

	added, err := set.Preload(store, face, rangetable.New('A', 'B', 'C'))
	if err != nil {
		t.Fatalf("Preload failed: %v", err)
	}
	if added != 3 {
		t.Errorf("Preload added %d glyphs, want 3", added)
	}
	if set.Len() != 3 {
		t.Errorf("Len() = %d, want 3", set.Len())
	}
}

func TestSet_PreloadString(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 256})

	added, err := set.PreloadString(store, face, "Hello")
	if err != nil {
		t.Fatalf("PreloadString failed: %v", err)
	}
	// H, e, l, o: the repeated l collapses to one glyph.
	if added != 4 {
		t.Errorf("PreloadString added %d glyphs, want 4", added)
	}

	again, err := set.PreloadString(store, face, "Hello")
	if err != nil {
		t.Fatalf("second PreloadString failed: %v", err)
	}
	if again != 0 {
		t.Errorf("second PreloadString added %d glyphs, want 0", again)
	}

	if added, err := set.PreloadString(store, face, ""); err != nil || added != 0 {
		t.Errorf("PreloadString(\"\") = (%d, %v), want (0, nil)", added, err)
	}
}

func TestSet_PreloadASCII(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 16)
	set := NewSet(SetConfig{PageSize: 256})

	added, err := set.PreloadASCII(store, face)
	if err != nil {
		t.Fatalf("PreloadASCII failed: %v", err)
	}
	// All 95 printable ASCII runes resolve to glyphs in Go Regular.
	if added != 95 {
		t.Errorf("PreloadASCII added %d glyphs, want 95", added)
	}
	if ref, err := set.Glyph(store, face, 'x'); err != nil || !ref.Visible() {
		t.Errorf("expected 'x' to be cached and visible, got (%+v, %v)", ref, err)
	}
}

func TestSet_Preload_TooLarge(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 48)
	set := NewSet(SetConfig{PageSize: 16})

	_, err := set.PreloadString(store, face, "W")
	if !errors.Is(err, ErrGlyphTooLarge) {
		t.Errorf("expected ErrGlyphTooLarge, got %v", err)
	}
}

func TestSet_PageAccessors(t *testing.T) {
	store := assets.NewStore()
	face := newTestFace(t, 32)
	set := NewSet(SetConfig{PageSize: 128})

	if _, err := set.Glyph(store, face, 'A'); err != nil {
		t.Fatalf("Glyph failed: %v", err)
	}

	page := set.Page(0)
	if page.Layout() == nil || page.Layout().Len() != 1 {
		t.Error("expected the page layout to hold one region")
	}
	if page.Target().IsZero() {
		t.Error("expected a nonzero page handle")
	}
}
