package theme

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store.
type memStore struct {
	values map[string]string
	writes int
	err    error
}

func newMemStore() *memStore { return &memStore{values: make(map[string]string)} }

func (m *memStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) Set(key, value string) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func fixed(dark bool) Detector {
	return DetectorFunc(func() (bool, bool) { return dark, true })
}

// recorder captures applied values.
type recorder struct{ applied []bool }

func (r *recorder) ApplyTheme(dark bool) { r.applied = append(r.applied, dark) }

func TestInitialize_UsesStoredValue(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.values[Key] = "dark"
	rec := &recorder{}

	p := NewPreference(store, fixed(false), rec)
	assert.True(t, p.Initialize())
	assert.Equal(t, SourceStored, p.Source())
	assert.Equal(t, []bool{true}, rec.applied)
	assert.Equal(t, 0, store.writes, "initialize must not write")
}

func TestInitialize_FallsBackToSystem(t *testing.T) {
	t.Parallel()

	for _, stored := range []string{"", "Dark", "purple"} {
		store := newMemStore()
		if stored != "" {
			store.values[Key] = stored
		}
		p := NewPreference(store, fixed(true))
		assert.True(t, p.Initialize(), "stored %q", stored)
		assert.Equal(t, SourceSystem, p.Source())
	}
}

func TestInitialize_RunsOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	det := DetectorFunc(func() (bool, bool) {
		calls++
		return true, true
	})
	p := NewPreference(newMemStore(), det)
	p.Initialize()
	p.Initialize()
	assert.Equal(t, 1, calls)
}

func TestToggle_PersistsEveryChange(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	rec := &recorder{}
	p := NewPreference(store, fixed(false), rec)
	original := p.Initialize()

	dark, err := p.Toggle()
	require.NoError(t, err)
	assert.Equal(t, !original, dark)
	assert.Equal(t, p.Mode(), store.values[Key])

	dark, err = p.Toggle()
	require.NoError(t, err)
	assert.Equal(t, original, dark)
	assert.Equal(t, original, p.IsDark())
	assert.Equal(t, p.Mode(), store.values[Key])

	assert.Equal(t, []bool{false, true, false}, rec.applied)
	assert.Equal(t, SourceUser, p.Source())
}

func TestToggle_StoreErrorStillFlips(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.err = errors.New("disk full")
	p := NewPreference(store, fixed(false))
	p.Initialize()

	dark, err := p.Toggle()
	require.Error(t, err)
	assert.True(t, dark)
	assert.True(t, p.IsDark())
}

func TestSet_IsIdempotent(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	p := NewPreference(store, fixed(false))
	require.NoError(t, p.Set(true))
	require.NoError(t, p.Set(true))
	assert.Equal(t, "dark", store.values[Key])
	assert.True(t, p.IsDark())
}

func TestReload(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	rec := &recorder{}
	p := NewPreference(store, fixed(false), rec)
	p.Initialize()

	assert.False(t, p.Reload(), "absent value keeps current")

	store.values[Key] = "dark"
	assert.True(t, p.Reload())
	assert.True(t, p.IsDark())
	assert.False(t, p.Reload(), "same value is not a change")

	store.values[Key] = "garbage"
	assert.False(t, p.Reload())
	assert.True(t, p.IsDark())
	assert.Equal(t, []bool{false, true}, rec.applied)
}

func TestAddApplier_AppliesCurrent(t *testing.T) {
	t.Parallel()

	p := NewPreference(newMemStore(), fixed(true))
	early := &recorder{}
	p.AddApplier(early)
	assert.Empty(t, early.applied)

	p.Initialize()
	late := &recorder{}
	p.AddApplier(late)
	assert.Equal(t, []bool{true}, late.applied)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	dark, err := ParseMode("dark")
	require.NoError(t, err)
	assert.True(t, dark)

	dark, err = ParseMode("light")
	require.NoError(t, err)
	assert.False(t, dark)

	_, err = ParseMode("auto")
	require.Error(t, err)
}

func TestChain(t *testing.T) {
	t.Parallel()

	none := DetectorFunc(func() (bool, bool) { return true, false })
	dark, ok := Chain{none, fixed(true), fixed(false)}.PrefersDark()
	assert.True(t, ok)
	assert.True(t, dark)

	dark, ok = Chain{none}.PrefersDark()
	assert.False(t, ok)
	assert.False(t, dark)
}

func TestEnvDetector(t *testing.T) {
	d := EnvDetector{Name: "COUNTDOWN_THEME_TEST"}

	t.Setenv("COUNTDOWN_THEME_TEST", " Dark ")
	dark, ok := d.PrefersDark()
	assert.True(t, ok)
	assert.True(t, dark)

	t.Setenv("COUNTDOWN_THEME_TEST", "neon")
	_, ok = d.PrefersDark()
	assert.False(t, ok)
}

func TestSchemeToDark(t *testing.T) {
	t.Parallel()

	dark, ok := schemeToDark(dbus.MakeVariant(uint32(1)))
	assert.True(t, ok)
	assert.True(t, dark)

	dark, ok = schemeToDark(uint32(2))
	assert.True(t, ok)
	assert.False(t, dark)

	_, ok = schemeToDark(uint32(0))
	assert.False(t, ok)

	_, ok = schemeToDark("dark")
	assert.False(t, ok)
}

func TestPalette(t *testing.T) {
	t.Parallel()

	d := PaletteFor(true)
	l := PaletteFor(false)
	assert.True(t, d.Dark)
	assert.False(t, l.Dark)
	assert.Equal(t, d.OK, d.Shadow("ok"))
	assert.Equal(t, d.Warning, d.Shadow("warning"))
	assert.Equal(t, d.Critical, d.Shadow("critical"))
	assert.Equal(t, l.Critical, l.Shadow("bogus"))
	assert.NotEqual(t, d.Icon(), l.Icon())
}
