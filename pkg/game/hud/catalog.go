package hud

import (
	"embed"
	"fmt"

	"github.com/leonelquinteros/gotext"

	"nightshift/pkg/game/door"
)

//go:embed locales/*/default.po
var locales embed.FS

// DefaultLocale is used when a requested locale has no catalog.
const DefaultLocale = "en"

// Catalog looks up player-facing strings by key.
type Catalog struct {
	locale string
	po     *gotext.Po
}

// LoadCatalog loads the embedded catalog for locale, falling back to
// DefaultLocale.
func LoadCatalog(locale string) (*Catalog, error) {
	data, err := locales.ReadFile("locales/" + locale + "/default.po")
	if err != nil {
		if locale == DefaultLocale {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return LoadCatalog(DefaultLocale)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{locale: locale, po: po}, nil
}

// MustLoadCatalog is LoadCatalog for the embedded default; it panics on error.
func MustLoadCatalog(locale string) *Catalog {
	c, err := LoadCatalog(locale)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Locale() string { return c.locale }

// Get translates key. Unknown keys come back as-is.
func (c *Catalog) Get(key string) string {
	return c.po.Get(key)
}

// Getf translates key and formats the result with vars.
func (c *Catalog) Getf(key string, vars ...any) string {
	return fmt.Sprintf(c.po.Get(key), vars...)
}

// Side returns the localized name of a door side.
func (c *Catalog) Side(side door.Side) string {
	switch side {
	case door.Left:
		return c.Get("LEFT")
	case door.Right:
		return c.Get("RIGHT")
	}
	panic(fmt.Sprintf("not implemented: door side %d", int(side)))
}
