// Package i18n provides string localization for toolbar labels and
// tooltips.
//
// A Translator hands out per-domain bundles; a bundle resolves message
// ids to localized strings, falling back to the id itself when no
// translation exists. Locale negotiation uses golang.org/x/text
// language matching so that e.g. "pt-BR" requests resolve against a
// "pt" catalog.
package i18n

import (
	"sort"
	"sync"

	"golang.org/x/text/language"
)

// Translator hands out localization bundles by domain.
type Translator interface {
	// Load returns the bundle for a translation domain.
	Load(domain string) *Bundle
}

// Bundle resolves message ids for one domain.
type Bundle struct {
	messages map[string]string
}

// Gettext returns the localized string for a message id, or the id
// itself when no translation exists.
func (b *Bundle) Gettext(msgid string) string {
	if b == nil {
		return msgid
	}
	if s, ok := b.messages[msgid]; ok {
		return s
	}
	return msgid
}

// nullTranslator resolves every message to itself.
type nullTranslator struct{}

func (nullTranslator) Load(domain string) *Bundle { return &Bundle{} }

// Null returns a translator that performs no translation.
func Null() Translator {
	return nullTranslator{}
}

// Catalog is an in-memory Translator keyed by domain and language tag.
type Catalog struct {
	mu sync.RWMutex

	// domain -> tag -> msgid -> message
	entries map[string]map[language.Tag]map[string]string
	locale  language.Tag
}

// NewCatalog creates an empty catalog resolving against the given
// locale. An unparseable locale falls back to English.
func NewCatalog(locale string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Catalog{
		entries: make(map[string]map[language.Tag]map[string]string),
		locale:  tag,
	}
}

// Add registers messages for a domain and language.
func (c *Catalog) Add(domain, locale string, messages map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[domain] == nil {
		c.entries[domain] = make(map[language.Tag]map[string]string)
	}
	dst := c.entries[domain][tag]
	if dst == nil {
		dst = make(map[string]string)
		c.entries[domain][tag] = dst
	}
	for k, v := range messages {
		dst[k] = v
	}
	return nil
}

// Load returns the best-matching bundle for a domain. A domain with no
// catalog for the configured locale yields an identity bundle.
func (c *Catalog) Load(domain string) *Bundle {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byTag, ok := c.entries[domain]
	if !ok || len(byTag) == 0 {
		return &Bundle{}
	}

	tags := make([]language.Tag, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	// Stable matcher priority regardless of map iteration order.
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	matcher := language.NewMatcher(tags)
	_, i, conf := matcher.Match(c.locale)
	if conf == language.No {
		return &Bundle{}
	}

	messages := byTag[tags[i]]
	copied := make(map[string]string, len(messages))
	for k, v := range messages {
		copied[k] = v
	}
	return &Bundle{messages: copied}
}
