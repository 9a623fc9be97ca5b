package render

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

var (
	classSpace   = regexp.MustCompile(`\s+`)
	classInvalid = regexp.MustCompile(`[^a-z0-9-]`)
)

// NormalizeClass turns an enum value into a CSS class fragment: lower-case,
// whitespace runs become "-", anything outside [a-z0-9-] is dropped.
func NormalizeClass(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = classSpace.ReplaceAllString(v, "-")
	return classInvalid.ReplaceAllString(v, "")
}

// CardField is one labelled value on a card.
type CardField struct {
	Label string
	Value string
}

// Card is the display model of one record. Every value is already resolved
// to its fallback; nothing is blank unless the field is optional and absent.
type Card struct {
	ID         int
	Section    domain.Section
	Kind       string
	Title      string
	Badge      string
	BadgeClass string
	Fields     []CardField
	CanEdit    bool
	CanDelete  bool
}

// HasControls reports whether the card shows an action footer.
func (c Card) HasControls() bool { return c.CanEdit || c.CanDelete }

// State describes an empty or failed collection.
type State struct {
	Icon   string
	Title  string
	Text   string
	Failed bool
}

// Cards builds the display model for items in sec. Controls follow the
// session's permissions.
func Cards[T domain.Record](sec domain.Section, items []T, session domain.Session) []Card {
	cfg := configFor(sec)
	out := make([]Card, 0, len(items))
	for _, item := range items {
		out = append(out, buildCard(sec, cfg, item, session))
	}
	return out
}

func buildCard(sec domain.Section, cfg entityConfig, item domain.Record, session domain.Session) Card {
	badge := domain.CoalesceStr(item.Field(cfg.badgeField), cfg.badgeFallback)
	badgeClass := cfg.badgeClass
	if cfg.statusBadge {
		badgeClass += " status-" + NormalizeClass(badge)
	}
	c := Card{
		ID:         item.RecordID(),
		Section:    sec,
		Kind:       cfg.cardClass,
		Title:      domain.CoalesceStr(item.Field(cfg.titleField), cfg.titleFallback),
		Badge:      badge,
		BadgeClass: badgeClass,
		CanEdit:    session.Permissions.CanEdit,
		CanDelete:  session.Permissions.CanDelete,
	}
	for _, f := range cfg.fields {
		v := strings.TrimSpace(item.Field(f.field))
		if v == "" {
			if f.optional {
				continue
			}
			v = f.fallback
		} else {
			v += f.suffix
		}
		c.Fields = append(c.Fields, CardField{Label: f.label, Value: v})
	}
	return c
}

// EmptyState returns the empty-collection block for sec.
func EmptyState(sec domain.Section) State {
	cfg := configFor(sec)
	return State{Icon: cfg.icon, Title: cfg.emptyTitle, Text: cfg.emptyText}
}

// FailedState returns the load-failure block for sec, distinct from
// EmptyState.
func FailedState(sec domain.Section) State {
	plural := strings.Replace(strings.ToLower(sec.Label()), "ai ", "AI ", 1)
	return State{
		Icon:   "exclamation-triangle",
		Title:  "Failed to load " + plural,
		Text:   "The server could not be reached. Any cards below are from the last successful load.",
		Failed: true,
	}
}
