package models

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SectionContent   = "CONTENT"
	SectionCardGrid  = "CARD_GRID"
	SectionFAQ       = "FAQ"
	SectionAccordion = "ACCORDION"
)

var ErrInvalidSectionMetadata = errors.New("section metadata does not match its type")

// Section is a typed content block on a Page. Metadata carries a payload whose
// shape depends on Type: FAQ/ACCORDION expect {items: [{question, answer}]},
// CARD_GRID expects {items: [..card objects..]}, CONTENT ignores it.
type Section struct {
	gorm.Model
	PageID   uint           `json:"pageID" gorm:"index"`
	Title    string         `json:"title"`
	Content  string         `json:"content" gorm:"type:text"`
	Order    int            `json:"order" gorm:"column:sort_order;default:0"`
	Type     string         `json:"type" gorm:"type:varchar(20);default:CONTENT"` // CONTENT, CARD_GRID, FAQ, ACCORDION
	Metadata datatypes.JSON `json:"metadata"`
}

// FAQItem is the element shape for FAQ and ACCORDION sections.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type sectionMetadata struct {
	Items json.RawMessage `json:"items"`
}

// ResolvedSection is what the public page endpoint hands to the renderer:
// either a typed item list or raw HTML to show verbatim.
type ResolvedSection struct {
	Kind  string            `json:"kind"` // html, faq, cards
	HTML  string            `json:"html,omitempty"`
	Items []FAQItem         `json:"items,omitempty"`
	Cards []json.RawMessage `json:"cards,omitempty"`
}

// FAQItems parses metadata.items as question/answer pairs. A missing items key,
// empty array or malformed JSON all return ok=false so the caller can degrade.
func (s *Section) FAQItems() ([]FAQItem, bool) {
	raw, ok := s.metadataItems()
	if !ok {
		return nil, false
	}
	var items []FAQItem
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	return items, true
}

// CardItems parses metadata.items as an array of card objects. The card shape
// is defined by whoever saved the section; only array-of-object is enforced.
func (s *Section) CardItems() ([]json.RawMessage, bool) {
	raw, ok := s.metadataItems()
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	for _, it := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(it, &obj); err != nil {
			return nil, false
		}
	}
	return items, true
}

func (s *Section) metadataItems() (json.RawMessage, bool) {
	if len(s.Metadata) == 0 {
		return nil, false
	}
	var meta sectionMetadata
	if err := json.Unmarshal(s.Metadata, &meta); err != nil || len(meta.Items) == 0 {
		return nil, false
	}
	return meta.Items, true
}

// Resolve picks the display payload for the section. Parse failures and empty
// item lists fall back to the raw content HTML so a malformed admin save can
// never break the public page.
func (s *Section) Resolve() ResolvedSection {
	switch s.Type {
	case SectionFAQ, SectionAccordion:
		if items, ok := s.FAQItems(); ok {
			return ResolvedSection{Kind: "faq", Items: items}
		}
	case SectionCardGrid:
		if cards, ok := s.CardItems(); ok {
			return ResolvedSection{Kind: "cards", Cards: cards}
		}
	}
	return ResolvedSection{Kind: "html", HTML: s.Content}
}

// ValidateMetadata enforces the per-type payload shape at the store boundary.
// CONTENT sections require content instead of metadata.
func (s *Section) ValidateMetadata() error {
	switch s.Type {
	case SectionFAQ, SectionAccordion:
		if _, ok := s.FAQItems(); !ok {
			return ErrInvalidSectionMetadata
		}
	case SectionCardGrid:
		if _, ok := s.CardItems(); !ok {
			return ErrInvalidSectionMetadata
		}
	case SectionContent, "":
		if s.Content == "" {
			return errors.New("content is required for CONTENT sections")
		}
	default:
		return errors.New("unknown section type: " + s.Type)
	}
	return nil
}
