package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Partition is one language's id -> Project mapping. It remembers insertion
// order so that lookups scanning the partition return the earliest match and
// the file round-trips with its keys in place.
type Partition struct {
	order []string
	items map[string]*Project
}

// Get returns the project stored under id, or nil.
func (p *Partition) Get(id string) *Project {
	if p.items == nil {
		return nil
	}
	return p.items[id]
}

func (p *Partition) Has(id string) bool {
	_, ok := p.items[id]
	return ok
}

// Set stores project under id. New ids are appended; existing ids keep their
// position.
func (p *Partition) Set(id string, project *Project) {
	if p.items == nil {
		p.items = make(map[string]*Project)
	}
	if _, ok := p.items[id]; !ok {
		p.order = append(p.order, id)
	}
	p.items[id] = project
}

// Delete removes id and reports whether it was present.
func (p *Partition) Delete(id string) bool {
	if _, ok := p.items[id]; !ok {
		return false
	}
	delete(p.items, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

func (p *Partition) Len() int {
	return len(p.order)
}

// IDs returns the ids in insertion order.
func (p *Partition) IDs() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Projects returns the stored records in insertion order.
func (p *Partition) Projects() []*Project {
	out := make([]*Project, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.items[id])
	}
	return out
}

// FindBySlug returns the first project, in insertion order, whose slug matches.
func (p *Partition) FindBySlug(slug string) *Project {
	for _, id := range p.order {
		if project := p.items[id]; project != nil && project.Slug == slug {
			return project
		}
	}
	return nil
}

func (p Partition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.items[id])
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of projects keeping the document's key order.
func (p *Partition) UnmarshalJSON(data []byte) error {
	p.order = nil
	p.items = make(map[string]*Project)

	result := gjson.ParseBytes(data)
	if result.Type == gjson.Null {
		return nil
	}
	if !result.IsObject() {
		return fmt.Errorf("language partition must be an object")
	}

	var decodeErr error
	result.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Null {
			return true
		}
		var project Project
		if err := json.Unmarshal([]byte(value.Raw), &project); err != nil {
			decodeErr = fmt.Errorf("project %q: %w", key.String(), err)
			return false
		}
		if project.ID == "" {
			project.ID = key.String()
		}
		p.Set(key.String(), &project)
		return true
	})
	return decodeErr
}

// Catalog is the whole persisted document: one partition per language.
type Catalog struct {
	EN Partition `json:"en"`
	FR Partition `json:"fr"`
}

// NewCatalog returns an empty document.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Partition returns the partition for lang. Unknown languages map to nil.
func (c *Catalog) Partition(lang Language) *Partition {
	switch lang {
	case English:
		return &c.EN
	case French:
		return &c.FR
	}
	return nil
}

// Each visits every record of both partitions, English first.
func (c *Catalog) Each(fn func(lang Language, project *Project)) {
	for _, lang := range Languages {
		for _, project := range c.Partition(lang).Projects() {
			fn(lang, project)
		}
	}
}

// DecodeCatalog parses a catalog document. Invalid JSON is reported as
// ErrInvalidDocument so callers can classify it.
func DecodeCatalog(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}
	catalog := NewCatalog()
	if err := json.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return catalog, nil
}

// EncodeCatalog renders the document pretty-printed with two-space indents.
func EncodeCatalog(c *Catalog) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
