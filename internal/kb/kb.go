// Package kb loads the knowledge base that backs the answer engine.
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Entry is a single knowledge base record. Two generations of the data file are supported: older
// records keyed only by category, and newer records carrying an explicit type.
type Entry struct {
	Type        string   `json:"type,omitempty"`
	Name        string   `json:"name,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	URL         string   `json:"url,omitempty"`
	Items       []Branch `json:"items,omitempty"`
}

// Branch is one physical store location.
type Branch struct {
	City  string `json:"city"`
	Place string `json:"place"`
	Tel   string `json:"tel"`
}

// KnowledgeBase holds the parsed data file together with the derived indexes the engine queries.
type KnowledgeBase struct {
	Entries []Entry

	// Products are entries sellable on the site: either typed as product, or legacy entries
	// with a non-Info category and a URL.
	Products []Entry
	// Categories are the distinct product categories, lowercased and sorted.
	Categories []string
	// Branches lists store locations, in file order.
	Branches []Branch
	// Info is the company info entry, if the file carries one.
	Info *Entry
}

// Parse decodes a knowledge base document and builds its indexes.
func Parse(data []byte) (*KnowledgeBase, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	k := &KnowledgeBase{Entries: entries}
	catSet := make(map[string]struct{})

	for i, e := range entries {
		switch {
		case e.Type == "branches":
			k.Branches = append(k.Branches, e.Items...)
		case e.Type == "info" || e.Category == "Info":
			if k.Info == nil {
				k.Info = &entries[i]
			}
		}

		if e.Type == "product" || (e.Category != "" && e.Category != "Info" && e.URL != "") {
			k.Products = append(k.Products, e)
			if e.Category != "" {
				catSet[strings.ToLower(e.Category)] = struct{}{}
			}
		}
	}

	for c := range catSet {
		k.Categories = append(k.Categories, c)
	}
	slices.Sort(k.Categories)

	return k, nil
}

// Load reads and parses a knowledge base file from disk.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	return Parse(data)
}

// InCategory returns the products whose category equals cat, compared case-insensitively.
func (k *KnowledgeBase) InCategory(cat string) []Entry {
	want := strings.ToLower(strings.TrimSpace(cat))
	var out []Entry
	for _, p := range k.Products {
		if strings.ToLower(p.Category) == want {
			out = append(out, p)
		}
	}
	return out
}
