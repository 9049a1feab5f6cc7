package victorybot

import "embed"

// TemplateFS contains the embedded HTML templates used for rendering the chat page. The templates
// are organized in a directory structure that separates layouts from pages.
//
//go:embed templates/*
var TemplateFS embed.FS

// StaticFS contains the embedded static assets, namely the chat widget script and its stylesheet.
//
//go:embed static/*
var StaticFS embed.FS

// DefaultKnowledgeBase is the knowledge base the server falls back to when no external file is
// configured. It carries the product catalog, the company info entry, and the branch directory.
//
//go:embed knowledge_base.json
var DefaultKnowledgeBase []byte
