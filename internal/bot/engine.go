// Package bot implements the deterministic answer engine behind the chat endpoint. Queries are
// routed through a fixed list of intents (greetings, company info, categories, locations,
// category browsing, fuzzy product search) and the first hit wins. Replies are composed as
// markdown; callers decide how to render them.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/VickGidi/Victory-furniture-bot/internal/kb"
)

// FallbackLLM answers queries no intent rule could handle. It is optional; without one the
// engine produces a canned help reply instead.
type FallbackLLM interface {
	Respond(ctx context.Context, message string) (string, error)
}

// matchThreshold is the minimum fuzzy score for a product match to be trusted.
const matchThreshold = 0.62

// maxCategoryPicks caps how many products a category listing shows.
const maxCategoryPicks = 6

const (
	facebookURL  = "https://www.facebook.com/people/Victory-Furniture-Ke/61562878287913/"
	instagramURL = "https://www.instagram.com/victory_furniture_ke/"
)

type synonym struct {
	key       string
	canonical string
}

// categorySynonyms maps shopper vocabulary onto catalog categories. Order matters: the first
// hit in the query wins.
var categorySynonyms = []synonym{
	{"living", "living room"},
	{"living-room", "living room"},
	{"sitting", "living room"},
	{"lounge", "living room"},
	{"sofa", "living room"},
	{"couch", "living room"},
	{"decor", "home decor"},
	{"décor", "home decor"},
	{"home decor", "home decor"},
	{"office", "office"},
	{"bed", "bedroom"},
	{"bedroom", "bedroom"},
	{"dine", "dining"},
	{"dining", "dining"},
	{"outdoor", "outdoor"},
	{"garden", "outdoor"},
}

// cityAliases resolves landmark and mall names to the city whose branch should answer.
var cityAliases = []struct {
	city    string
	aliases []string
}{
	{"nairobi", []string{"nairobi", "ciata", "kiambu"}},
	{"nakuru", []string{"nakuru", "nmall", "vicmark", "kenyatta", "government road"}},
	{"eldoret", []string{"eldoret", "rupa", "rupas", "rupas mall"}},
	{"meru", []string{"meru", "greencity", "green city"}},
}

var (
	greetingWords   = []string{"hi", "hello", "hey", "habari", "mambo", "niaje", "greetings"}
	greetingPhrases = []string{"good morning", "good afternoon", "good evening"}
	aboutPhrases    = []string{"who are you", "what is victory furniture", "victory furniture", "about us"}
	locationWords   = []string{"shop", "location", "branch", "contact", "where", "find"}
	categoryWords   = []string{"category", "categories", "browse"}
)

// Engine is the rule-based responder. It owns a parsed knowledge base and, optionally, a
// fallback LLM consulted for queries no rule covers.
type Engine struct {
	kb       *kb.KnowledgeBase
	fallback FallbackLLM
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFallback installs an LLM consulted when no intent rule matches. Errors from the LLM are
// swallowed; the canned help reply is used instead so the endpoint never fails.
func WithFallback(llm FallbackLLM) Option {
	return func(e *Engine) { e.fallback = llm }
}

// WithLogger sets the structured logger the engine reports through.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an Engine over the given knowledge base.
func NewEngine(base *kb.KnowledgeBase, opts ...Option) *Engine {
	e := &Engine{
		kb:     base,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reply produces the markdown answer for one user message. An empty or whitespace-only message
// yields the greeting. Reply never returns an error for rule-covered intents; the error return
// exists for responder implementations that can fail.
func (e *Engine) Reply(ctx context.Context, message string) (string, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return e.greeting(), nil
	}
	q := normalize(msg)

	switch {
	case e.isGreeting(q):
		return e.greeting(), nil
	case e.isAbout(q):
		return e.about(), nil
	case e.wantsCategories(q):
		return e.categoryList(), nil
	case hasTokenPrefix(q, locationWords):
		if b, ok := e.branchForQuery(q); ok {
			return fmt.Sprintf(
				"Hmm… I’m not sure about that one yet, but our team in %s can help. "+
					"Find them at %s — call %s. They’ll be happy to assist!",
				b.City, b.Place, b.Tel,
			), nil
		}
		return "I’m not too sure about that yet, but no worries — you can reach any of our branches below:\n\n" +
			e.directory(), nil
	}

	for _, syn := range categorySynonyms {
		if strings.Contains(q, syn.key) || strings.Contains(q, syn.canonical) {
			return e.categoryPicks(syn.canonical), nil
		}
	}

	if item, score, ok := e.bestMatch(q); ok {
		e.logger.Debug("Fuzzy product match",
			slog.String("query", q),
			slog.String("product", item.Name),
			slog.Float64("score", score))
		return productReply(item), nil
	}

	return e.fallbackReply(ctx, msg), nil
}

func (e *Engine) isGreeting(q string) bool {
	set := tokenSet(q)
	for _, w := range greetingWords {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return containsAny(q, greetingPhrases)
}

func (e *Engine) isAbout(q string) bool {
	if _, ok := tokenSet(q)["about"]; ok {
		return true
	}
	return containsAny(q, aboutPhrases)
}

func (e *Engine) wantsCategories(q string) bool {
	return hasTokenPrefix(q, categoryWords) || strings.Contains(q, "show products")
}

// hasTokenPrefix reports whether any query token starts with one of the keywords, so plural
// forms like "branches" or "locations" still trigger.
func hasTokenPrefix(q string, keywords []string) bool {
	for _, t := range tokens(q) {
		for _, w := range keywords {
			if strings.HasPrefix(t, w) {
				return true
			}
		}
	}
	return false
}

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

func (e *Engine) greeting() string {
	return "Hi there! 👋 Welcome to Victory Furniture. " +
		"Tell me what you’re shopping for—dining sets, bedroom pieces, decor, or outdoor comfort—and " +
		"I’ll show you great options."
}

func (e *Engine) about() string {
	info := e.kb.Info
	if info == nil {
		return "We’re Victory Furniture—bringing style, comfort, and value to every room in your home."
	}
	name := info.Name
	if name == "" {
		name = "About Us"
	}
	url := info.URL
	if url == "" {
		url = "/"
	}
	return fmt.Sprintf("%s Learn more here: [%s](%s)", info.Description, name, url)
}

func (e *Engine) categoryList() string {
	cats := make([]string, len(e.kb.Categories))
	for i, c := range e.kb.Categories {
		cats[i] = titleCase(c)
	}
	return "You can browse by category: " + strings.Join(cats, ", ") + "."
}

func (e *Engine) branchForQuery(q string) (kb.Branch, bool) {
	for _, ca := range cityAliases {
		for _, alias := range ca.aliases {
			if !strings.Contains(q, alias) {
				continue
			}
			for _, b := range e.kb.Branches {
				if strings.Contains(strings.ToLower(b.City), ca.city) ||
					strings.Contains(strings.ToLower(b.Place), ca.city) {
					return b, true
				}
			}
		}
	}
	return kb.Branch{}, false
}

// directory renders the full branch listing, grouped by city in file order, followed by the
// social media links.
func (e *Engine) directory() string {
	var sb strings.Builder
	var lastCity string
	for _, b := range e.kb.Branches {
		if b.City != lastCity {
			if lastCity != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("**%s**\n", b.City))
			lastCity = b.City
		}
		sb.WriteString(fmt.Sprintf("- 📍 %s — 📞 %s\n", b.Place, b.Tel))
	}
	sb.WriteString("\n**Social Media**\n")
	sb.WriteString(fmt.Sprintf("- 🌐 [Facebook](%s)\n", facebookURL))
	sb.WriteString(fmt.Sprintf("- 🌐 [Instagram](%s)", instagramURL))
	return sb.String()
}

func (e *Engine) categoryPicks(canonical string) string {
	prods := e.kb.InCategory(canonical)
	if len(prods) == 0 {
		return "That category looks empty right now—can I suggest Dining or Bedroom instead?"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Lovely choice! Here are popular picks in %s:\n", titleCase(canonical)))
	for i, p := range prods {
		if i == maxCategoryPicks {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s — [View](%s)\n", p.Name, p.URL))
	}
	if extra := len(prods) - maxCategoryPicks; extra > 0 {
		sb.WriteString(fmt.Sprintf(" (+%d more on our site)", extra))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (e *Engine) bestMatch(q string) (kb.Entry, float64, bool) {
	var best kb.Entry
	bestScore := 0.0
	for _, p := range e.kb.Products {
		name := strings.ToLower(p.Name)
		text := strings.ToLower(p.Name + " " + p.Category + " " + p.Description)
		score := math.Max(similarity(q, name), tokenSetRatio(q, name)) + 0.35*tokenSetRatio(q, text)
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	if bestScore >= matchThreshold {
		return best, bestScore, true
	}
	return kb.Entry{}, 0, false
}

func productReply(item kb.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You’ll love our **%s**.", item.Name))
	if item.Description != "" {
		sb.WriteString(" " + item.Description)
	}
	if item.Price != "" {
		sb.WriteString(fmt.Sprintf(" Price: %s.", item.Price))
	}
	sb.WriteString(fmt.Sprintf(" See more: [%s](%s)", item.Name, item.URL))
	return sb.String()
}

func (e *Engine) fallbackReply(ctx context.Context, msg string) string {
	if e.fallback != nil {
		resp, err := e.fallback.Respond(ctx, msg)
		if err == nil && strings.TrimSpace(resp) != "" {
			return resp
		}
		if err != nil {
			e.logger.Error("Fallback LLM failed", slog.String("err", err.Error()))
		}
	}

	var cats strings.Builder
	for _, c := range e.kb.Categories {
		cats.WriteString(fmt.Sprintf("- %s\n", titleCase(c)))
	}

	return "I’m not completely sure about that yet — but I can help you in two ways:\n\n" +
		"1️⃣ Browse products by category:\n" + cats.String() +
		"\n2️⃣ Reach one of our friendly branch teams:\n\n" + e.directory()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
