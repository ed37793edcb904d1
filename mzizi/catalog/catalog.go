// mzizi/catalog/catalog.go
package catalog

import (
	"fmt"
	"os"
	"strings"

	"mzizi/mzizi/utils/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Tool is one entry of the advisor tool catalog. Selecting a tool starts a
// chat with a domain-specific welcome and the tool's title as session title.
type Tool struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

// Welcome is the seed message a tool-context session opens with.
func (t Tool) Welcome() string {
	return fmt.Sprintf("Welcome to the %s. How can I help you with %s today?",
		t.Title, strings.ToLower(t.Desc))
}

type Catalog struct {
	tools []Tool
}

// Defaults mirrors the built-in tool set; a YAML file can override it.
func Defaults() *Catalog {
	return &Catalog{tools: []Tool{
		{ID: "pricing", Title: "Pricing Calculator", Desc: "Pricing your products for profit"},
		{ID: "marketing", Title: "Marketing Helper", Desc: "Finding and keeping customers"},
		{ID: "cashflow", Title: "Cash Flow Coach", Desc: "Tracking money in and out"},
		{ID: "growth", Title: "Growth Planner", Desc: "Planning your next stage of growth"},
	}}
}

// Load reads a tool catalog from a YAML file. A missing or unreadable file
// falls back to the defaults with a log line; catalog management itself is
// out of scope, this is read-only configuration.
func Load(path string) *Catalog {
	if path == "" {
		return Defaults()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logging.AppLogger.Warn("tool catalog not readable, using defaults",
			zap.String("path", path), zap.Error(err))
		return Defaults()
	}
	var doc struct {
		Tools []Tool `yaml:"tools"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logging.ErrorLogger.Error("tool catalog parse failed, using defaults",
			zap.String("path", path), zap.Error(err))
		return Defaults()
	}
	if len(doc.Tools) == 0 {
		return Defaults()
	}
	return &Catalog{tools: doc.Tools}
}

func (c *Catalog) Find(id string) (Tool, bool) {
	for _, t := range c.tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

func (c *Catalog) Tools() []Tool {
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}
