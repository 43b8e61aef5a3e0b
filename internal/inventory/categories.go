package inventory

import "strings"

// CategoryOther is the fallback category for unrecognized extensions.
const CategoryOther = "other"

// categoryOrder fixes the precedence when an extension could belong to
// more than one category (".json" is both config and data; config wins).
var categoryOrder = []string{
	"python",
	"javascript",
	"web",
	"config",
	"markdown",
	"data",
	"image",
	"archive",
}

// baseCategories is the built-in extension table. Inventories copy it
// at construction so per-instance overrides never leak between objects.
var baseCategories = map[string][]string{
	"python":     {".py"},
	"javascript": {".js", ".ts", ".jsx", ".tsx"},
	"web":        {".html", ".css", ".scss", ".less"},
	"config":     {".json", ".yaml", ".yml", ".toml", ".ini", ".cfg"},
	"markdown":   {".md", ".rst", ".txt"},
	"data":       {".csv", ".xml", ".sql"},
	"image":      {".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico"},
	"archive":    {".zip", ".tar", ".gz", ".rar", ".7z"},
}

// classifier resolves extensions to categories via a flat lookup map
// built once per Inventory.
type classifier struct {
	byExt map[string]string
}

// newClassifier builds the lookup table from the base categories plus
// any extra extension mappings. Extras override base entries.
func newClassifier(extra map[string]string) *classifier {
	byExt := make(map[string]string)
	for _, cat := range categoryOrder {
		for _, ext := range baseCategories[cat] {
			if _, seen := byExt[ext]; !seen {
				byExt[ext] = cat
			}
		}
	}
	for ext, cat := range extra {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		byExt[ext] = cat
	}
	return &classifier{byExt: byExt}
}

// Classify returns the category for a lowercase or mixed-case
// extension, or CategoryOther when the extension is unknown.
func (c *classifier) Classify(ext string) string {
	if cat, ok := c.byExt[strings.ToLower(ext)]; ok {
		return cat
	}
	return CategoryOther
}
