package gamedata

import (
	"strconv"
	"strings"
)

var slugReplacer = strings.NewReplacer(
	" ", "-",
	"'", "",
	"&", "and",
	".", "",
	",", "",
	"(", "",
	")", "",
	"/", "-",
	"\\", "-",
)

// SlugContext hands out ids unique within one import of one entity kind.
// It is not safe for concurrent use.
type SlugContext struct {
	used map[string]struct{}
}

func NewSlugContext() *SlugContext {
	return &SlugContext{used: make(map[string]struct{})}
}

// Slug derives an id from name, suffixing "-1", "-2", ... when the id was
// already handed out.
func (c *SlugContext) Slug(name string) string {
	base := Slugify(name)
	slug := base
	for i := 1; ; i++ {
		if _, taken := c.used[slug]; !taken {
			break
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	c.used[slug] = struct{}{}
	return slug
}

// Slugify lowercases name and reduces it to a URL-safe id. Blank names
// become "unknown".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return "unknown"
	}
	s = slugReplacer.Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}
