package content

import (
	"path"
	"strings"
)

// Rule describes the evidence that places an item in a category.
type Rule struct {
	Category Category
	Tag      string
	Prefix   string
	Dir      string
}

// Rules is evaluated in order; the first rule with any matching signal wins
// and items matching none are articles.
var Rules = []Rule{
	{Category: Interview, Tag: "ama", Prefix: "ama-", Dir: "amas"},
	{Category: PressRelease, Tag: "press-release", Prefix: "pr-", Dir: "press-releases"},
}

type signal func(r Rule, it Item) bool

// Each signal is skipped when its rule field is empty, so a rule may name
// any subset of tag, prefix and directory.
var signals = []signal{
	func(r Rule, it Item) bool { return r.Tag != "" && it.HasTag(r.Tag) },
	func(r Rule, it Item) bool { return r.Prefix != "" && strings.HasPrefix(it.ID, r.Prefix) },
	func(r Rule, it Item) bool { return r.Dir != "" && inDir(path.Dir(it.SourceLocation), r.Dir) },
	func(r Rule, it Item) bool {
		dir, _, nested := strings.Cut(it.ID, "/")
		return r.Dir != "" && nested && dir == r.Dir
	},
}

// Classify derives the category of it from its tags, id and location.
func Classify(it Item) Category {
	return ClassifyWith(Rules, it)
}

// ClassifyWith is Classify over a custom rule table.
func ClassifyWith(rules []Rule, it Item) Category {
	for _, r := range rules {
		for _, match := range signals {
			if match(r, it) {
				return r.Category
			}
		}
	}
	return Article
}

// Is reports whether it classifies as c.
func Is(it Item, c Category) bool {
	return Classify(it) == c
}

func inDir(dir, name string) bool {
	if dir == "" || dir == "." {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if seg == name {
			return true
		}
	}
	return false
}
