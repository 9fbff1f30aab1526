package content

import "github.com/eringen/pressroom/frontmatter"

// HeaderFields projects it back into an ordered header. Images equal to
// defaultImage and the system byline are left out so that rewriting a file
// does not bake defaults into it.
func HeaderFields(it Item, defaultImage string) []frontmatter.Field {
	fields := []frontmatter.Field{{Key: "title", Value: it.Title}}
	if it.Excerpt != "" {
		fields = append(fields, frontmatter.Field{Key: "excerpt", Value: it.Excerpt})
	}
	if it.CoverImage != "" && it.CoverImage != defaultImage {
		fields = append(fields, frontmatter.Field{Key: "coverImage", Value: it.CoverImage})
	}
	fields = append(fields, frontmatter.Field{Key: "date", Value: it.Date})
	if it.Author != SystemAuthor {
		fields = append(fields, frontmatter.Field{Key: "author", Value: authorFields(it.Author)})
	}
	if it.Interviewee != nil {
		fields = append(fields, frontmatter.Field{Key: "interviewee", Value: authorFields(*it.Interviewee)})
	}
	if it.SocialImage != "" && it.SocialImage != defaultImage {
		fields = append(fields, frontmatter.Field{Key: "ogImage", Value: []frontmatter.Field{{Key: "url", Value: it.SocialImage}}})
	}
	fields = append(fields, frontmatter.Field{Key: "topics", Value: append([]string{}, it.Tags...)})
	return fields
}

func authorFields(a Author) []frontmatter.Field {
	out := []frontmatter.Field{{Key: "name", Value: a.Name}}
	if a.Picture != "" {
		out = append(out, frontmatter.Field{Key: "picture", Value: a.Picture})
	}
	return out
}
