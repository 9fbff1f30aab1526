package content

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want Category
	}{
		{"plain article", Item{ID: "hello"}, Article},
		{"ama tag", Item{ID: "chat", Tags: []string{"ama"}}, Interview},
		{"ama tag with case and spaces", Item{ID: "chat", Tags: []string{" AMA "}}, Interview},
		{"ama prefix", Item{ID: "ama-satoshi"}, Interview},
		{"amas directory", Item{ID: "satoshi", SourceLocation: "amas/satoshi"}, Interview},
		{"nested amas directory", Item{ID: "satoshi", SourceLocation: "archive/amas/satoshi"}, Interview},
		{"amas id segment", Item{ID: "amas/satoshi"}, Interview},
		{"file named like the directory", Item{ID: "amas", SourceLocation: "amas"}, Article},
		{"directory name as substring", Item{ID: "x", SourceLocation: "llamas/x"}, Article},
		{"press release tag", Item{ID: "launch", Tags: []string{"press-release"}}, PressRelease},
		{"press release prefix", Item{ID: "pr-launch"}, PressRelease},
		{"press releases directory", Item{ID: "launch", SourceLocation: "press-releases/launch"}, PressRelease},
		{"interview wins over press release", Item{ID: "pr-launch", Tags: []string{"ama"}}, Interview},
		{"unrelated tags", Item{ID: "x", Tags: []string{"bitcoin", "amas"}}, Article},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.item); got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyWithCustomRules(t *testing.T) {
	rules := []Rule{{Category: PressRelease, Tag: "announcement", Prefix: "ann-", Dir: "news"}}
	if got := ClassifyWith(rules, Item{ID: "x", Tags: []string{"Announcement"}}); got != PressRelease {
		t.Errorf("ClassifyWith = %q, want %q", got, PressRelease)
	}
	if got := ClassifyWith(rules, Item{ID: "ama-x"}); got != Article {
		t.Errorf("ClassifyWith = %q, want %q", got, Article)
	}
}

func TestClassifyWithPartialRules(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		item  Item
		want  Category
	}{
		{
			name:  "no prefix does not match every id",
			rules: []Rule{{Category: PressRelease, Tag: "press-release", Dir: "press-releases"}},
			item:  Item{ID: "hello-world"},
			want:  Article,
		},
		{
			name:  "no dir does not match rooted ids",
			rules: []Rule{{Category: Interview, Tag: "ama"}},
			item:  Item{ID: "/x", SourceLocation: "/x"},
			want:  Article,
		},
		{
			name:  "no tag does not match blank tags",
			rules: []Rule{{Category: Interview, Prefix: "ama-"}},
			item:  Item{ID: "x", Tags: []string{" "}},
			want:  Article,
		},
		{
			name:  "dir only still matches",
			rules: []Rule{{Category: PressRelease, Dir: "press-releases"}},
			item:  Item{ID: "launch", SourceLocation: "press-releases/launch"},
			want:  PressRelease,
		},
		{
			name:  "empty rule matches nothing",
			rules: []Rule{{Category: Interview}},
			item:  Item{ID: "ama-x", Tags: []string{"ama"}, SourceLocation: "amas/ama-x"},
			want:  Article,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyWith(tt.rules, tt.item); got != tt.want {
				t.Errorf("ClassifyWith(%+v) = %q, want %q", tt.item, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"posts", Article, true},
		{"AMAs", Interview, true},
		{"press-release", PressRelease, true},
		{"videos", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategorySection(t *testing.T) {
	for _, c := range Categories {
		back, ok := ParseCategory(c.Section())
		if !ok || back != c {
			t.Errorf("ParseCategory(%q) = %q, want %q", c.Section(), back, c)
		}
	}
}
