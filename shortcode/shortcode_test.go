package shortcode

import (
	"strings"
	"testing"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"captioned image",
			`{{image src="/assets/a.jpg" caption="Fish & chips"}}`,
			"<figure>\n<img src=\"/assets/a.jpg\" alt=\"Fish &amp; chips\" />\n<figcaption>Fish &amp; chips</figcaption>\n</figure>",
		},
		{
			"bare image",
			`Look: {{image src="https://cdn.example.com/b.png"}} here`,
			"Look: ![](https://cdn.example.com/b.png) here",
		},
		{
			"image with extra attributes",
			`{{image src="/a.jpg" width="300"}}`,
			"![](/a.jpg)",
		},
		{
			"embed",
			`{{embed url="https://www.youtube.com/embed/abc"}}`,
			"<div class=\"embed-container\">\n<iframe src=\"https://www.youtube.com/embed/abc\" frameborder=\"0\" allowfullscreen></iframe>\n</div>",
		},
		{
			"code",
			"{{code language=\"go\"}}\nfmt.Println(1)\n{{/code}}",
			"```go\nfmt.Println(1)\n```",
		},
		{
			"warning notice",
			`{{notice type="warning"}}Be careful{{/notice}}`,
			"<div class=\"warning-notice\">\nBe careful\n</div>",
		},
		{
			"unknown notice type",
			`{{notice type="shout"}}Hey{{/notice}}`,
			"<div class=\"notice\">\nHey\n</div>",
		},
		{
			"adjacent notices stay separate",
			`{{notice type="info"}}A{{/notice}} and {{notice type="tip"}}B{{/notice}}`,
			"<div class=\"info-notice\">\nA\n</div> and <div class=\"tip-notice\">\nB\n</div>",
		},
		{
			"adjacent images stay separate",
			`{{image src="/a.jpg"}}{{image src="/b.jpg"}}`,
			"![](/a.jpg)![](/b.jpg)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.input); got != tt.want {
				t.Errorf("Transform(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransformLeavesMalformedShortcodes(t *testing.T) {
	tests := []string{
		`{{notice type="info"}}never closed`,
		`{{code language="go"}}fmt.Println(1)`,
		`{{image caption="no source"}}`,
		`{{image src="javascript:alert(1)"}}`,
		`{{image src="javascript:alert(1)" caption="x"}}`,
		`{{embed url="data:text/html,hi"}}`,
		`{{image src="/a.jpg"`,
		`{{unknown thing}}`,
	}
	for _, input := range tests {
		if got := Transform(input); got != input {
			t.Errorf("Transform(%q) = %q, want it unchanged", input, got)
		}
	}
}

func TestTransformPlainTextUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"# Title\n\nJust *markdown* with a [link](/x/).",
		"Template braces { like } this {not} a shortcode",
	}
	for _, input := range inputs {
		if got := Transform(input); got != input {
			t.Errorf("Transform(%q) = %q, want it unchanged", input, got)
		}
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	input := strings.Join([]string{
		`{{image src="/a.jpg" caption="A"}}`,
		`{{embed url="https://example.com/e"}}`,
		"{{code language=\"sh\"}}echo {{/code}}",
		`{{notice type="error"}}Oops{{/notice}}`,
		`{{image src="javascript:x"}}`,
	}, "\n\n")
	once := Transform(input)
	if twice := Transform(once); twice != once {
		t.Errorf("second pass changed the output:\n  once:  %q\n  twice: %q", once, twice)
	}
}

func TestTransformCodeKeepsBodyLiteral(t *testing.T) {
	got := Transform("{{code language=\"html\"}}<b>{{/code}}")
	if got != "```html\n<b>\n```" {
		t.Errorf("got %q", got)
	}
}

func TestTransformDoesNotRewriteEarlierOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "notice inside code stays literal",
			input: `{{code language="md"}}{{notice type="info"}}x{{/notice}}{{/code}}`,
			want:  "```md\n{{notice type=\"info\"}}x{{/notice}}\n```",
		},
		{
			name:  "code inside notice is still expanded",
			input: "{{notice type=\"tip\"}}{{code language=\"sh\"}}ls{{/code}}{{/notice}}",
			want:  "<div class=\"tip-notice\">\n```sh\nls\n```\n</div>",
		},
		{
			name:  "image inside notice is still expanded",
			input: `{{notice type="info"}}{{image src="/a.jpg"}}{{/notice}}`,
			want:  "<div class=\"info-notice\">\n![](/a.jpg)\n</div>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.input); got != tt.want {
				t.Errorf("Transform(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransformUnterminatedOpenerStaysLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "code",
			input: "{{code language=\"go\"}}broken\n\n{{code language=\"py\"}}print(1){{/code}}",
			want:  "{{code language=\"go\"}}broken\n\n```py\nprint(1)\n```",
		},
		{
			name:  "notice",
			input: "{{notice type=\"warning\"}}open\n\n{{notice type=\"info\"}}closed{{/notice}}",
			want:  "{{notice type=\"warning\"}}open\n\n<div class=\"info-notice\">\nclosed\n</div>",
		},
		{
			name:  "closer after both openers belongs to the second",
			input: "{{code language=\"go\"}}a{{code language=\"go\"}}b{{/code}} tail",
			want:  "{{code language=\"go\"}}a```go\nb\n``` tail",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.input); got != tt.want {
				t.Errorf("Transform(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransformKeepsNulBytes(t *testing.T) {
	input := "a\x000\x00b {{notice type=\"info\"}}x{{/notice}}"
	want := "a\x000\x00b <div class=\"info-notice\">\nx\n</div>"
	if got := Transform(input); got != want {
		t.Errorf("Transform(%q) = %q, want %q", input, got, want)
	}
}
