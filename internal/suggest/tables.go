package suggest

import "fmt"

// TableName identifies one of the four user-editable static tables.
type TableName string

const (
	TableHTMLTags       TableName = "html-tags"
	TableHTMLAttributes TableName = "html-attributes"
	TableCSSProperties  TableName = "css-properties"
	TableJSKeywords     TableName = "js-keywords"
)

// TableNames lists the tables in display order.
func TableNames() []TableName {
	return []TableName{TableHTMLTags, TableHTMLAttributes, TableCSSProperties, TableJSKeywords}
}

// ParseTableName validates a table name.
func ParseTableName(s string) (TableName, error) {
	for _, name := range TableNames() {
		if string(name) == s {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown suggestion table %q", s)
}

// Tables holds the ordered static suggestion tables.
type Tables struct {
	HTMLTags       []Suggestion
	HTMLAttributes []Suggestion
	CSSProperties  []Suggestion
	JSKeywords     []Suggestion
}

// Get returns the table called name.
func (t Tables) Get(name TableName) []Suggestion {
	switch name {
	case TableHTMLTags:
		return t.HTMLTags
	case TableHTMLAttributes:
		return t.HTMLAttributes
	case TableCSSProperties:
		return t.CSSProperties
	case TableJSKeywords:
		return t.JSKeywords
	}
	return nil
}

// With returns a copy of t with the table called name replaced.
func (t Tables) With(name TableName, entries []Suggestion) Tables {
	switch name {
	case TableHTMLTags:
		t.HTMLTags = entries
	case TableHTMLAttributes:
		t.HTMLAttributes = entries
	case TableCSSProperties:
		t.CSSProperties = entries
	case TableJSKeywords:
		t.JSKeywords = entries
	}
	return t
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		HTMLTags:       DefaultTable(TableHTMLTags),
		HTMLAttributes: DefaultTable(TableHTMLAttributes),
		CSSProperties:  DefaultTable(TableCSSProperties),
		JSKeywords:     DefaultTable(TableJSKeywords),
	}
}

// DefaultTable returns a fresh copy of one built-in table.
func DefaultTable(name TableName) []Suggestion {
	var src []Suggestion
	switch name {
	case TableHTMLTags:
		src = defaultTags
	case TableHTMLAttributes:
		src = defaultAttributes
	case TableCSSProperties:
		src = defaultProperties
	case TableJSKeywords:
		src = defaultKeywords
	}
	out := make([]Suggestion, len(src))
	copy(out, src)
	return out
}

func tag(name string) Suggestion {
	return Suggestion{Label: name, Value: "<" + name + ">$0</" + name + ">", Kind: KindTag}
}

func voidTag(name, value string) Suggestion {
	return Suggestion{Label: name, Value: value, Kind: KindTag, Detail: "void element"}
}

func attr(name string) Suggestion {
	return Suggestion{Label: name, Value: name + `="$0"`, Kind: KindAttribute}
}

func prop(name string) Suggestion {
	return Suggestion{Label: name, Value: name + ": $0;", Kind: KindProperty}
}

func keyword(name string) Suggestion {
	return Suggestion{Label: name, Value: name, Kind: KindKeyword}
}

func snippet(label, value, detail string) Suggestion {
	return Suggestion{Label: label, Value: value, Kind: KindSnippet, Detail: detail}
}

var defaultTags = []Suggestion{
	tag("html"), tag("head"), tag("title"), tag("body"),
	tag("header"), tag("nav"), tag("main"), tag("section"), tag("article"), tag("aside"), tag("footer"),
	tag("div"), tag("span"), tag("p"),
	{Label: "a", Value: `<a href="$0"></a>`, Kind: KindTag},
	tag("h1"), tag("h2"), tag("h3"), tag("h4"), tag("h5"), tag("h6"),
	tag("ul"), tag("ol"), tag("li"),
	tag("strong"), tag("em"), tag("code"), tag("pre"), tag("blockquote"),
	tag("form"), tag("label"), tag("button"), tag("select"), tag("option"), tag("textarea"),
	tag("table"), tag("thead"), tag("tbody"), tag("tr"), tag("th"), tag("td"),
	tag("canvas"), tag("video"), tag("audio"), tag("iframe"),
	tag("script"), tag("style"),
	voidTag("img", `<img src="$0" alt="" />`),
	voidTag("input", `<input type="$0" />`),
	voidTag("br", `<br />`),
	voidTag("hr", `<hr />`),
	voidTag("meta", `<meta name="$0" content="" />`),
	voidTag("link", `<link rel="stylesheet" href="$0" />`),
}

var defaultAttributes = []Suggestion{
	attr("id"), attr("class"), attr("style"), attr("title"),
	attr("href"), attr("src"), attr("alt"), attr("rel"), attr("target"),
	attr("type"), attr("name"), attr("value"), attr("placeholder"), attr("for"),
	attr("action"), attr("method"), attr("width"), attr("height"),
	attr("onclick"), attr("oninput"), attr("onchange"),
	attr("lang"), attr("charset"), attr("content"),
	{Label: "disabled", Value: "disabled", Kind: KindAttribute},
	{Label: "checked", Value: "checked", Kind: KindAttribute},
	{Label: "required", Value: "required", Kind: KindAttribute},
	{Label: "data-", Value: `data-$0=""`, Kind: KindAttribute},
	{Label: "aria-label", Value: `aria-label="$0"`, Kind: KindAttribute},
}

var defaultProperties = []Suggestion{
	prop("display"), prop("position"), prop("top"), prop("right"), prop("bottom"), prop("left"),
	prop("width"), prop("height"), prop("max-width"), prop("min-height"),
	prop("margin"), prop("padding"), prop("border"), prop("border-radius"), prop("box-sizing"),
	prop("color"), prop("background"), prop("background-color"), prop("opacity"),
	prop("font-family"), prop("font-size"), prop("font-weight"), prop("line-height"), prop("letter-spacing"),
	prop("text-align"), prop("text-decoration"), prop("white-space"),
	prop("flex"), prop("flex-direction"), prop("flex-wrap"), prop("justify-content"), prop("align-items"), prop("gap"),
	prop("grid-template-columns"), prop("grid-template-rows"),
	prop("overflow"), prop("z-index"), prop("cursor"),
	prop("transition"), prop("transform"), prop("animation"), prop("box-shadow"),
}

var defaultKeywords = []Suggestion{
	keyword("const"), keyword("let"), keyword("var"),
	snippet("function", "function $0() {\n}", "function declaration"),
	keyword("return"),
	snippet("if", "if ($0) {\n}", "if statement"),
	keyword("else"),
	snippet("for", "for (let i = 0; i < $0; i++) {\n}", "for loop"),
	snippet("while", "while ($0) {\n}", "while loop"),
	keyword("switch"), keyword("case"), keyword("break"), keyword("continue"), keyword("default"),
	keyword("class"), keyword("extends"), keyword("new"), keyword("this"),
	keyword("async"), keyword("await"),
	snippet("try", "try {\n\t$0\n} catch (err) {\n}", "try/catch"),
	keyword("throw"), keyword("typeof"), keyword("instanceof"),
	keyword("import"), keyword("export"),
	keyword("true"), keyword("false"), keyword("null"), keyword("undefined"),
	snippet("console", "console.log($0);", "log to console"),
	snippet("querySelector", "querySelector('$0')", "DOM lookup"),
	snippet("addEventListener", "addEventListener('$0', (event) => {\n})", "DOM event"),
}
