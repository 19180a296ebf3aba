package uid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xamlNS = "http://schemas.microsoft.com/winfx/2006/xaml"

func scan(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Scan(content, DefaultOptions())
	require.NoError(t, err)
	return doc
}

func TestScan_InsertionPoints(t *testing.T) {
	content := "<Grid xmlns:x=\"" + xamlNS + "\">\n" +
		"  <Button />\n" +
		"  <TextBlock Text=\"hi\" x:Uid=\"title\"/>\n" +
		"</Grid>\n"

	doc := scan(t, content)
	require.Len(t, doc.Sites, 3)

	grid := doc.Sites[0]
	assert.Equal(t, "Grid", grid.Element)
	assert.Equal(t, Position{Line: 1, Column: 7}, grid.Position)
	assert.Equal(t, SpaceAfter, grid.Spacing)
	assert.Equal(t, "x", grid.Prefix, "own declaration is in scope")
	assert.False(t, grid.HasAttribute())

	button := doc.Sites[1]
	assert.Equal(t, Position{Line: 2, Column: 10}, button.Position)
	assert.Equal(t, SpaceBefore, button.Spacing)

	text := doc.Sites[2]
	assert.True(t, text.HasValue)
	assert.Equal(t, "title", text.Value)
	assert.Equal(t, "x:Uid", text.AttrName)
	assert.Equal(t, byte('"'), text.Quote)
	assert.Equal(t, Position{Line: 3, Column: 24}, text.Position)
	assert.Empty(t, text.Prefix, "prefix is only recorded for missing identifiers")

	assert.True(t, doc.HasRoot)
	assert.Equal(t, Position{Line: 1, Column: 6}, doc.Root)
	assert.Contains(t, doc.Declared, "x")
}

func TestScan_SkipsPropertyElementsAndNonElements(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE Window [ <!ENTITY e "v"> ]>
<!-- <Ignored/> -->
<Window>
  <Button.Content><![CDATA[<NotAnElement/>]]></Button.Content>
  <?pi <Nope/> ?>
  <local:Button.Style />
</Window>`

	doc := scan(t, content)
	require.Len(t, doc.Sites, 1)
	assert.Equal(t, "Window", doc.Sites[0].Element)
	assert.Equal(t, Position{Line: 4, Column: 8}, doc.Root)
}

func TestScan_FriendlyName(t *testing.T) {
	tests := []struct {
		name    string
		element string
		want    string
	}{
		{"unprefixed", `<A Name="Header"/>`, "Header"},
		{"reserved namespace", `<A x:Name="Header"/>`, "Header"},
		{"foreign namespace ignored", `<A y:Name="Header"/>`, ""},
		{"entities decoded", `<A Name="a&amp;b"/>`, "a&b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `<Root xmlns:x="` + xamlNS + `" xmlns:y="urn:y" x:Uid="r">` + tt.element + `</Root>`
			doc := scan(t, content)
			require.Len(t, doc.Sites, 2)
			assert.Equal(t, tt.want, doc.Sites[1].Candidate)
		})
	}
}

func TestScan_IdentifierNeedsReservedNamespace(t *testing.T) {
	content := `<Root xmlns:x="` + xamlNS + `" xmlns:y="urn:y" x:Uid="r">
  <A Uid="plain"/>
  <B y:Uid="foreign"/>
  <C x:Uid="ok"/>
</Root>`

	doc := scan(t, content)
	require.Len(t, doc.Sites, 4)
	assert.False(t, doc.Sites[1].HasValue)
	assert.False(t, doc.Sites[2].HasValue)
	assert.True(t, doc.Sites[3].HasValue)
	assert.Equal(t, "ok", doc.Sites[3].Value)
}

func TestScan_PrefixResolution(t *testing.T) {
	content := `<Root xmlns:x="` + xamlNS + `">
  <Panel xmlns:x="urn:other">
    <Button/>
  </Panel>
  <Panel xmlns:p="` + xamlNS + `">
    <Label/>
  </Panel>
  <Check/>
</Root>`

	doc := scan(t, content)
	require.Len(t, doc.Sites, 6)

	byElement := func(i int) Site { return doc.Sites[i] }
	assert.Equal(t, "x", byElement(0).Prefix)
	assert.Empty(t, byElement(1).Prefix, "x is rebound to another namespace")
	assert.Empty(t, byElement(2).Prefix, "outer x is shadowed")
	assert.Equal(t, "p", byElement(3).Prefix)
	assert.Equal(t, "p", byElement(4).Prefix)
	assert.Equal(t, "x", byElement(5).Prefix)

	assert.Contains(t, doc.Declared, "x")
	assert.Contains(t, doc.Declared, "p")
}

func TestScan_UndeclaredPrefixesAreReserved(t *testing.T) {
	doc := scan(t, `<Root><local:A x:Uid="a" xml:lang="en" d:Width="3"/></Root>`)

	assert.Contains(t, doc.Declared, "local")
	assert.Contains(t, doc.Declared, "x")
	assert.Contains(t, doc.Declared, "d")
	assert.NotContains(t, doc.Declared, "xml")

	require.Len(t, doc.Sites, 2)
	assert.False(t, doc.Sites[1].HasAttribute(), "unbound x is not the reserved namespace")
}

func TestScan_PositionsAreMonotonic(t *testing.T) {
	content := "<A>\r\n<B x:Uid=\"1\" xmlns:x=\"" + xamlNS + "\"/>\r<C/>\n<D\n  Name=\"d\"/></A>"

	doc := scan(t, content)
	require.Len(t, doc.Sites, 4)
	for i := 1; i < len(doc.Sites); i++ {
		assert.True(t, doc.Sites[i-1].Position.Before(doc.Sites[i].Position),
			"site %d (%s) should precede site %d (%s)", i-1, doc.Sites[i-1].Position, i, doc.Sites[i].Position)
	}
	assert.Equal(t, Position{Line: 5, Column: 3}, doc.Sites[3].Position)
}

func TestScan_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"text only", "just text"},
		{"unclosed element", "<Grid>"},
		{"mismatched end tag", "<Grid></Page>"},
		{"unexpected end tag", "<Grid/></Grid>"},
		{"unquoted value", "<Grid a=b/>"},
		{"missing equals", `<Grid a "b"/>`},
		{"unterminated value", `<Grid a="b/>`},
		{"unterminated tag", `<Grid a="b"`},
		{"unterminated comment", "<Grid/><!-- x"},
		{"duplicate attribute", `<Grid xmlns:x="` + xamlNS + `" x:Uid="1" x:Uid="2"/>`},
		{"attributes not separated", `<Grid a="1"b="2"/>`},
		{"bad entity in identifier", `<Grid xmlns:x="` + xamlNS + `" x:Uid="a&bogus;"/>`},
		{"missing element name", "< Grid/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.content, DefaultOptions())
			require.Error(t, err)
			var malformedErr *MalformedDocumentError
			assert.True(t, errors.As(err, &malformedErr), "expected MalformedDocumentError, got %T", err)
		})
	}
}

func TestScan_MalformedReportsLocation(t *testing.T) {
	_, err := Scan("<Grid>\n  <Button>\n</Grid>", DefaultOptions())
	require.Error(t, err)

	var malformedErr *MalformedDocumentError
	require.True(t, errors.As(err, &malformedErr))
	assert.Equal(t, Position{Line: 3, Column: 1}, malformedErr.Position)
	assert.Contains(t, malformedErr.Error(), "does not match")
	assert.Contains(t, malformedErr.Error(), "Hint:")
}
