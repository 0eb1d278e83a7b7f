package pathbuilder

import (
	"strings"

	"github.com/petrarca/component-resolver/internal/resolver/naming"
	"github.com/petrarca/component-resolver/internal/types"
)

// MaxOwnerHops bounds every walk along render node parent links
const MaxOwnerHops = 10

// RenderPath collects the named owners from node up its parent chain (at most
// MaxOwnerHops nodes), ordered outermost first, with wrapper names filtered out.
func RenderPath(node *types.RenderNode, filter *naming.WrapperFilter) []string {
	var names []string
	visited := make(map[*types.RenderNode]bool)
	for hops := 0; node != nil && hops < MaxOwnerHops && !visited[node]; hops++ {
		visited[node] = true
		if name := naming.OwnerName(node.Type); name != "" {
			names = append(names, name)
		}
		node = node.Parent
	}
	reverse(names)
	return filter.Apply(names)
}

// Tag returns the bare tag segment of an element
func Tag(el types.Element) string {
	if tag := el.TagName(); tag != "" {
		return tag
	}
	return "element"
}

// TagWithClasses returns "tag.class1.class2"
func TagWithClasses(el types.Element) string {
	var b strings.Builder
	b.WriteString(Tag(el))
	for _, c := range el.Classes() {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}

// Describe returns the full markup description "tag#id.class1.class2"
func Describe(el types.Element) string {
	var b strings.Builder
	b.WriteString(Tag(el))
	if id := el.ID(); id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	for _, c := range el.Classes() {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}

// Join concatenates component segments and markup segments into a hybrid path
func Join(components, markup []string) []string {
	path := make([]string, 0, len(components)+len(markup))
	path = append(path, components...)
	return append(path, markup...)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Reverse reverses segments in place and returns them
func Reverse(s []string) []string {
	reverse(s)
	return s
}
