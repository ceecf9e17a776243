package menu

import "go-hr/pkg/menutree"

// Menu persists as a flat menutree.Node; nesting only exists on the wire.
type Menu = menutree.Node

// MenuView is the nested shape the sidebar consumes.
type MenuView struct {
	Menu
	Children []MenuView `json:"children"`
}

// viewTree converts an arena into the nested wire shape.
func viewTree(t *menutree.Tree) []MenuView {
	var build func(id string) MenuView
	build = func(id string) MenuView {
		entry := t.Node(id)
		v := MenuView{Menu: entry.Node, Children: []MenuView{}}
		for _, childID := range entry.Children {
			v.Children = append(v.Children, build(childID))
		}
		return v
	}
	views := []MenuView{}
	for _, rootID := range t.Roots() {
		views = append(views, build(rootID))
	}
	return views
}
