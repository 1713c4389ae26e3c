package template

type nodeKind int

const (
	kindElement nodeKind = iota + 1
	kindExpression
	kindText
)

// attr is one attribute as written in the template, with its byte range in
// the template source.
type attr struct {
	name       string
	value      string
	start, end int
}

type prop struct {
	name  string
	value string
}

type ifCondition struct {
	exp   string
	block *node
}

type directive struct {
	name      string
	rawName   string
	value     string
	arg       string
	modifiers []string
}

type handler struct {
	value     string
	modifiers []string
}

// handlers keeps events in first-seen order so generated code is stable.
type handlers struct {
	names []string
	byName map[string][]handler
}

func (h *handlers) add(name string, hd handler, important bool) {
	if h.byName == nil {
		h.byName = map[string][]handler{}
	}
	if _, ok := h.byName[name]; !ok {
		h.names = append(h.names, name)
	}
	if important {
		h.byName[name] = append([]handler{hd}, h.byName[name]...)
		return
	}
	h.byName[name] = append(h.byName[name], hd)
}

func (h *handlers) empty() bool {
	return len(h.names) == 0
}

// componentModel is the v-model binding of a component.
type componentModel struct {
	value      string
	callback   string
	expression string
}

// node is an element, a text node or an interpolated text node.
type node struct {
	kind       nodeKind
	start, end int
	parent     *node

	// text and expression nodes
	text       string
	expression string

	// elements
	tag       string
	rawAttrs  []attr
	attrsList []attr
	attrsMap  map[string]string
	children  []*node

	forExp, alias, iterator1, iterator2 string
	hasFor                              bool

	ifExp        string
	hasIf        bool
	elseIfExp    string
	hasElseIf    bool
	isElse       bool
	ifConditions []ifCondition

	once bool
	key  string
	ref  string

	refInFor   bool
	slotName   string
	slotTarget string
	slotScope  string
	component  string

	// scopedSlots holds <template v-slot> children in source order.
	scopedSlots []*node

	staticClass  string
	classBinding string
	staticStyle  string
	styleBinding string

	plain        bool
	attrs        []prop
	domProps     []prop
	events       handlers
	nativeEvents handlers
	directives   []directive
	model        *componentModel
	hasBindings  bool
	forbidden    bool

	static          bool
	staticRoot      bool
	staticInFor     bool
	staticProcessed bool
	onceProcessed   bool
	forProcessed    bool
	ifProcessed     bool
}

func (n *node) isElement() bool {
	return n.kind == kindElement
}

// takeAttr removes name from the pending attribute list and returns its
// value. The attribute stays in attrsMap.
func (n *node) takeAttr(name string) (string, bool) {
	v, ok := n.attrsMap[name]
	if !ok {
		return "", false
	}
	for i, a := range n.attrsList {
		if a.name == name {
			n.attrsList = append(n.attrsList[:i], n.attrsList[i+1:]...)
			break
		}
	}
	return v, true
}

// takeBindingAttr returns the bound (":name" or "v-bind:name") expression
// for name, falling back to the JSON-quoted static value.
func (n *node) takeBindingAttr(name string) (string, bool) {
	if v, ok := n.takeAttr(":" + name); ok {
		return v, true
	}
	if v, ok := n.takeAttr("v-bind:" + name); ok {
		return v, true
	}
	if v, ok := n.takeAttr(name); ok {
		return jsonString(v), true
	}
	return "", false
}

// bindingAttr is takeBindingAttr without removing anything.
func (n *node) bindingAttr(name string) (string, bool) {
	if v, ok := n.attrsMap[":"+name]; ok {
		return v, true
	}
	if v, ok := n.attrsMap["v-bind:"+name]; ok {
		return v, true
	}
	if v, ok := n.attrsMap[name]; ok {
		return jsonString(v), true
	}
	return "", false
}

func (n *node) attrRange(name string) (int, int) {
	for _, a := range n.rawAttrs {
		if a.name == name {
			return a.start, a.end
		}
	}
	return n.start, n.end
}

// inFor reports whether n or one of its ancestors carries v-for.
func (n *node) inFor() bool {
	for p := n; p != nil; p = p.parent {
		if p.hasFor {
			return true
		}
	}
	return false
}
