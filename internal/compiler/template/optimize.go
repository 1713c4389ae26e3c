package template

// optimize marks static subtrees so codegen can hoist them into
// staticRenderFns and skip them on re-render.
func optimize(root *node) {
	if root == nil {
		return
	}
	markStatic(root)
	markStaticRoots(root, false)
}

func isStatic(n *node) bool {
	switch n.kind {
	case kindExpression:
		return false
	case kindText:
		return true
	}
	return !n.hasBindings &&
		!n.hasIf && !n.hasFor && !n.hasElseIf && !n.isElse &&
		!builtInTags[n.tag] &&
		isReservedTag(n.tag) &&
		!isDirectChildOfTemplateFor(n) &&
		n.key == "" && n.ref == "" && n.slotTarget == "" &&
		n.component == "" && !n.once && !n.forbidden &&
		len(n.scopedSlots) == 0
}

func isDirectChildOfTemplateFor(n *node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.tag != "template" {
			return false
		}
		if p.hasFor {
			return true
		}
	}
	return false
}

func markStatic(n *node) {
	n.static = isStatic(n)
	if !n.isElement() {
		return
	}
	// Component slot content must stay reactive to the parent.
	if !isReservedTag(n.tag) && n.tag != "slot" {
		if _, inline := n.attrsMap["inline-template"]; !inline {
			return
		}
	}
	for _, child := range n.children {
		markStatic(child)
		if !child.static {
			n.static = false
		}
	}
	for _, c := range n.ifConditions[min(1, len(n.ifConditions)):] {
		markStatic(c.block)
		if !c.block.static {
			n.static = false
		}
	}
}

func markStaticRoots(n *node, inFor bool) {
	if !n.isElement() {
		return
	}
	if n.static || n.once {
		n.staticInFor = inFor
	}
	// A lone text child is cheaper to re-render than to hoist.
	if n.static && len(n.children) > 0 && !(len(n.children) == 1 && n.children[0].kind == kindText) {
		n.staticRoot = true
		return
	}
	n.staticRoot = false

	for _, child := range n.children {
		markStaticRoots(child, inFor || n.hasFor)
	}
	for _, c := range n.ifConditions[min(1, len(n.ifConditions)):] {
		markStaticRoots(c.block, inFor)
	}
}
