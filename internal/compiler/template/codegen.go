package template

import (
	"fmt"
	"strconv"
	"strings"
)

type generator struct {
	p               *parser
	staticRenderFns []string
	onceID          int
}

// generate returns the body of the render function.
func (g *generator) generate(root *node) string {
	code := `_c("div")`
	if root != nil {
		if root.tag == "script" {
			code = "null"
		} else {
			code = g.genElement(root)
		}
	}
	return "with(this){return " + code + "}"
}

func (g *generator) genElement(el *node) string {
	switch {
	case el.staticRoot && !el.staticProcessed:
		return g.genStatic(el)
	case el.once && !el.onceProcessed:
		return g.genOnce(el)
	case el.hasFor && !el.forProcessed:
		return g.genFor(el)
	case el.hasIf && !el.ifProcessed:
		return g.genIf(el)
	case el.tag == "template" && el.slotTarget == "":
		if children := g.genChildren(el, false); children != "" {
			return children
		}
		return "void 0"
	case el.tag == "slot":
		return g.genSlot(el)
	}

	if el.component != "" {
		code := "_c(" + el.component + "," + g.genData(el)
		if children := g.genChildren(el, true); children != "" {
			code += "," + children
		}
		return code + ")"
	}

	var data string
	if !el.plain {
		data = g.genData(el)
	}
	code := "_c('" + el.tag + "'"
	if data != "" {
		code += "," + data
	}
	if children := g.genChildren(el, true); children != "" {
		code += "," + children
	}
	return code + ")"
}

func (g *generator) genStatic(el *node) string {
	el.staticProcessed = true
	g.staticRenderFns = append(g.staticRenderFns, "with(this){return "+g.genElement(el)+"}")
	code := "_m(" + strconv.Itoa(len(g.staticRenderFns)-1)
	if el.staticInFor {
		code += ",true"
	}
	return code + ")"
}

func (g *generator) genOnce(el *node) string {
	el.onceProcessed = true
	switch {
	case el.hasIf && !el.ifProcessed:
		return g.genIf(el)
	case el.staticInFor:
		var key string
		for p := el.parent; p != nil; p = p.parent {
			if p.hasFor {
				key = p.key
				break
			}
		}
		if key == "" {
			g.p.tips = append(g.p.tips, tipf("v-once can only be used inside v-for that is keyed. "))
			return g.genElement(el)
		}
		id := g.onceID
		g.onceID++
		return fmt.Sprintf("_o(%s,%d,%s)", g.genElement(el), id, key)
	default:
		return g.genStatic(el)
	}
}

func (g *generator) genIf(el *node) string {
	el.ifProcessed = true
	return g.genIfConditions(el.ifConditions)
}

func (g *generator) genIfConditions(conditions []ifCondition) string {
	if len(conditions) == 0 {
		return "_e()"
	}
	c := conditions[0]
	if c.exp == "" {
		return g.genTernaryExp(c.block)
	}
	return "(" + c.exp + ")?" + g.genTernaryExp(c.block) + ":" + g.genIfConditions(conditions[1:])
}

func (g *generator) genTernaryExp(el *node) string {
	if el.once {
		return g.genOnce(el)
	}
	return g.genElement(el)
}

func (g *generator) genFor(el *node) string {
	if maybeComponent(el) && el.tag != "slot" && el.tag != "template" && el.key == "" {
		s, e := el.attrRange("v-for")
		g.p.tips = append(g.p.tips, tipRange(s, e,
			"<%s v-for=\"%s in %s\">: component lists rendered with v-for should have explicit keys. "+
				"See https://vuejs.org/guide/list.html#key for more info.", el.tag, el.alias, el.forExp))
	}

	el.forProcessed = true
	params := el.alias
	if el.iterator1 != "" {
		params += "," + el.iterator1
	}
	if el.iterator2 != "" {
		params += "," + el.iterator2
	}
	return "_l((" + el.forExp + "),function(" + params + "){return " + g.genElement(el) + "})"
}

func (g *generator) genData(el *node) string {
	var fields []string
	add := func(s string) { fields = append(fields, s) }

	// Directives go first: v-model and friends add props and handlers.
	wrapData, wrapListeners, dirs := g.genDirectives(el)
	if dirs != "" {
		add(dirs)
	}
	if el.key != "" {
		add("key:" + el.key)
	}
	if el.ref != "" {
		add("ref:" + el.ref)
	}
	if el.refInFor {
		add("refInFor:true")
	}
	if el.component != "" {
		add(`tag:"` + el.tag + `"`)
	}
	if el.staticClass != "" {
		add("staticClass:" + el.staticClass)
	}
	if el.classBinding != "" {
		add("class:" + el.classBinding)
	}
	if el.staticStyle != "" {
		add("staticStyle:" + el.staticStyle)
	}
	if el.styleBinding != "" {
		add("style:(" + el.styleBinding + ")")
	}
	if len(el.attrs) > 0 {
		add("attrs:" + genProps(el.attrs))
	}
	if len(el.domProps) > 0 {
		add("domProps:" + genProps(el.domProps))
	}
	if !el.events.empty() {
		add(genHandlers(&el.events, false))
	}
	if !el.nativeEvents.empty() {
		add(genHandlers(&el.nativeEvents, true))
	}
	if el.slotTarget != "" && el.slotScope == "" {
		add("slot:" + el.slotTarget)
	}
	if len(el.scopedSlots) > 0 {
		add(g.genScopedSlots(el))
	}
	if el.model != nil {
		add("model:{value:" + el.model.value + ",callback:" + el.model.callback + ",expression:" + el.model.expression + "}")
	}

	data := "{" + strings.Join(fields, ",") + "}"
	if wrapData != "" {
		data = "_b(" + data + ",'" + el.tag + "'," + wrapData + ")"
	}
	if wrapListeners != "" {
		data = "_g(" + data + "," + wrapListeners + ")"
	}
	return data
}

// genDirectives lowers compile-time directives and returns the runtime
// ones. wrapData and wrapListeners carry object-syntax v-bind and v-on.
func (g *generator) genDirectives(el *node) (wrapData, wrapListeners, code string) {
	var dirs []string
	for _, dir := range el.directives {
		needRuntime := true
		switch dir.name {
		case "html":
			el.domProps = append(el.domProps, prop{name: "innerHTML", value: "_s(" + dir.value + ")"})
			needRuntime = false
		case "text":
			el.domProps = append(el.domProps, prop{name: "textContent", value: "_s(" + dir.value + ")"})
			needRuntime = false
		case "cloak":
			needRuntime = false
		case "bind":
			wrapData = dir.value + "," + strconv.FormatBool(hasModifier(dir, "prop"))
			if hasModifier(dir, "sync") {
				wrapData += ",true"
			}
			needRuntime = false
		case "on":
			wrapListeners = dir.value
			needRuntime = false
		case "model":
			var ok bool
			needRuntime, ok = genModel(el, dir)
			if !ok {
				s, e := el.attrRange(dir.rawName)
				g.p.errorf(s, e, "<%s v-model=%q>: v-model is not supported on this element type. "+
					"If you are working with contenteditable, it's recommended to wrap a library dedicated for that purpose inside a custom component.",
					el.tag, dir.value)
			}
		}
		if !needRuntime {
			continue
		}

		d := `{name:"` + dir.name + `",rawName:"` + dir.rawName + `"`
		if dir.value != "" {
			d += ",value:(" + dir.value + "),expression:" + jsonString(dir.value)
		}
		if dir.arg != "" {
			d += `,arg:"` + dir.arg + `"`
		}
		if len(dir.modifiers) > 0 {
			mods := make([]string, len(dir.modifiers))
			for i, m := range dir.modifiers {
				mods[i] = jsonString(m) + ":true"
			}
			d += ",modifiers:{" + strings.Join(mods, ",") + "}"
		}
		dirs = append(dirs, d+"}")
	}
	if len(dirs) > 0 {
		code = "directives:[" + strings.Join(dirs, ",") + "]"
	}
	return wrapData, wrapListeners, code
}

func genProps(props []prop) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = `"` + p.name + `":` + transformSpecialNewlines(p.value)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// transformSpecialNewlines escapes U+2028 and U+2029, which are line
// terminators in older JavaScript string literals.
func transformSpecialNewlines(s string) string {
	return strings.NewReplacer("\u2028", `\u2028`, "\u2029", `\u2029`).Replace(s)
}

func (g *generator) genScopedSlots(el *node) string {
	forceUpdate := el.hasFor
	slots := make([]string, len(el.scopedSlots))
	for i, slot := range el.scopedSlots {
		if slot.hasIf || slot.hasFor {
			forceUpdate = true
		}
		slots[i] = g.genScopedSlot(slot)
	}
	code := "scopedSlots:_u([" + strings.Join(slots, ",") + "]"
	if forceUpdate {
		code += ",null,true"
	}
	return code + ")"
}

func (g *generator) genScopedSlot(el *node) string {
	scope := el.slotScope
	if scope == emptySlotScope {
		scope = ""
	}

	var body string
	if el.tag == "template" {
		body = g.genChildren(el, false)
		if body == "" {
			body = "undefined"
		}
		if el.hasIf {
			body = "(" + el.ifExp + ")?" + body + ":undefined"
		}
	} else {
		body = g.genElement(el)
	}

	target := el.slotTarget
	if target == "" {
		target = `"default"`
	}
	code := "{key:" + target + ",fn:function(" + scope + "){return " + body + "}"
	if scope == "" {
		code += ",proxy:true"
	}
	return code + "}"
}

func (g *generator) genChildren(el *node, checkSkip bool) string {
	children := el.children
	if len(children) == 0 {
		return ""
	}

	first := children[0]
	if len(children) == 1 && first.hasFor && first.tag != "template" && first.tag != "slot" {
		code := g.genElement(first)
		if checkSkip {
			if maybeComponent(first) {
				code += ",1"
			} else {
				code += ",0"
			}
		}
		return code
	}

	nodes := make([]string, len(children))
	for i, c := range children {
		nodes[i] = g.genNode(c)
	}
	code := "[" + strings.Join(nodes, ",") + "]"
	if checkSkip {
		if n := normalizationType(children); n > 0 {
			code += "," + strconv.Itoa(n)
		}
	}
	return code
}

// normalizationType is 2 when children may contain nested arrays, 1 when
// they may contain components, 0 otherwise.
func normalizationType(children []*node) int {
	res := 0
	for _, el := range children {
		if !el.isElement() {
			continue
		}
		if needsNormalization(el) || anyCondition(el, needsNormalization) {
			return 2
		}
		if maybeComponent(el) || anyCondition(el, maybeComponent) {
			res = 1
		}
	}
	return res
}

func anyCondition(el *node, fn func(*node) bool) bool {
	for _, c := range el.ifConditions {
		if fn(c.block) {
			return true
		}
	}
	return false
}

func needsNormalization(el *node) bool {
	return el.hasFor || el.tag == "template" || el.tag == "slot"
}

func maybeComponent(el *node) bool {
	return el.component != "" || !isReservedTag(el.tag)
}

func (g *generator) genNode(n *node) string {
	switch n.kind {
	case kindElement:
		return g.genElement(n)
	case kindExpression:
		return "_v(" + n.expression + ")"
	default:
		return "_v(" + transformSpecialNewlines(jsonString(n.text)) + ")"
	}
}

func (g *generator) genSlot(el *node) string {
	name := el.slotName
	if name == "" {
		name = `"default"`
	}
	children := g.genChildren(el, false)
	code := "_t(" + name
	if children != "" {
		code += ",function(){return " + children + "}"
	}

	var attrs string
	if len(el.attrs) > 0 {
		attrs = genProps(el.attrs)
	}
	bind := el.attrsMap["v-bind"]
	if (attrs != "" || bind != "") && children == "" {
		code += ",null"
	}
	if attrs != "" {
		code += "," + attrs
	}
	if bind != "" {
		if attrs == "" {
			code += ",null"
		}
		code += "," + bind
	}
	return code + ")"
}
