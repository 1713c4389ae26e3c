package template

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	forAliasRE    = regexp.MustCompile(`(?s)^(.*?)\s+(?:in|of)\s+(.*)$`)
	forIteratorRE = regexp.MustCompile(`,([^,}\]]*)(?:,([^,}\]]*))?$`)
	dirRE         = regexp.MustCompile(`^(?:v-|@|:|#)`)
	bindRE        = regexp.MustCompile(`^(?::|v-bind:)`)
	onRE          = regexp.MustCompile(`^(?:@|v-on:)`)
	slotRE        = regexp.MustCompile(`^(?:v-slot(?::|$)|#)`)
	argRE         = regexp.MustCompile(`:(.*)$`)
	whitespaceRE  = regexp.MustCompile(`\s+`)
)

const attrInterpolationHint = "Interpolation inside attributes has been removed. " +
	"Use v-bind or the colon shorthand instead. For example, instead of <div %s=\"{{ val }}\">, use <div :%s=\"val\">."

func (p *parser) checkExp(el *node, attrName, exp string) {
	if reason := checkExpression(exp); reason != "" {
		s, e := el.attrRange(attrName)
		p.errorf(s, e, "%s", expressionError(reason, exp, fmt.Sprintf("%s=%q", attrName, exp)))
	}
}

func (p *parser) processFor(el *node) {
	exp, ok := el.takeAttr("v-for")
	if !ok {
		return
	}
	m := forAliasRE.FindStringSubmatch(exp)
	if m == nil {
		s, e := el.attrRange("v-for")
		p.errorf(s, e, "Invalid v-for expression: %s", exp)
		return
	}

	el.hasFor = true
	el.forExp = strings.TrimSpace(m[2])
	alias := strings.TrimSpace(m[1])
	alias = strings.TrimSuffix(strings.TrimPrefix(alias, "("), ")")
	if it := forIteratorRE.FindStringSubmatch(alias); it != nil {
		el.alias = strings.TrimSpace(forIteratorRE.ReplaceAllString(alias, ""))
		el.iterator1 = strings.TrimSpace(it[1])
		el.iterator2 = strings.TrimSpace(it[2])
	} else {
		el.alias = alias
	}
	p.checkExp(el, "v-for", el.forExp)
}

func (p *parser) processIf(el *node) {
	if exp, ok := el.takeAttr("v-if"); ok {
		el.hasIf = true
		el.ifExp = exp
		el.ifConditions = append(el.ifConditions, ifCondition{exp: exp, block: el})
		p.checkExp(el, "v-if", exp)
		return
	}
	if _, ok := el.takeAttr("v-else"); ok {
		el.isElse = true
	}
	if exp, ok := el.takeAttr("v-else-if"); ok {
		el.hasElseIf = true
		el.elseIfExp = exp
		p.checkExp(el, "v-else-if", exp)
	}
}

// processElement handles everything that is not structural, once the
// element's children are known.
func (p *parser) processElement(el *node) {
	if key, ok := el.takeBindingAttr("key"); ok {
		if el.tag == "template" {
			s, e := el.attrRange(":key")
			p.errorf(s, e, "<template> cannot be keyed. Place the key on real elements instead.")
		}
		el.key = key
	}
	el.plain = el.key == "" && len(el.scopedSlots) == 0 && len(el.attrsList) == 0

	if ref, ok := el.takeBindingAttr("ref"); ok {
		el.ref = ref
		el.refInFor = el.inFor()
	}

	p.processSlotContent(el)

	if el.tag == "slot" {
		el.slotName, _ = el.takeBindingAttr("name")
		if el.key != "" {
			p.errorf(el.start, el.end, "`key` does not work on <slot> because slots are abstract outlets "+
				"and can possibly expand into multiple elements. Use the key on a wrapping element instead.")
		}
	}
	if is, ok := el.takeBindingAttr("is"); ok {
		el.component = is
	}

	p.processClass(el)
	p.processStyle(el)
	p.processAttrs(el)
}

func (p *parser) processSlotContent(el *node) {
	if el.tag == "template" {
		if scope, ok := el.takeAttr("slot-scope"); ok {
			el.slotScope = scope
		}
	}
	if target, ok := el.takeBindingAttr("slot"); ok {
		if target == `""` {
			target = `"default"`
		}
		el.slotTarget = target
		if el.tag != "template" && el.slotScope == "" {
			el.attrs = append(el.attrs, prop{name: "slot", value: target})
		}
	}

	for _, a := range append([]attr(nil), el.attrsList...) {
		if !slotRE.MatchString(a.name) {
			continue
		}
		el.takeAttr(a.name)
		name := slotName(a.name)
		scope := a.value
		if scope == "" {
			scope = emptySlotScope
		}

		if el.tag == "template" {
			el.slotTarget = name
			el.slotScope = scope
			return
		}
		if isReservedTag(el.tag) {
			p.errorf(a.start, a.end, "v-slot can only be used on components or <template>.")
			return
		}
		// v-slot on a component wraps its children in an implicit slot template.
		container := &node{
			kind:       kindElement,
			tag:        "template",
			attrsMap:   map[string]string{},
			slotTarget: name,
			slotScope:  scope,
			parent:     el,
			plain:      true,
		}
		for _, child := range el.children {
			child.parent = container
		}
		container.children = el.children
		el.children = nil
		el.scopedSlots = append(el.scopedSlots, container)
		return
	}
}

const emptySlotScope = "_empty_"

func slotName(attrName string) string {
	name := slotRE.ReplaceAllString(attrName, "")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return `"default"`
	}
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		return name[1 : len(name)-1]
	}
	return jsonString(name)
}

func (p *parser) processClass(el *node) {
	if static, ok := el.takeAttr("class"); ok {
		if _, hasExp := parseText(static); hasExp {
			s, e := el.attrRange("class")
			p.errorf(s, e, "class=%q: "+attrInterpolationHint, static, "class", "class")
		}
		el.staticClass = jsonString(strings.TrimSpace(whitespaceRE.ReplaceAllString(static, " ")))
	}
	if exp, ok := takeBound(el, "class"); ok {
		p.checkExp(el, ":class", exp)
		el.classBinding = exp
	}
}

func (p *parser) processStyle(el *node) {
	if static, ok := el.takeAttr("style"); ok {
		if _, hasExp := parseText(static); hasExp {
			s, e := el.attrRange("style")
			p.errorf(s, e, "style=%q: "+attrInterpolationHint, static, "style", "style")
		}
		el.staticStyle = parseStyleText(static)
	}
	if exp, ok := takeBound(el, "style"); ok {
		p.checkExp(el, ":style", exp)
		el.styleBinding = exp
	}
}

func takeBound(el *node, name string) (string, bool) {
	if v, ok := el.takeAttr(":" + name); ok {
		return v, true
	}
	return el.takeAttr("v-bind:" + name)
}

// parseStyleText turns "color: red; width: 1px" into an object literal,
// keeping declaration order.
func parseStyleText(text string) string {
	var parts []string
	depth := 0
	last := 0
	var decls []string
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				decls = append(decls, text[last:i])
				last = i + 1
			}
		}
	}
	decls = append(decls, text[last:])

	seen := map[string]int{}
	for _, d := range decls {
		name, value, ok := strings.Cut(d, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		entry := jsonString(name) + ":" + jsonString(strings.TrimSpace(value))
		if i, dup := seen[name]; dup {
			parts[i] = entry
			continue
		}
		seen[name] = len(parts)
		parts = append(parts, entry)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (p *parser) processAttrs(el *node) {
	for _, a := range el.attrsList {
		name, value := a.name, a.value

		if !dirRE.MatchString(name) {
			if _, hasExp := parseText(value); hasExp {
				p.errorf(a.start, a.end, "%s=%q: "+attrInterpolationHint, name, value, "id", "id")
			}
			el.attrs = append(el.attrs, prop{name: name, value: jsonString(value)})
			continue
		}

		el.hasBindings = true
		name, modifiers := splitModifiers(name)

		switch {
		case bindRE.MatchString(name):
			name = bindRE.ReplaceAllString(name, "")
			value = parseFilters(value)
			p.checkExp(el, a.name, value)
			p.addBinding(el, name, value, modifiers)
		case onRE.MatchString(name):
			name = onRE.ReplaceAllString(name, "")
			p.checkExp(el, a.name, value)
			addHandler(el, name, value, modifiers, false)
		default:
			name = dirRE.ReplaceAllString(name, "")
			var arg string
			if m := argRE.FindStringSubmatch(name); m != nil {
				arg = m[1]
				name = name[:len(name)-len(arg)-1]
			}
			if value != "" {
				p.checkExp(el, a.name, value)
			}
			el.directives = append(el.directives, directive{
				name:      name,
				rawName:   a.name,
				value:     value,
				arg:       arg,
				modifiers: modifiers,
			})
			if name == "model" {
				p.checkForAliasModel(el, a, value)
			}
		}
	}
}

func (p *parser) addBinding(el *node, name, value string, modifiers []string) {
	isProp := false
	for _, m := range modifiers {
		switch m {
		case "prop":
			isProp = true
			name = camelize(name)
			if name == "innerHtml" {
				name = "innerHTML"
			}
		case "camel":
			name = camelize(name)
		case "sync":
			addHandler(el, "update:"+camelize(name), genAssignmentCode(value, "$event"), nil, false)
		}
	}
	if isProp || (el.component == "" && mustUseProp(el.tag, el.attrsMap["type"], name)) {
		el.domProps = append(el.domProps, prop{name: name, value: value})
		return
	}
	el.attrs = append(el.attrs, prop{name: name, value: value})
}

func (p *parser) checkForAliasModel(el *node, a attr, value string) {
	for cur := el; cur != nil; cur = cur.parent {
		if cur.hasFor && cur.alias == value {
			p.errorf(a.start, a.end, "<%s v-model=%q>: You are binding v-model directly to a v-for iteration alias. "+
				"This will not be able to modify the v-for source array because writing to the alias is like "+
				"modifying a function local variable. Consider using an array of objects and use v-model on "+
				"an object property instead.", el.tag, value)
			return
		}
	}
}

// splitModifiers separates ".mod" suffixes from an attribute name. Dots
// inside a dynamic [arg] are left alone.
func splitModifiers(name string) (string, []string) {
	searchFrom := 0
	if i := strings.LastIndexByte(name, ']'); i >= 0 {
		searchFrom = i
	}
	i := strings.IndexByte(name[searchFrom:], '.')
	if i < 0 {
		return name, nil
	}
	i += searchFrom
	return name[:i], strings.Split(name[i+1:], ".")
}

var camelizeRE = regexp.MustCompile(`-(\w)`)

func camelize(s string) string {
	return camelizeRE.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}
