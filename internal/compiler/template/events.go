package template

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	fnExpRE      = regexp.MustCompile(`^([\w$]+|\([^)]*?\))\s*=>|^function(?:\s+[\w$]+)?\s*\(`)
	fnInvokeRE   = regexp.MustCompile(`\([^)]*?\);*$`)
	simplePathRE = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*|\['[^']*?']|\["[^"]*?"]|\[\d+]|\[[A-Za-z_$][\w$]*])*$`)
)

var keyCodes = map[string]string{
	"esc":    "27",
	"tab":    "9",
	"enter":  "13",
	"space":  "32",
	"up":     "38",
	"left":   "37",
	"right":  "39",
	"down":   "40",
	"delete": "[8,46]",
}

var keyNames = map[string]string{
	"esc":    `["Esc","Escape"]`,
	"tab":    `"Tab"`,
	"enter":  `"Enter"`,
	"space":  `[" ","Spacebar"]`,
	"up":     `["Up","ArrowUp"]`,
	"left":   `["Left","ArrowLeft"]`,
	"right":  `["Right","ArrowRight"]`,
	"down":   `["Down","ArrowDown"]`,
	"delete": `["Backspace","Delete","Del"]`,
}

func genGuard(cond string) string {
	return "if(" + cond + ")return null;"
}

var modifierCode = map[string]string{
	"stop":    "$event.stopPropagation();",
	"prevent": "$event.preventDefault();",
	"self":    genGuard("$event.target !== $event.currentTarget"),
	"ctrl":    genGuard("!$event.ctrlKey"),
	"shift":   genGuard("!$event.shiftKey"),
	"alt":     genGuard("!$event.altKey"),
	"meta":    genGuard("!$event.metaKey"),
	"left":    genGuard("'button' in $event && $event.button !== 0"),
	"middle":  genGuard("'button' in $event && $event.button !== 1"),
	"right":   genGuard("'button' in $event && $event.button !== 2"),
}

func without(list []string, name string) ([]string, bool) {
	i := slices.Index(list, name)
	if i < 0 {
		return list, false
	}
	return slices.Delete(slices.Clone(list), i, i+1), true
}

// addHandler registers an event handler, folding event-option modifiers
// into the event name.
func addHandler(el *node, name, value string, modifiers []string, important bool) {
	var found bool
	if modifiers, found = without(modifiers, "right"); found {
		if name == "click" {
			name = "contextmenu"
		} else {
			modifiers = append(modifiers, "right")
		}
	} else if modifiers, found = without(modifiers, "middle"); found {
		if name == "click" {
			name = "mouseup"
		} else {
			modifiers = append(modifiers, "middle")
		}
	}
	if modifiers, found = without(modifiers, "capture"); found {
		name = "!" + name
	}
	if modifiers, found = without(modifiers, "once"); found {
		name = "~" + name
	}
	if modifiers, found = without(modifiers, "passive"); found {
		name = "&" + name
	}

	events := &el.events
	if modifiers, found = without(modifiers, "native"); found {
		events = &el.nativeEvents
	}
	events.add(name, handler{value: value, modifiers: modifiers}, important)
}

func genHandlers(h *handlers, native bool) string {
	prefix := "on:"
	if native {
		prefix = "nativeOn:"
	}
	parts := make([]string, 0, len(h.names))
	for _, name := range h.names {
		list := h.byName[name]
		var code string
		if len(list) == 1 {
			code = genHandler(list[0])
		} else {
			fns := make([]string, len(list))
			for i, hd := range list {
				fns[i] = genHandler(hd)
			}
			code = "[" + strings.Join(fns, ",") + "]"
		}
		parts = append(parts, `"`+name+`":`+code)
	}
	return prefix + "{" + strings.Join(parts, ",") + "}"
}

func genHandler(h handler) string {
	isMethodPath := simplePathRE.MatchString(h.value)
	isFunctionExpression := fnExpRE.MatchString(h.value)
	isFunctionInvocation := simplePathRE.MatchString(fnInvokeRE.ReplaceAllString(h.value, ""))

	if len(h.modifiers) == 0 {
		if isMethodPath || isFunctionExpression {
			return h.value
		}
		if isFunctionInvocation {
			return "function($event){return " + h.value + "}"
		}
		return "function($event){" + h.value + "}"
	}

	var code, guards string
	var keys []string
	for _, m := range h.modifiers {
		if c, ok := modifierCode[m]; ok {
			guards += c
			if _, isKey := keyCodes[m]; isKey {
				keys = append(keys, m)
			}
			continue
		}
		keys = append(keys, m)
	}
	if len(keys) > 0 {
		code += genKeyFilter(keys)
	}
	code += guards

	var handlerCode string
	switch {
	case isMethodPath:
		handlerCode = "return " + h.value + ".apply(null, arguments)"
	case isFunctionExpression:
		handlerCode = "return (" + h.value + ").apply(null, arguments)"
	case isFunctionInvocation:
		handlerCode = "return " + h.value
	default:
		handlerCode = h.value
	}
	return "function($event){" + code + handlerCode + "}"
}

func genKeyFilter(keys []string) string {
	filters := make([]string, len(keys))
	for i, k := range keys {
		filters[i] = genFilterCode(k)
	}
	return "if(!$event.type.indexOf('key')&&" + strings.Join(filters, "&&") + ")return null;"
}

func genFilterCode(key string) string {
	if n, err := strconv.Atoi(key); err == nil && n != 0 {
		return "$event.keyCode!==" + key
	}
	code, ok := keyCodes[key]
	if !ok {
		code = "undefined"
	}
	name, ok := keyNames[key]
	if !ok {
		name = "undefined"
	}
	return fmt.Sprintf("_k($event.keyCode,%s,%s,$event.key,%s)", jsonString(key), code, name)
}
