package template

import (
	"slices"
	"strings"
)

// genAssignmentCode assigns assignment to the model expression value,
// going through $set when value ends in a member access.
func genAssignmentCode(value, assignment string) string {
	exp, key := parseModel(value)
	if key == "" {
		return value + "=" + assignment
	}
	return "$set(" + exp + ", " + key + ", " + assignment + ")"
}

// parseModel splits "a.b.c" into ("a.b", `"c"`) and "a[b]" into ("a", "b").
// key is "" for a plain identifier.
func parseModel(val string) (exp, key string) {
	val = strings.TrimSpace(val)
	if !strings.HasSuffix(val, "]") || strings.LastIndexByte(val, ']') < len(val)-1 {
		i := strings.LastIndexByte(val, '.')
		if i < 0 || strings.ContainsAny(val[i:], "[]()") {
			return val, ""
		}
		return val[:i], jsonString(val[i+1:])
	}

	depth := 0
	var quote byte
	for i := len(val) - 1; i >= 0; i-- {
		c := val[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return val[:i], val[i+1 : len(val)-1]
			}
		}
	}
	return val, ""
}

func hasModifier(dir directive, name string) bool {
	return slices.Contains(dir.modifiers, name)
}

// genModel lowers v-model into props and handlers. needRuntime reports
// whether the runtime model directive is still required; ok is false when
// the element cannot carry v-model.
func genModel(el *node, dir directive) (needRuntime, ok bool) {
	typ := el.attrsMap["type"]

	switch {
	case el.component != "" || !isReservedTag(el.tag):
		genComponentModel(el, dir)
		return false, true
	case el.tag == "select":
		genSelectModel(el, dir)
	case el.tag == "input" && typ == "checkbox":
		genCheckboxModel(el, dir)
	case el.tag == "input" && typ == "radio":
		genRadioModel(el, dir)
	case el.tag == "input" || el.tag == "textarea":
		genDefaultModel(el, dir)
	default:
		return false, false
	}
	return true, true
}

func genComponentModel(el *node, dir directive) {
	valueExpression := "$$v"
	if hasModifier(dir, "trim") {
		valueExpression = "(typeof $$v === 'string'? $$v.trim(): $$v)"
	}
	if hasModifier(dir, "number") {
		valueExpression = "_n(" + valueExpression + ")"
	}
	el.model = &componentModel{
		value:      "(" + dir.value + ")",
		expression: jsonString(dir.value),
		callback:   "function ($$v) {" + genAssignmentCode(dir.value, valueExpression) + "}",
	}
}

func genSelectModel(el *node, dir directive) {
	val := "val"
	if hasModifier(dir, "number") {
		val = "_n(val)"
	}
	selectedVal := "Array.prototype.filter" +
		".call($event.target.options,function(o){return o.selected})" +
		".map(function(o){var val = \"_value\" in o ? o._value : o.value;" +
		"return " + val + "})"
	assignment := "$event.target.multiple ? $$selectedVal : $$selectedVal[0]"
	code := "var $$selectedVal = " + selectedVal + ";"
	code += " " + genAssignmentCode(dir.value, assignment)
	addHandler(el, "change", code, nil, true)
}

func genCheckboxModel(el *node, dir directive) {
	value := dir.value
	valueBinding, ok := el.bindingAttr("value")
	if !ok {
		valueBinding = "null"
	}
	trueValueBinding, ok := el.bindingAttr("true-value")
	if !ok {
		trueValueBinding = "true"
	}
	falseValueBinding, ok := el.bindingAttr("false-value")
	if !ok {
		falseValueBinding = "false"
	}

	checked := "Array.isArray(" + value + ")?_i(" + value + "," + valueBinding + ")>-1"
	if trueValueBinding == "true" {
		checked += ":(" + value + ")"
	} else {
		checked += ":_q(" + value + "," + trueValueBinding + ")"
	}
	el.domProps = append(el.domProps, prop{name: "checked", value: checked})

	v := valueBinding
	if hasModifier(dir, "number") {
		v = "_n(" + valueBinding + ")"
	}
	addHandler(el, "change",
		"var $$a="+value+","+
			"$$el=$event.target,"+
			"$$c=$$el.checked?("+trueValueBinding+"):("+falseValueBinding+");"+
			"if(Array.isArray($$a)){"+
			"var $$v="+v+","+
			"$$i=_i($$a,$$v);"+
			"if($$el.checked){$$i<0&&("+genAssignmentCode(value, "$$a.concat([$$v])")+")}"+
			"else{$$i>-1&&("+genAssignmentCode(value, "$$a.slice(0,$$i).concat($$a.slice($$i+1))")+")}"+
			"}else{"+genAssignmentCode(value, "$$c")+"}",
		nil, true)
}

func genRadioModel(el *node, dir directive) {
	valueBinding, ok := el.bindingAttr("value")
	if !ok {
		valueBinding = "null"
	}
	if hasModifier(dir, "number") {
		valueBinding = "_n(" + valueBinding + ")"
	}
	el.domProps = append(el.domProps, prop{name: "checked", value: "_q(" + dir.value + "," + valueBinding + ")"})
	addHandler(el, "change", genAssignmentCode(dir.value, valueBinding), nil, true)
}

func genDefaultModel(el *node, dir directive) {
	typ := el.attrsMap["type"]
	lazy := hasModifier(dir, "lazy")
	trim := hasModifier(dir, "trim")
	number := hasModifier(dir, "number")

	event := "input"
	switch {
	case lazy:
		event = "change"
	case typ == "range":
		event = "__r"
	}

	valueExpression := "$event.target.value"
	if trim {
		valueExpression = "$event.target.value.trim()"
	}
	if number {
		valueExpression = "_n(" + valueExpression + ")"
	}

	code := genAssignmentCode(dir.value, valueExpression)
	if !lazy && typ != "range" {
		code = "if($event.target.composing)return;" + code
	}

	el.domProps = append(el.domProps, prop{name: "value", value: "(" + dir.value + ")"})
	addHandler(el, event, code, nil, true)
	if trim || number {
		addHandler(el, "blur", "$forceUpdate()", nil, false)
	}
}
