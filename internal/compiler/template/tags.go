package template

import (
	"bytes"
	"encoding/json"
	"strings"
)

func makeSet(list string) map[string]bool {
	set := map[string]bool{}
	for _, s := range strings.Split(list, ",") {
		set[s] = true
	}
	return set
}

var htmlTags = makeSet("html,body,base,head,link,meta,style,title," +
	"address,article,aside,footer,header,h1,h2,h3,h4,h5,h6,hgroup,nav,section," +
	"div,dd,dl,dt,figcaption,figure,picture,hr,img,li,main,ol,p,pre,ul," +
	"a,b,abbr,bdi,bdo,br,cite,code,data,dfn,em,i,kbd,mark,q,rp,rt,rtc,ruby," +
	"s,samp,small,span,strong,sub,sup,time,u,var,wbr,area,audio,map,track,video," +
	"embed,object,param,source,canvas,script,noscript,del,ins," +
	"caption,col,colgroup,table,thead,tbody,td,th,tr," +
	"button,datalist,fieldset,form,input,label,legend,meter,optgroup,option," +
	"output,progress,select,textarea," +
	"details,dialog,menu,menuitem,summary," +
	"content,element,shadow,template,blockquote,iframe,tfoot")

var svgTags = makeSet("svg,animate,circle,clippath,cursor,defs,desc,ellipse,filter,font-face," +
	"foreignObject,g,glyph,image,line,marker,mask,missing-glyph,path,pattern," +
	"polygon,polyline,rect,switch,symbol,text,textpath,tspan,use,view")

var unaryTags = makeSet("area,base,br,col,embed,frame,hr,img,input,isindex,keygen," +
	"link,meta,param,source,track,wbr")

var builtInTags = makeSet("slot,component")

// isReservedTag reports whether tag is a platform element rather than a
// component.
func isReservedTag(tag string) bool {
	return htmlTags[tag] || svgTags[tag]
}

func isForbiddenTag(n *node) bool {
	if n.tag == "style" {
		return true
	}
	if n.tag != "script" {
		return false
	}
	typ, ok := n.attrsMap["type"]
	return !ok || typ == "text/javascript"
}

// mustUseProp reports whether a bound attribute has to be set as a DOM
// property for the element to behave.
func mustUseProp(tag, typ, name string) bool {
	switch name {
	case "value":
		switch tag {
		case "input", "textarea", "option", "select", "progress":
			return typ != "button"
		}
	case "selected":
		return tag == "option"
	case "checked":
		return tag == "input"
	case "muted":
		return tag == "video"
	}
	return false
}

// jsonString quotes s the way JSON.stringify does, without HTML escaping.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
