// Package doctype rewrites the DOCTYPE declaration of an XML document.
//
// The rewrite is plain text substitution. Nothing is parsed beyond locating
// the "<!DOCTYPE" marker, its closing ">", and the "<?xml ... ?>" declaration.
// Documents with neither are left as they are: there is nothing to anchor an
// inserted declaration to.
package doctype

import "strings"

const (
	marker     = "<!DOCTYPE"
	xmlDecl    = "<?xml "
	xmlDeclEnd = "?>"
)

// Override says what to do with a document's DOCTYPE declaration.
// The zero value is Keep.
type Override struct {
	decl string
	set  bool
}

// Keep leaves the declaration untouched.
func Keep() Override { return Override{} }

// Remove strips an existing declaration and inserts none.
func Remove() Override { return Override{set: true} }

// Replace substitutes decl for the existing declaration, or inserts it after
// the XML declaration. An empty decl is the same as Remove.
func Replace(decl string) Override { return Override{decl: decl, set: true} }

// Parse builds an Override from user input. When set is false the input is
// ignored and Keep is returned.
func Parse(decl string, set bool) Override {
	if !set {
		return Keep()
	}
	return Replace(strings.TrimSpace(decl))
}

// IsSet reports whether the override changes the document at all.
func (o Override) IsSet() bool { return o.set }

// Removes reports whether the override strips the declaration.
func (o Override) Removes() bool { return o.set && o.decl == "" }

// Decl returns the replacement declaration (empty for Keep and Remove).
func (o Override) Decl() string { return o.decl }

func (o Override) String() string {
	switch {
	case !o.set:
		return "keep"
	case o.decl == "":
		return "remove"
	default:
		return o.decl
	}
}

// Find returns the first DOCTYPE declaration in content, from "<!DOCTYPE"
// through the next ">" inclusive.
func Find(content string) (string, bool) {
	i := strings.Index(content, marker)
	if i < 0 {
		return "", false
	}
	j := strings.Index(content[i:], ">")
	if j < 0 {
		return "", false
	}
	return content[i : i+j+1], true
}

// Rewrite applies o to content and returns the result. CRLF line endings are
// normalised to LF whenever o is set.
//
// Only the first declaration is rewritten; later copies of the same text
// are left alone. Removal only happens when the declaration is immediately
// followed by a newline; a declaration sharing its line with other markup is
// kept.
func Rewrite(content string, o Override) string {
	if !o.set {
		return content
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if strings.Contains(content, marker) {
		return rewriteExisting(content, o)
	}
	if strings.HasPrefix(content, xmlDecl) && strings.Contains(content, xmlDeclEnd) {
		return insert(content, o)
	}
	return content
}

func rewriteExisting(content string, o Override) string {
	decl, ok := Find(content)
	if !ok {
		return content
	}
	i := strings.Index(content, decl)
	end := i + len(decl)

	if o.decl != "" {
		return content[:i] + o.decl + content[end:]
	}
	if strings.HasPrefix(content[end:], "\n") {
		return content[:i] + content[end+1:]
	}
	return content
}

func insert(content string, o Override) string {
	prefix := content[:strings.Index(content, xmlDeclEnd)+len(xmlDeclEnd)]

	var rest string
	if k := strings.Index(content[1:], "<"); k >= 0 {
		rest = content[k+1:]
	} else {
		rest = strings.TrimLeft(content[len(prefix):], "\n")
	}

	if o.decl == "" {
		return prefix + "\n" + rest
	}
	return prefix + "\n" + o.decl + "\n" + rest
}
