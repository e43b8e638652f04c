package synth

import (
	"go/token"
	"go/types"
	"unicode"
	"unicode/utf8"

	"confgen/internal/naming"
)

// exported upper-cases the first rune.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// local returns a lower-camel identifier that does not shadow a keyword or a
// predeclared name.
func local(name string) string {
	id := naming.LowerCamel.Format(name)
	if token.IsKeyword(id) || types.Universe.Lookup(id) != nil {
		return id + "Value"
	}

	return id
}

// receiver is the one-letter receiver name of a generated type.
func receiver(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	return string(unicode.ToLower(r))
}

// parentLink is the name of the field holding the parent instance.
func parentLink(parentName string) string {
	return "parent" + parentName
}

// Func names.
func constructorName(typeName string) string  { return "New" + typeName }
func deserializeName(typeName string) string  { return "Deserialize" + typeName }
func helperName(typeName, field string) string { return "deserialize" + typeName + exported(field) }
func setterName(field string) string           { return "With" + exported(field) }
func bindingName(typeName string) string       { return typeName + "Configuration" }
