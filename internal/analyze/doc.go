// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of the declarations in the loaded packages, including the
// //confgen: directives found in their doc comments.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//   - FieldInfo: describes field name, type, tags, embedding and source expression
//   - Directive: a parsed //confgen:<name> key=value comment line
package analyze
