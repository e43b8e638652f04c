// Package gen renders synthesized type specs as Go source files.
//
// Generation approach uses text/template + go/format. Every expression is
// rendered in Go before the template runs, so the template only lays out
// declarations. Output that gofmt rejects is kept in a .unformatted.go
// sidecar next to the target file.
//
// Each schema produces one file in its own package containing:
//   - The generated struct, marked with //confgen:generated
//   - Constructor, accessors and copy-setters
//   - Deserialize<Name> and one helper per own field
//   - Serialize, and optionally String and a Configuration binding
package gen
