package gen

import (
	"sort"
	"strconv"
	"strings"

	"confgen/internal/common"
	"confgen/internal/resolve"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet records the packages a generated file refers to. Its Qualifier
// adds an import each time a type from another package is rendered.
type importSet struct {
	local   string
	names   func(pkgPath string) string
	imports map[string]importSpec
}

func newImportSet(local string, names func(pkgPath string) string) *importSet {
	return &importSet{local: local, names: names, imports: make(map[string]importSpec)}
}

// add imports pkgPath and returns the name to qualify it with.
func (s *importSet) add(pkgPath string) string {
	if pkgPath == "" || pkgPath == s.local {
		return ""
	}

	if imp, ok := s.imports[pkgPath]; ok {
		return imp.name()
	}

	imp := importSpec{Path: pkgPath}
	if name := s.names(pkgPath); name != common.PkgAlias(pkgPath) {
		imp.Alias = name
	}
	s.imports[pkgPath] = imp

	return imp.name()
}

// Qualifier returns the qualifier used when rendering field types.
func (s *importSet) Qualifier() resolve.Qualifier {
	return s.add
}

func (i importSpec) name() string {
	if i.Alias != "" {
		return i.Alias
	}

	return common.PkgAlias(i.Path)
}

// Block renders the import declaration: standard library first, then the
// rest, each group sorted by path.
func (s *importSet) Block() string {
	var std, other []importSpec
	for _, imp := range s.imports {
		if s.isStdlib(imp.Path) {
			std = append(std, imp)
		} else {
			other = append(other, imp)
		}
	}

	for _, group := range [][]importSpec{std, other} {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Path < group[j].Path
		})
	}

	var sb strings.Builder
	sb.WriteString("import (\n")
	writeGroup(&sb, std)
	if len(std) > 0 && len(other) > 0 {
		sb.WriteString("\n")
	}
	writeGroup(&sb, other)
	sb.WriteString(")\n")

	return sb.String()
}

func writeGroup(sb *strings.Builder, group []importSpec) {
	for _, imp := range group {
		sb.WriteString("\t")
		if imp.Alias != "" {
			sb.WriteString(imp.Alias)
			sb.WriteString(" ")
		}
		sb.WriteString(strconv.Quote(imp.Path))
		sb.WriteString("\n")
	}
}

// isStdlib uses the go command's rule: standard packages have no dot in the
// first path element. Packages sharing the local package's first element
// belong to the same module.
func (s *importSet) isStdlib(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	root, _, _ := strings.Cut(s.local, "/")

	return !strings.Contains(first, ".") && first != root
}
