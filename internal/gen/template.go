package gen

import "text/template"

var fileTemplate = template.Must(template.New("type").Parse(`// Code generated by confgen. DO NOT EDIT.

package {{.Package}}

{{.ImportBlock}}
{{$rt := .Runtime}}{{$doc := .Comments}}{{with .Type}}{{$t := .}}
{{- if $doc}}
// {{.Name}} is the {{.KindLabel}} generated from {{.Source}}.
//
{{- end}}
//confgen:generated source={{.Source}}
type {{.Name}} struct {
{{- range .Storage}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{if $doc}}
// {{.Ctor.Func}} creates a {{.Name}}.
{{- if .Ctor.ParentParam}} {{.Ctor.ParentParam}} must not be nil.{{end}}
{{- end}}
func {{.Ctor.Func}}({{range $i, $p := .Ctor.Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) *{{.Name}} {
	return &{{.Name}}{
{{- range .Ctor.Assign}}
		{{.Field}}: {{.Value}},
{{- end}}
	}
}
{{range .Accessors}}
{{- if $doc}}
// {{.Method}} returns {{.Label}}{{if .Nullable}}, which may be nil{{end}}.
{{- end}}
func ({{$t.Receiver}} *{{$t.Name}}) {{.Method}}() {{.Type}} {
	return {{.Value}}
}
{{end}}
{{- range .Setters}}
{{- if $doc}}
// {{.Method}} returns a copy of {{$t.Receiver}} with {{.Label}} replaced.
{{- end}}
func ({{$t.Receiver}} *{{$t.Name}}) {{.Method}}(value {{.Type}}) *{{$t.Name}} {
	cp := *{{$t.Receiver}}
	cp.{{.Target}} = {{.Value}}
	return &cp
}
{{end}}
{{- with .Deserialize}}
{{- if $doc}}
// {{.Func}} reads a {{$t.Name}} from the mapping in ctx. The first failing
// field aborts deserialization.
{{- end}}
func {{.Func}}(ctx *{{$rt}}.Context) {{$rt}}.Result[*{{$t.Name}}] {
{{- if .ParentFunc}}
	{{.ParentVar}}, err := {{.ParentFunc}}(ctx).Get()
	if err != nil {
		return {{$rt}}.Fail[*{{$t.Name}}](err)
	}
{{- end}}
{{- range .Steps}}
	{{.Var}}, err := {{.Func}}(ctx).Get()
	if err != nil {
		return {{$rt}}.Fail[*{{$t.Name}}](err)
	}
{{- end}}
	return {{$rt}}.Ok({{.Construct}}({{.Args}}))
}
{{end}}
{{- range .Helpers}}
func {{.Func}}(ctx *{{$rt}}.Context) {{$rt}}.Result[{{.Type}}] {
{{- if .Default}}
	raw, ok := ctx.Data()[{{.KeyLit}}]
	if !ok {
		raw = {{.Default}}
	}
{{- else}}
	raw := ctx.Data()[{{.KeyLit}}]
{{- end}}
	if raw == nil {
{{- if not .Nullable}}
		return {{$rt}}.Fail[{{.Type}}]({{$rt}}.NotFound({{.FieldLit}}, {{.KeyLit}}, {{.EnclosingLit}}, raw))
{{- else if .NilZero}}
		var zero {{.Type}}
		return {{$rt}}.Ok(zero)
{{- else}}
		return {{$rt}}.Ok[{{.Type}}](nil)
{{- end}}
	}
{{- if .FastPath}}
	if v, ok := raw.({{.ValueType}}); ok {
		return {{$rt}}.Ok({{if .Boxed}}&v{{else}}v{{end}})
	}
{{- end}}
{{- if eq .Strategy "sequence"}}
	return {{$rt}}.DeserializeSlice(ctx, {{.FieldLit}}, raw, {{.ElemFunc}})
{{- else if eq .Strategy "map"}}
	return {{$rt}}.DeserializeMap[{{.KeyType}}](ctx, {{.FieldLit}}, raw, {{.ElemFunc}})
{{- else if eq .Strategy "nested"}}
	if m, ok := raw.(map[string]any); ok {
		return {{.ElemFunc}}(ctx.WithData(m))
	}
	return {{$rt}}.MapValue[{{.Type}}](ctx, {{.FieldLit}}, raw)
{{- else}}
	return {{$rt}}.MapValue[{{.Type}}](ctx, {{.FieldLit}}, raw)
{{- end}}
}
{{end}}
{{- with .Serialize}}
{{- if $doc}}
// Serialize returns the raw mapping {{$t.DeserializeFunc}} reads back.
{{- end}}
func ({{$t.Receiver}} *{{$t.Name}}) Serialize() map[string]any {
{{- if .Parent}}
	out := {{.Parent}}.Serialize()
{{- else}}
	out := map[string]any{}
{{- end}}
{{- range .Entries}}
{{- if eq .Mode "plain"}}
	out[{{.KeyLit}}] = {{.Value}}
{{- else}}
	if {{.Value}} != nil {
		out[{{.KeyLit}}] = {{.Write}}
	}
{{- end}}
{{- end}}
	return out
}
{{end}}
{{- with .Binding}}
{{- if $doc}}
// {{.Var}} binds the {{.KeyLit}} source to {{.Func}}.
{{- end}}
var {{.Var}} = {{$rt}}.Configuration[*{{$t.Name}}]{Key: {{.KeyLit}}, Deserialize: {{.Func}}}
{{end}}
{{- with .ToString}}
{{- if $doc}}
// String implements fmt.Stringer.
{{- end}}
func ({{$t.Receiver}} *{{$t.Name}}) String() string {
	return fmt.Sprintf({{.Format}}{{range .Args}}, {{.}}{{end}})
}
{{end}}
{{- end}}`))
