package config

// Context carries what a generated Deserialize function reads from: the raw
// key-value mapping of the current scope and the fallback Mapper.
type Context struct {
	data   map[string]any
	mapper Mapper
}

// NewContext creates a root context. A nil mapper defaults to JSONMapper.
func NewContext(data map[string]any, mapper Mapper) *Context {
	if mapper == nil {
		mapper = JSONMapper{}
	}

	if data == nil {
		data = map[string]any{}
	}

	return &Context{data: data, mapper: mapper}
}

// Data returns the raw mapping for the current scope.
func (c *Context) Data() map[string]any {
	return c.data
}

// Mapper returns the generic fallback mapper.
func (c *Context) Mapper() Mapper {
	return c.mapper
}

// WithData returns a context scoped to a nested mapping, sharing the mapper.
func (c *Context) WithData(data map[string]any) *Context {
	return NewContext(data, c.mapper)
}
