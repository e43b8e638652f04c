// Package config is the runtime half of confgen: the types that generated
// Deserialize and Serialize functions are written against.
//
// Generated code never panics on bad input. Every failure travels as a
// Result in the Fail state and surfaces through Result.Get:
//
//	shop, err := DeserializeShop(config.NewContext(data, config.JSONMapper{})).Get()
//
// Key types:
//   - Result: two-variant outcome (Ok or Fail) with FlatMap composition
//   - Context: the raw mapping plus the generic fallback Mapper
//   - Configuration: static binding of a source key to a Deserialize function
package config
