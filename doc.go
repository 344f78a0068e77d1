// Package verity provides:
//
// - Composable runtime validation and transformation of untyped values via Schema[T]
// - A two-mode parse contract: Parse (error-returning) and SafeParse (result envelope)
// - A stable error model via Issues (path, code, message)
// - Forward/reverse object shapes for round-tripping renamed wire formats
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the schema DSL under dsl/, constraints under constraint/, codecs under codec/.
// - Prefer black-box testing against public APIs.
//
// Concurrency: parsing is synchronous and performs no I/O. A schema node owns a
// mutable constraint whose issue list is rewritten by every evaluation, so a
// single node must not be parsed concurrently without external synchronization.
// Build one schema value per goroutine, or serialize access.
//
// Typical usage:
//
//	s := buildSchema()
//	v, err := verity.ParseJSON(ctx, s, data)
//	r := s.SafeParse(ctx, raw)
package verity
