package codec

import (
	"context"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/dsl"
)

// roundtrip pairs an object schema with its reverse.
type roundtrip struct {
	fwd *dsl.ObjectSchema
}

// Roundtrip exposes an object schema and its reverse as one codec: Decode
// parses the external (input-keyed) shape into the internal (output-keyed)
// one, Encode maps internal back to external. Key remaps invert exactly, so
// Encode(Decode(v)) reproduces the declared keys of v.
func Roundtrip(obj *dsl.ObjectSchema) verity.Codec[map[string]any, map[string]any] {
	return roundtrip{fwd: obj}
}

func (c roundtrip) In() verity.Schema[map[string]any]  { return c.fwd }
func (c roundtrip) Out() verity.Schema[map[string]any] { return c.fwd.Reverse() }

func (c roundtrip) Decode(ctx context.Context, a map[string]any) (map[string]any, error) {
	return c.fwd.Parse(ctx, a)
}

func (c roundtrip) Encode(ctx context.Context, b map[string]any) (map[string]any, error) {
	return c.fwd.Reverse().Parse(ctx, b)
}
