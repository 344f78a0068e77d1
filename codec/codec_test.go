package codec_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/codec"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/dsl"
)

func TestIdentityValidatesBothWays(t *testing.T) {
	ctx := context.Background()
	cd := codec.Identity[string](dsl.String(dsl.Config{
		Constraint: constraint.NewString().MinLength(3).Constraint,
	}))

	got, err := cd.Decode(ctx, "hello")
	if err != nil || got != "hello" {
		t.Fatalf("want hello, got %q (%v)", got, err)
	}
	if _, err := cd.Decode(ctx, "no"); err == nil {
		t.Fatalf("decode must validate")
	}
	if _, err := cd.Encode(ctx, "no"); err == nil {
		t.Fatalf("encode must validate")
	}
}

func TestTimeRFC3339(t *testing.T) {
	ctx := context.Background()
	cd := codec.TimeRFC3339()

	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	got, err := cd.Decode(ctx, "2024-05-01T10:00:00Z")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	s, err := cd.Encode(ctx, want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s != "2024-05-01T10:00:00Z" {
		t.Fatalf("want canonical UTC form, got %q", s)
	}

	if _, err := cd.Decode(ctx, "May 1st 2024"); err == nil {
		t.Fatalf("non-RFC3339 input must fail")
	}
}

func TestTimeRFC3339EncodeCanonicalizesZone(t *testing.T) {
	ctx := context.Background()
	cd := codec.TimeRFC3339()

	offset := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, 5, 1, 12, 0, 0, 0, offset)
	s, err := cd.Encode(ctx, in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s != "2024-05-01T10:00:00Z" {
		t.Fatalf("want UTC-normalized form, got %q", s)
	}
}

func TestRoundtrip(t *testing.T) {
	ctx := context.Background()
	obj := dsl.Object().
		Field("firstname", dsl.Of[string](dsl.String())).
		Field("email", dsl.Of[string](dsl.String())).
		Remap("email", "address.email").
		MustBuild()
	cd := codec.Roundtrip(obj)

	in := map[string]any{
		"firstname": "Ada",
		"address":   map[string]any{"email": "ada@example.com"},
	}
	domain, err := cd.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if domain["email"] != "ada@example.com" {
		t.Fatalf("remap missing: %v", domain)
	}
	back, err := cd.Encode(ctx, domain)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !reflect.DeepEqual(back, in) {
		t.Fatalf("round trip diverged:\n in  %v\n out %v", in, back)
	}
}

func TestCodecSchemasAreExposed(t *testing.T) {
	ctx := context.Background()
	cd := codec.TimeRFC3339()

	if _, err := cd.In().Parse(ctx, "any string"); err != nil {
		t.Fatalf("wire schema is a plain string: %v", err)
	}
	var _ verity.Schema[time.Time] = cd.Out()
}
