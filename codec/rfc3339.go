package codec

import (
	"context"
	"time"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/dsl"
)

// timeRFC3339 converts between RFC3339 strings and time.Time.
type timeRFC3339 struct {
	in  verity.Schema[string]
	out verity.Schema[time.Time]
}

// TimeRFC3339 returns a codec whose wire form is an RFC3339 timestamp string
// and whose domain form is time.Time. Encoding canonicalizes to UTC.
func TimeRFC3339() verity.Codec[string, time.Time] {
	return timeRFC3339{in: dsl.String(), out: dsl.Date()}
}

func (c timeRFC3339) In() verity.Schema[string]     { return c.in }
func (c timeRFC3339) Out() verity.Schema[time.Time] { return c.out }

func (c timeRFC3339) Decode(ctx context.Context, a string) (time.Time, error) {
	s, err := c.in.Parse(ctx, a)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &verity.ParseError{Issues: verity.AppendIssues(nil, verity.Issue{
			Code:    verity.CodeInvalidFormat,
			Message: "invalid RFC3339 timestamp",
			Cause:   err,
		})}
	}
	return c.out.Parse(ctx, t)
}

func (c timeRFC3339) Encode(ctx context.Context, b time.Time) (string, error) {
	t, err := c.out.Parse(ctx, b)
	if err != nil {
		return "", err
	}
	s := t.UTC().Format(time.RFC3339Nano)
	// Revalidate through the wire side so Encode upholds the same contract.
	return c.in.Parse(ctx, s)
}
