package codec

import (
	"testing"
	"time"
)

func TestTime_DecodeLayouts(t *testing.T) {
	cases := []string{
		"2021-07-01T10:20:30Z",
		"2021-07-01T10:20:30.5+09:00",
		"2021-07-01T10:20:30",
		"2021-07-01 10:20:30",
		"2021-07-01",
	}
	for _, in := range cases {
		if _, err := (Time{}).Decode(in); err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
	}

	if _, err := (Time{}).Decode("not a time"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestTime_EncodeCanonicalUTC(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	in := time.Date(2021, 7, 1, 9, 0, 0, 0, loc)
	if got := (Time{}).Encode(in); got != "2021-07-01T00:00:00Z" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestTime_RoundTrip(t *testing.T) {
	in := "2021-07-01T10:20:30.25Z"
	parsed, err := (Time{}).Decode(in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := (Time{}).Encode(parsed)
	back, err := (Time{}).Decode(out)
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if !parsed.Equal(back) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed, back)
	}
}
