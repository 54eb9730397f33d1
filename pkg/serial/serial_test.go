package serial

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type point struct {
	Label string
	X     float64
	Inner *point
}

func (p *point) SerialTag() string { return "Point" }

func (p *point) Serialize() (Envelope, error) {
	fields := Fields{"label": p.Label, "x": p.X}
	if p.Inner != nil {
		inner, err := p.Inner.Serialize()
		if err != nil {
			return Envelope{}, err
		}
		fields["inner"] = inner
	}
	return New(p.SerialTag(), fields), nil
}

func decodePoint(fields Fields, reg *Registry) (Serializable, error) {
	label, err := fields.String("label")
	if err != nil {
		return nil, err
	}
	x, err := fields.Float("x")
	if err != nil {
		return nil, err
	}
	out := &point{Label: label, X: x}
	if _, ok := fields["inner"]; ok {
		env, err := fields.Envelope("inner")
		if err != nil {
			return nil, err
		}
		inner, err := reg.Decode(env)
		if err != nil {
			return nil, err
		}
		out.Inner = inner.(*point)
	}
	return out, nil
}

func newPointRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	if err := reg.Register("Point", decodePoint); err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func TestEnvelopeJSONShape(t *testing.T) {
	data, err := Marshal(&point{Label: "a", X: 1.5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `["Point",{"label":"a","x":1.5}]` {
		t.Fatalf("unexpected encoding %s", got)
	}
}

func TestRoundTripNested(t *testing.T) {
	reg := newPointRegistry(t)
	in := &point{Label: "outer", X: 0.1, Inner: &point{Label: "inner", X: 1e-300}}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := Unmarshal(data, reg)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := out.(*point)
	if p.Label != "outer" || p.X != 0.1 || p.Inner == nil || p.Inner.X != 1e-300 {
		t.Fatalf("unexpected round trip %+v", p)
	}
}

func TestRegistryDuplicateTag(t *testing.T) {
	reg := newPointRegistry(t)
	if err := reg.Register("Point", decodePoint); !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
	if err := reg.Register("", decodePoint); err == nil {
		t.Fatalf("expected empty tag error")
	}
	if err := reg.Register("Other", nil); err == nil {
		t.Fatalf("expected nil decoder error")
	}
	if tags := reg.Tags(); len(tags) != 1 || tags[0] != "Point" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestRegistryUnsupportedType(t *testing.T) {
	reg := newPointRegistry(t)
	_, err := Unmarshal([]byte(`["Spectrum",{}]`), reg)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	var ute *UnsupportedTypeError
	if !errors.As(err, &ute) || ute.Tag != "Spectrum" {
		t.Fatalf("expected UnsupportedTypeError naming Spectrum, got %v", err)
	}
	if errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("unsupported type must not look like a malformed envelope")
	}
}

func TestNestedUnsupportedTypeSurfaces(t *testing.T) {
	reg := newPointRegistry(t)
	_, err := Unmarshal([]byte(`["Point",{"label":"a","x":1,"inner":["Ghost",{}]}]`), reg)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected nested ErrUnsupportedType, got %v", err)
	}
}

func TestMalformedEnvelopes(t *testing.T) {
	reg := newPointRegistry(t)
	cases := []string{
		`{"tag":"Point"}`,
		`["Point"]`,
		`["Point",{},1]`,
		`[1,{}]`,
		`["",{}]`,
		`["Point",null]`,
		`["Point",[1,2]]`,
		`null`,
	}
	for _, raw := range cases {
		if _, err := Unmarshal([]byte(raw), reg); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("%s: expected ErrMalformedEnvelope, got %v", raw, err)
		}
	}
	if _, err := reg.Decode(42); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope for scalar, got %v", err)
	}
}

func TestDecodeGenericForm(t *testing.T) {
	reg := newPointRegistry(t)
	var generic any
	if err := json.Unmarshal([]byte(`["Point",{"label":"g","x":2}]`), &generic); err != nil {
		t.Fatalf("decode generic: %v", err)
	}
	out, err := reg.Decode(generic)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.(*point).Label != "g" {
		t.Fatalf("unexpected point %+v", out)
	}
}

func TestFieldErrors(t *testing.T) {
	reg := newPointRegistry(t)
	_, err := Unmarshal([]byte(`["Point",{"label":3,"x":1}]`), reg)
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Key != "label" {
		t.Fatalf("expected FieldError for label, got %v", err)
	}
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField match")
	}
	_, err = Unmarshal([]byte(`["Point",{"label":"a"}]`), reg)
	if !errors.As(err, &fe) || fe.Key != "x" || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected missing x, got %v", err)
	}
}

func TestFieldHelpers(t *testing.T) {
	f := Fields{
		"int":     float64(922350),
		"frac":    1.5,
		"weights": map[string]any{"10020": 0.25, "10030": json.Number("0.75")},
		"bad":     map[string]any{"1": "x"},
		"sign":    nil,
		"list":    []any{1.0, 2.0},
	}
	if n, err := f.Int("int"); err != nil || n != 922350 {
		t.Fatalf("int: %d %v", n, err)
	}
	if _, err := f.Int("frac"); err == nil {
		t.Fatalf("expected non-integer error")
	}
	m, err := f.FloatMap("weights")
	if err != nil || m["10020"] != 0.25 || m["10030"] != 0.75 {
		t.Fatalf("float map: %v %v", m, err)
	}
	if _, err := f.FloatMap("bad"); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected invalid nested value, got %v", err)
	}
	if m, err := f.FloatMap("absent"); err != nil || len(m) != 0 {
		t.Fatalf("absent float map: %v %v", m, err)
	}
	if _, ok, err := f.OptionalString("sign"); ok || err != nil {
		t.Fatalf("null optional string: %v %v", ok, err)
	}
	if v, err := f.FloatOr("missing", 7); err != nil || v != 7 {
		t.Fatalf("float default: %v %v", v, err)
	}
	if l, err := f.List("list"); err != nil || len(l) != 2 {
		t.Fatalf("list: %v %v", l, err)
	}
	if _, err := f.List("frac"); err == nil {
		t.Fatalf("expected list type error")
	}
}

func TestListRoundTrip(t *testing.T) {
	reg := newPointRegistry(t)
	data, err := MarshalList([]*point{{Label: "a", X: 1}, {Label: "b", X: 2}})
	if err != nil {
		t.Fatalf("marshal list: %v", err)
	}
	items, err := UnmarshalList(data, reg)
	if err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(items) != 2 || items[1].(*point).Label != "b" {
		t.Fatalf("unexpected items %+v", items)
	}
	if _, err := UnmarshalList([]byte(`[["Point",{"label":"a","x":1}],["Nope",{}]]`), reg); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported item, got %v", err)
	}
}

func TestEmptyTagMarshalFails(t *testing.T) {
	if _, err := json.Marshal(Envelope{}); err == nil {
		t.Fatalf("expected error for empty tag")
	}
}
