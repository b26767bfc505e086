package provider

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"

	serrors "github.com/kbukum/serialization/errors"
)

type order struct {
	ID    int      `json:"id"`
	Items []string `json:"items"`
}

// countingCodec is a JSON codec that counts calls reaching it.
type countingCodec struct {
	marshals   atomic.Int32
	unmarshals atomic.Int32
}

func (c *countingCodec) ContentType() string { return "application/json" }

func (c *countingCodec) Marshal(v any) ([]byte, error) {
	c.marshals.Add(1)
	return gojson.Marshal(v)
}

func (c *countingCodec) Unmarshal(data []byte, v any) error {
	c.unmarshals.Add(1)
	return gojson.Unmarshal(data, v)
}

// emptyCodec produces no output for any value.
type emptyCodec struct{}

func (emptyCodec) ContentType() string         { return "application/x-empty" }
func (emptyCodec) Marshal(any) ([]byte, error) { return []byte(" \n"), nil }
func (emptyCodec) Unmarshal([]byte, any) error { return nil }

type failingCodec struct{ err error }

func (c failingCodec) ContentType() string                { return "application/x-fail" }
func (c failingCodec) Marshal(any) ([]byte, error)        { return nil, c.err }
func (c failingCodec) Unmarshal(data []byte, v any) error { return c.err }

// blockingCodec waits on release before decoding.
type blockingCodec struct {
	countingCodec
	release chan struct{}
}

func (c *blockingCodec) Unmarshal(data []byte, v any) error {
	<-c.release
	return c.countingCodec.Unmarshal(data, v)
}

type tildeCodec struct{ countingCodec }

func (*tildeCodec) NullLiteral() string { return "~" }

func newTestProvider() (*CodecProvider, *countingCodec) {
	codec := &countingCodec{}
	return New("test", codec), codec
}

func TestCodecProvider_Metadata(t *testing.T) {
	p, _ := newTestProvider()
	if p.Name() != "test" {
		t.Errorf("expected name 'test', got %q", p.Name())
	}
	if p.ContentType() != "application/json" {
		t.Errorf("expected application/json, got %q", p.ContentType())
	}
	if p.NullLiteral() != DefaultNullLiteral {
		t.Errorf("expected default null literal, got %q", p.NullLiteral())
	}

	custom := New("x", &countingCodec{}, WithContentType("text/json"), WithNullLiteral("nil"))
	if custom.ContentType() != "text/json" || custom.NullLiteral() != "nil" {
		t.Errorf("options not applied: %q %q", custom.ContentType(), custom.NullLiteral())
	}

	blank := New("x", &countingCodec{}, WithNullLiteral("  "))
	if blank.NullLiteral() != DefaultNullLiteral {
		t.Errorf("blank null literal should be ignored, got %q", blank.NullLiteral())
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	p, _ := newTestProvider()
	in := order{ID: 7, Items: []string{"a", "b"}}

	text, err := Serialize(p, in)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	out, err := Deserialize[order](p, text)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: %+v != %+v", in, out)
	}
}

func TestSerialize_NilValues(t *testing.T) {
	p, codec := newTestProvider()

	var nilOrder *order
	var nilMap map[string]int
	var nilSlice []int
	var nilAny any

	tests := []struct {
		name  string
		value any
		typ   reflect.Type
	}{
		{"untyped nil", nil, nil},
		{"nil pointer", nilOrder, reflect.TypeFor[*order]()},
		{"nil map", nilMap, reflect.TypeFor[map[string]int]()},
		{"nil slice", nilSlice, reflect.TypeFor[[]int]()},
		{"nil interface", nilAny, reflect.TypeFor[any]()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, err := p.Serialize(tc.value, tc.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != "null" {
				t.Errorf("expected 'null', got %q", text)
			}
		})
	}
	if codec.marshals.Load() != 0 {
		t.Errorf("nil values should not reach the codec, got %d calls", codec.marshals.Load())
	}
}

func TestSerialize_NilUsesCodecLiteral(t *testing.T) {
	p := New("tilde", &tildeCodec{})
	text, err := Serialize[*order](p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "~" {
		t.Errorf("expected '~', got %q", text)
	}

	back, err := Deserialize[*order](p, " ~ ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != nil {
		t.Errorf("expected nil pointer, got %+v", back)
	}
}

func TestSerialize_InfersType(t *testing.T) {
	p, _ := newTestProvider()
	text, err := p.Serialize(order{ID: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, `"id":1`) {
		t.Errorf("unexpected output %q", text)
	}
}

func TestSerialize_NotAssignable(t *testing.T) {
	p, codec := newTestProvider()
	_, err := p.Serialize("text", reflect.TypeFor[int]())
	if !serrors.IsSerialization(err) || serrors.IsDeserialization(err) {
		t.Fatalf("expected SERIALIZATION_FAILED, got %v", err)
	}
	if codec.marshals.Load() != 0 {
		t.Error("codec should not run for a mismatched value")
	}
}

func TestSerialize_InterfaceDescriptor(t *testing.T) {
	p, _ := newTestProvider()
	text, err := p.Serialize(order{ID: 3}, reflect.TypeFor[any]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, `"id":3`) {
		t.Errorf("unexpected output %q", text)
	}
}

func TestSerialize_CodecFailure(t *testing.T) {
	cause := stderrors.New("unsupported value")
	p := New("fail", failingCodec{err: cause})

	_, err := p.Serialize(order{}, nil)
	if !serrors.IsSerialization(err) {
		t.Fatalf("expected SERIALIZATION_FAILED, got %v", err)
	}
	if serrors.IsDeserialization(err) {
		t.Error("encode failure must not be a deserialization error")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected the codec error to stay in the chain")
	}
	appErr, _ := serrors.AsAppError(err)
	if appErr.Details["provider"] != "fail" {
		t.Errorf("expected provider detail, got %v", appErr.Details)
	}
}

func TestDeserialize_EmptyInputRejectedBeforeCodec(t *testing.T) {
	p, codec := newTestProvider()

	for _, input := range []string{"", " ", "\t\n  "} {
		_, err := p.Deserialize(input, reflect.TypeFor[order]())
		if !serrors.IsDeserialization(err) {
			t.Errorf("input %q: expected DESERIALIZATION_FAILED, got %v", input, err)
		}
		if !serrors.IsSerialization(err) {
			t.Errorf("input %q: deserialization error should match the serialization category", input)
		}

		_, err = Deserialize[order](p, input)
		if !serrors.IsDeserialization(err) {
			t.Errorf("input %q: generic form expected DESERIALIZATION_FAILED, got %v", input, err)
		}
	}
	if n := codec.unmarshals.Load(); n != 0 {
		t.Errorf("expected codec not to run, got %d calls", n)
	}
}

func TestDeserialize_NilType(t *testing.T) {
	p, codec := newTestProvider()
	_, err := p.Deserialize(`{"id":1}`, nil)
	if !serrors.IsDeserialization(err) {
		t.Fatalf("expected DESERIALIZATION_FAILED, got %v", err)
	}
	if codec.unmarshals.Load() != 0 {
		t.Error("codec should not run without a descriptor")
	}
}

func TestDeserialize_Malformed(t *testing.T) {
	p, _ := newTestProvider()
	_, err := Deserialize[order](p, `{"id":`)
	if !serrors.IsDeserialization(err) {
		t.Fatalf("expected DESERIALIZATION_FAILED, got %v", err)
	}
	appErr, ok := serrors.AsAppError(err)
	if !ok || appErr.Cause == nil {
		t.Fatal("expected the backend error as cause")
	}
}

func TestDeserialize_ReturnsExactType(t *testing.T) {
	p, _ := newTestProvider()
	v, err := p.Deserialize(`{"id":9}`, reflect.TypeFor[order]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.(order)
	if !ok {
		t.Fatalf("expected order, got %T", v)
	}
	if got.ID != 9 {
		t.Errorf("expected id 9, got %d", got.ID)
	}
}

func TestDeserialize_NullLiteral(t *testing.T) {
	p, codec := newTestProvider()

	ptr, err := Deserialize[*order](p, "null")
	if err != nil || ptr != nil {
		t.Errorf("expected nil pointer, got %v, %v", ptr, err)
	}
	val, err := Deserialize[order](p, "null")
	if err != nil || val.ID != 0 {
		t.Errorf("expected zero value, got %v, %v", val, err)
	}
	anyVal, err := Deserialize[any](p, "null")
	if err != nil || anyVal != nil {
		t.Errorf("expected nil interface, got %v, %v", anyVal, err)
	}
	if codec.unmarshals.Load() != 0 {
		t.Error("null literal should not reach the codec")
	}
}

func TestContextVariants_Canceled(t *testing.T) {
	p, codec := newTestProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.SerializeContext(ctx, order{}, nil); !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := p.DeserializeContext(ctx, `{}`, reflect.TypeFor[order]()); !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if codec.marshals.Load()+codec.unmarshals.Load() != 0 {
		t.Error("codec should not run for a cancelled context")
	}
}

func TestAsync_MatchesSync(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()
	in := order{ID: 4, Items: []string{"x"}}

	syncText, err := Serialize(p, in)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	asyncText, err := SerializeAsync(ctx, p, in).Await(ctx)
	if err != nil {
		t.Fatalf("SerializeAsync failed: %v", err)
	}
	if syncText != asyncText {
		t.Errorf("sync %q != async %q", syncText, asyncText)
	}

	typedText, err := SerializeTypeAsync(ctx, p, in, reflect.TypeFor[order]()).Result()
	if err != nil || typedText != syncText {
		t.Errorf("SerializeTypeAsync = %q, %v", typedText, err)
	}

	out, err := DeserializeAsync[order](ctx, p, asyncText).Await(ctx)
	if err != nil {
		t.Fatalf("DeserializeAsync failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("async round trip mismatch: %+v", out)
	}

	erased, err := DeserializeTypeAsync(ctx, p, asyncText, reflect.TypeFor[order]()).Await(ctx)
	if err != nil {
		t.Fatalf("DeserializeTypeAsync failed: %v", err)
	}
	if !reflect.DeepEqual(in, erased) {
		t.Errorf("type-erased async mismatch: %+v", erased)
	}
}

func TestAsync_NullMatchesSync(t *testing.T) {
	p, _ := newTestProvider()
	text, err := SerializeAsync[*order](context.Background(), p, nil).Result()
	if err != nil || text != "null" {
		t.Errorf("expected 'null', got %q, %v", text, err)
	}
}

func TestAsync_EmptyInputFailsSynchronously(t *testing.T) {
	p, codec := newTestProvider()

	f := DeserializeAsync[order](context.Background(), p, "   ")
	select {
	case <-f.Done():
	default:
		t.Fatal("expected an already completed future")
	}
	if _, err := f.Result(); !serrors.IsDeserialization(err) {
		t.Errorf("expected DESERIALIZATION_FAILED, got %v", err)
	}

	erased := DeserializeTypeAsync(context.Background(), p, "", reflect.TypeFor[order]())
	select {
	case <-erased.Done():
	default:
		t.Fatal("expected an already completed future")
	}
	if codec.unmarshals.Load() != 0 {
		t.Error("codec should not run for empty input")
	}
}

func TestAsync_NotAssignableFailsSynchronously(t *testing.T) {
	p, _ := newTestProvider()
	f := SerializeTypeAsync(context.Background(), p, "x", reflect.TypeFor[int]())
	select {
	case <-f.Done():
	default:
		t.Fatal("expected an already completed future")
	}
	if _, err := f.Result(); !serrors.IsSerialization(err) {
		t.Errorf("expected SERIALIZATION_FAILED, got %v", err)
	}
}

func TestAsync_Cancellation(t *testing.T) {
	codec := &blockingCodec{release: make(chan struct{})}
	p := New("blocking", codec)

	ctx, cancel := context.WithCancel(context.Background())
	f := DeserializeAsync[order](ctx, p, `{"id":1}`)
	cancel()

	_, err := f.Result()
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(codec.release)
	out, err := Deserialize[order](p, `{"id":2}`)
	if err != nil || out.ID != 2 {
		t.Errorf("provider should remain usable, got %+v, %v", out, err)
	}
}

func TestAsync_PreCancelled(t *testing.T) {
	p, codec := newTestProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SerializeAsync(ctx, p, order{}).Result()
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if codec.marshals.Load() != 0 {
		t.Error("codec should not run for a cancelled context")
	}
}

func TestFuture_AwaitTimeout(t *testing.T) {
	codec := &blockingCodec{release: make(chan struct{})}
	p := New("blocking", codec)
	f := DeserializeAsync[order](context.Background(), p, `{"id":5}`)

	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Await(waitCtx); !stderrors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}

	close(codec.release)
	out, err := f.Result()
	if err != nil || out.ID != 5 {
		t.Errorf("expected the call to finish after Await gave up, got %+v, %v", out, err)
	}
}

type wrongTypeProvider struct{ markerProvider }

func (wrongTypeProvider) Deserialize(string, reflect.Type) (any, error) { return "oops", nil }

func TestDeserialize_WrongTypeFromProvider(t *testing.T) {
	_, err := Deserialize[order](wrongTypeProvider{markerProvider{name: "bad"}}, "x")
	if !serrors.IsDeserialization(err) {
		t.Errorf("expected DESERIALIZATION_FAILED, got %v", err)
	}
}

func TestSerialize_EmptyCodecOutput(t *testing.T) {
	p := New("empty", emptyCodec{})
	text, err := p.Serialize(map[string]int{}, nil)
	if !serrors.IsSerialization(err) || serrors.IsDeserialization(err) {
		t.Errorf("expected SERIALIZATION_FAILED, got %q, %v", text, err)
	}
	if text == p.NullLiteral() {
		t.Error("empty output must not be reported as the null literal")
	}
}

func TestAwaitOutcome_PrefersArrivedResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 100; i++ {
		results := make(chan outcome[int], 1)
		results <- outcome[int]{value: 7}

		r := awaitOutcome(ctx, results)
		if r.err != nil || r.value != 7 {
			t.Fatalf("iteration %d: got %v, %v; want the arrived result", i, r.value, r.err)
		}
	}
}

func TestAwaitOutcome_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := awaitOutcome(ctx, make(chan outcome[int], 1))
	if !stderrors.Is(r.err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", r.err)
	}
}
