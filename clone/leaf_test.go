package clone

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fxclone/alloc"
	"github.com/gogpu/fxclone/fx"
)

func TestCloneType(t *testing.T) {
	src := &fx.Type{
		Base:        fx.TypeFloat,
		Rows:        4,
		Cols:        4,
		Qualifiers:  fx.QualifierUniform | fx.QualifierConst,
		ArrayLength: fx.UnboundedArray,
		Definition:  42,
	}
	c, counter := newCounting(false)

	got, err := c.CloneType(src)
	if err != nil {
		t.Fatalf("CloneType() error = %v", err)
	}
	if got == src {
		t.Fatal("CloneType() returned the source pointer")
	}
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("CloneType() mismatch (-src +clone):\n%s", diff)
	}
	if count, _ := counter.Live(); count != 1 {
		t.Errorf("live allocations = %d, want 1", count)
	}

	c.ReleaseType(got)
	assertNoLiveAllocations(t, counter)
}

func TestCloneType_AllocationFailure(t *testing.T) {
	c, counter := failingAt(1, false)

	got, err := c.CloneType(testType(fx.TypeInt, 1, 1))
	if err == nil {
		t.Fatal("CloneType() should fail")
	}
	if got != nil {
		t.Errorf("CloneType() = %v, want nil on failure", got)
	}
	if !errors.Is(err, alloc.ErrOutOfMemory) {
		t.Errorf("errors.Is(err, ErrOutOfMemory) = false for %v", err)
	}
	assertNoLiveAllocations(t, counter)
}

func TestCloneConstant_BitExact(t *testing.T) {
	src := &fx.Constant{String: "hello"}
	// A signalling NaN payload and a negative zero must survive verbatim.
	src.Value[0] = 0x7fa00001
	src.Value.SetFloat(1, float32(math.Copysign(0, -1)))
	src.Value.SetInt(2, -1)
	src.Value.SetUint(15, 0xdeadbeef)

	c, counter := newCounting(false)
	got, err := c.CloneConstant(src)
	if err != nil {
		t.Fatalf("CloneConstant() error = %v", err)
	}
	if got.Value != src.Value {
		t.Errorf("Value = %v, want %v", got.Value, src.Value)
	}
	if got.String != "hello" {
		t.Errorf("String = %q, want %q", got.String, "hello")
	}
	assertSeparateString(t, "String", src.String, got.String)
	if got.Elements == nil || len(got.Elements) != 0 {
		t.Errorf("Elements = %#v, want empty non-nil", got.Elements)
	}

	c.ReleaseConstant(got)
	assertNoLiveAllocations(t, counter)
}

func TestCloneConstant_NestedElements(t *testing.T) {
	src := &fx.Constant{
		String: "outer",
		Elements: []*fx.Constant{
			floatConstant(1, 2, 3),
			{Elements: []*fx.Constant{floatConstant(4), stringConstant("")}},
			stringConstant("leaf"),
		},
	}
	c, counter := newCounting(false)

	got, err := c.CloneConstant(src)
	if err != nil {
		t.Fatalf("CloneConstant() error = %v", err)
	}
	if diff := cmp.Diff(src, got, equateEmpty); diff != "" {
		t.Errorf("CloneConstant() mismatch (-src +clone):\n%s", diff)
	}
	for i := range src.Elements {
		if got.Elements[i] == src.Elements[i] {
			t.Errorf("Elements[%d] shares the source node", i)
		}
	}

	c.ReleaseConstant(got)
	assertNoLiveAllocations(t, counter)
}

func TestCloneConstant_RollbackAtEverySite(t *testing.T) {
	src := &fx.Constant{
		String: "outer",
		Elements: []*fx.Constant{
			stringConstant("a"),
			{String: "b", Elements: []*fx.Constant{stringConstant("c")}},
		},
	}
	total := countAllocations(t, func(c *Cloner) error {
		got, err := c.CloneConstant(src)
		c.ReleaseConstant(got)
		return err
	})

	for n := 1; n <= total; n++ {
		c, counter := failingAt(n, false)
		got, err := c.CloneConstant(src)
		if err == nil || got != nil {
			t.Fatalf("fault at #%d: CloneConstant() = (%v, %v), want (nil, error)", n, got, err)
		}
		assertNoLiveAllocations(t, counter)
	}
}

func TestCloneOperation(t *testing.T) {
	src := &fx.Operation{
		Kind:    fx.OpSwizzle,
		From:    testType(fx.TypeFloat, 4, 1),
		To:      testType(fx.TypeFloat, 2, 1),
		Index:   9,
		Swizzle: [4]int8{2, 0, fx.SwizzleUnused, fx.SwizzleUnused},
	}
	c, counter := newCounting(false)

	got, err := c.CloneOperation(src)
	if err != nil {
		t.Fatalf("CloneOperation() error = %v", err)
	}
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("CloneOperation() mismatch (-src +clone):\n%s", diff)
	}
	if got.From == src.From || got.To == src.To {
		t.Error("CloneOperation() shares a type with the source")
	}

	c.ReleaseOperation(got)
	assertNoLiveAllocations(t, counter)
}

func TestCloneOperation_DestinationTypeFailure(t *testing.T) {
	src := &fx.Operation{Kind: fx.OpCast, From: testType(fx.TypeInt, 1, 1), To: testType(fx.TypeFloat, 1, 1)}

	// #1 operation, #2 from, #3 to.
	c, counter := failingAt(3, false)
	got, err := c.CloneOperation(src)
	if err == nil || got != nil {
		t.Fatalf("CloneOperation() = (%v, %v), want (nil, error)", got, err)
	}

	var cloneErr *Error
	if !errors.As(err, &cloneErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if cloneErr.Path != "to" {
		t.Errorf("Path = %q, want %q", cloneErr.Path, "to")
	}
	assertNoLiveAllocations(t, counter)
}

func TestCloneExpression(t *testing.T) {
	src := &fx.Expression{
		Base:       11,
		Type:       testType(fx.TypeFloat, 3, 1),
		Constant:   floatConstant(1, 2, 3),
		IsLValue:   false,
		IsConstant: true,
		Chain: []*fx.Operation{
			{Kind: fx.OpMember, From: testType(fx.TypeStruct, 0, 0), To: testType(fx.TypeFloat, 4, 1), Index: 2, Swizzle: [4]int8{-1, -1, -1, -1}},
			{Kind: fx.OpSwizzle, From: testType(fx.TypeFloat, 4, 1), To: testType(fx.TypeFloat, 3, 1), Swizzle: [4]int8{0, 1, 2, -1}},
		},
	}
	c, counter := newCounting(false)

	got, err := c.CloneExpression(src)
	if err != nil {
		t.Fatalf("CloneExpression() error = %v", err)
	}
	if diff := cmp.Diff(src, got, equateEmpty); diff != "" {
		t.Errorf("CloneExpression() mismatch (-src +clone):\n%s", diff)
	}

	c.ReleaseExpression(got)
	assertNoLiveAllocations(t, counter)
}

func TestCloneExpression_AbsentConstant(t *testing.T) {
	src := &fx.Expression{Base: 3, Type: testType(fx.TypeInt, 1, 1), IsLValue: true}
	c, counter := newCounting(false)

	got, err := c.CloneExpression(src)
	if err != nil {
		t.Fatalf("CloneExpression() error = %v", err)
	}
	if got.Constant != nil {
		t.Errorf("Constant = %v, want nil for a non-constant expression", got.Constant)
	}
	if got.Chain == nil {
		t.Error("Chain = nil, want empty non-nil sequence")
	}

	c.ReleaseExpression(got)
	assertNoLiveAllocations(t, counter)
}

func TestCloneExpression_ChainFailurePath(t *testing.T) {
	src := &fx.Expression{
		Type: testType(fx.TypeFloat, 1, 1),
		Chain: []*fx.Operation{
			{Kind: fx.OpCast, From: testType(fx.TypeInt, 1, 1), To: testType(fx.TypeFloat, 1, 1)},
			{Kind: fx.OpCast, From: testType(fx.TypeInt, 1, 1), To: testType(fx.TypeFloat, 1, 1)},
		},
	}

	// #1 expression, #2 type, #3 chain, #4..#6 chain[0], #7 chain[1], #8 chain[1].from
	c, counter := failingAt(8, false)
	_, err := c.CloneExpression(src)

	var cloneErr *Error
	if !errors.As(err, &cloneErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if cloneErr.Path != "chain[1].from" {
		t.Errorf("Path = %q, want %q", cloneErr.Path, "chain[1].from")
	}
	assertNoLiveAllocations(t, counter)
}

func TestRelease_NilIsNoOp(t *testing.T) {
	c, counter := newCounting(false)

	c.ReleaseType(nil)
	c.ReleaseConstant(nil)
	c.ReleaseOperation(nil)
	c.ReleaseExpression(nil)
	c.ReleaseStructMember(nil)
	c.ReleaseStruct(nil)
	c.ReleaseAnnotation(nil)
	c.ReleaseTexture(nil)
	c.ReleaseSampler(nil)
	c.ReleaseStorage(nil)
	c.ReleaseUniform(nil)
	c.ReleaseEntryPoint(nil)
	c.ReleaseFunction(nil)
	c.ReleasePass(nil)
	c.ReleaseTechnique(nil)
	c.ReleaseModule(nil)

	if st := counter.Stats(); st.Frees != 0 {
		t.Errorf("Frees = %d, want 0", st.Frees)
	}
}

func TestClone_NilIsAbsent(t *testing.T) {
	c, counter := newCounting(false)

	if got, err := c.CloneType(nil); got != nil || err != nil {
		t.Errorf("CloneType(nil) = (%v, %v), want (nil, nil)", got, err)
	}
	if got, err := c.CloneConstant(nil); got != nil || err != nil {
		t.Errorf("CloneConstant(nil) = (%v, %v), want (nil, nil)", got, err)
	}
	if got, err := c.CloneModule(nil); got != nil || err != nil {
		t.Errorf("CloneModule(nil) = (%v, %v), want (nil, nil)", got, err)
	}
	if st := counter.Stats(); st.Allocs != 0 {
		t.Errorf("Allocs = %d, want 0", st.Allocs)
	}
}

// countAllocations runs fn once against a counting FailAt that never fails
// and returns how many allocations it requested.
func countAllocations(t *testing.T, fn func(c *Cloner) error) int {
	t.Helper()
	tally := alloc.NewFailAt(alloc.NewCounter(0), 0)
	if err := fn(New(Options{Allocator: tally})); err != nil {
		t.Fatalf("clean run error = %v", err)
	}
	if tally.Calls() == 0 {
		t.Fatal("clean run made no allocations")
	}
	return tally.Calls()
}
