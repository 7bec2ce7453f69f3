package runtime

import "testing"

func mustGet(t *testing.T, env *Environment, name string) Value {
	t.Helper()
	v, err := env.Get(name)
	if err != nil {
		t.Fatalf("get %q: %v", name, err)
	}
	return v
}

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", IntegerValue{Val: 1})

	got := mustGet(t, env, "a")
	if got.(IntegerValue).Val != 1 {
		t.Fatalf("expected 1, got %v", got)
	}

	if _, err := env.Get("missing"); err == nil {
		t.Fatalf("expected an error for an undefined variable")
	}
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", IntegerValue{Val: 1})

	inner := outer.Extend()
	inner.Define("a", IntegerValue{Val: 2})

	if got := mustGet(t, inner, "a"); got.(IntegerValue).Val != 2 {
		t.Fatalf("inner lookup: expected 2, got %v", got)
	}
	if got := mustGet(t, outer, "a"); got.(IntegerValue).Val != 1 {
		t.Fatalf("outer lookup: expected 1, got %v", got)
	}
}

func TestGetSearchesOutward(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", StringValue{Val: "hello"})

	inner := outer.Extend().Extend()
	if got := mustGet(t, inner, "a"); got.(StringValue).Val != "hello" {
		t.Fatalf("expected hello, got %v", got)
	}
}

func TestAssignUpdatesNearestDefiningScope(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", IntegerValue{Val: 1})

	inner := outer.Extend()
	if err := inner.Assign("a", IntegerValue{Val: 5}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if got := mustGet(t, outer, "a"); got.(IntegerValue).Val != 5 {
		t.Fatalf("expected outer binding to be updated to 5, got %v", got)
	}
}

func TestAssignPrefersInnerShadow(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", IntegerValue{Val: 1})

	inner := outer.Extend()
	inner.Define("a", IntegerValue{Val: 2})
	if err := inner.Assign("a", IntegerValue{Val: 3}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if got := mustGet(t, inner, "a"); got.(IntegerValue).Val != 3 {
		t.Fatalf("expected inner binding 3, got %v", got)
	}
	if got := mustGet(t, outer, "a"); got.(IntegerValue).Val != 1 {
		t.Fatalf("expected outer binding untouched at 1, got %v", got)
	}
}

func TestAssignToUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Assign("nope", NullValue{}); err == nil {
		t.Fatalf("expected an error assigning to an undefined variable")
	}
}

func TestKeysAreSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("zeta", NullValue{})
	env.Define("alpha", NullValue{})
	env.Define("mid", NullValue{})

	keys := env.Keys()
	want := []string{"alpha", "mid", "zeta"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}
}
