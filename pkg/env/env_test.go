package env_test

import (
	"testing"

	"choco.dev/choco/pkg/env"
	"choco.dev/choco/pkg/value"
)

func TestAssignAndLookupGlobal(t *testing.T) {
	e := env.New()
	e.Assign("x", value.Num(1))
	v, ok := e.Lookup("x")
	if !ok || v.Num != 1 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	e := env.New()
	e.Assign("x", value.Num(1))
	e.PushScope()
	e.Assign("x", value.Num(2))
	v, _ := e.Lookup("x")
	if v.Num != 2 {
		t.Fatalf("expected inner shadow, got %v", v)
	}
	e.PopScope()
	v, _ = e.Lookup("x")
	if v.Num != 1 {
		t.Fatalf("expected outer value restored, got %v", v)
	}
}

func TestAssignWritesToInnermostExistingBinding(t *testing.T) {
	e := env.New()
	e.PushScope()
	e.Assign("x", value.Num(1))
	e.PushScope()
	e.Assign("x", value.Num(2)) // x exists one scope out; must write there
	e.PopScope()
	v, _ := e.Lookup("x")
	if v.Num != 2 {
		t.Fatalf("expected write to existing binding, got %v", v)
	}
}

func TestLookupUnknownFails(t *testing.T) {
	e := env.New()
	if _, ok := e.Lookup("nope"); ok {
		t.Fatal("expected lookup of unknown name to fail")
	}
}

func TestSnapshotCapturesInnermostWins(t *testing.T) {
	e := env.New()
	e.PushScope()
	e.Assign("x", value.Num(1))
	e.PushScope()
	e.Assign("x", value.Num(2))
	e.Assign("y", value.Num(3))
	snap := e.Snapshot()
	if snap["x"].Num != 2 || snap["y"].Num != 3 {
		t.Fatalf("got %v", snap)
	}
}

func TestSnapshotExcludesGlobals(t *testing.T) {
	e := env.New()
	e.Assign("g", value.Num(1))
	e.PushScope()
	snap := e.Snapshot()
	if _, ok := snap["g"]; ok {
		t.Fatal("globals must not be captured in a lambda snapshot")
	}
}

func TestPushScopeWithPrepopulates(t *testing.T) {
	e := env.New()
	e.PushScopeWith(map[string]value.Value{"a": value.Num(9)})
	v, ok := e.Lookup("a")
	if !ok || v.Num != 9 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestCaptureIndependenceFromLaterMutation(t *testing.T) {
	e := env.New()
	e.PushScope()
	e.Assign("x", value.Num(5))
	snap := e.Snapshot()
	e.Assign("x", value.Num(99))
	if snap["x"].Num != 5 {
		t.Fatalf("snapshot must be independent of later mutation, got %v", snap["x"])
	}
}
