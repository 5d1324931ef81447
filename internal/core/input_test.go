package core

import "testing"

func TestInputFrameClearKeepsHeldPointer(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.SetPointer(Pointer{Col: 3, Row: 4, Down: true, Pressed: true})

	f.Clear()

	if f.Has(ActionJump) {
		t.Error("Clear should drop actions")
	}
	if f.Pointer.Pressed {
		t.Error("Clear should drop the pointer edge")
	}
	if !f.Pointer.Down {
		t.Error("Clear should keep the held button state")
	}
}

func TestActionToolIndex(t *testing.T) {
	if idx, ok := ActionTool3.ToolIndex(); !ok || idx != 2 {
		t.Errorf("ActionTool3.ToolIndex() = %d, %v", idx, ok)
	}
	if _, ok := ActionJump.ToolIndex(); ok {
		t.Error("ActionJump should not map to a tool")
	}
	if ActionTool9.String() != "Tool9" {
		t.Errorf("ActionTool9.String() = %q", ActionTool9.String())
	}
}
