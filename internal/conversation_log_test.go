package internal

import (
	"fmt"
	"sync"
	"testing"
)

func TestConversationLog_StartAppend(t *testing.T) {
	cl := NewConversationLog()
	id := cl.Start("ls", "/")
	if id == "" {
		t.Fatal("Start() returned empty id")
	}

	if idx := cl.Append(id, OutputEvent{Kind: OutputText, Text: "one"}); idx != 0 {
		t.Errorf("Append() index = %d, want 0", idx)
	}
	if idx := cl.Append(id, OutputEvent{Kind: OutputText, Text: "two"}); idx != 1 {
		t.Errorf("Append() index = %d, want 1", idx)
	}

	conv, ok := cl.Get(id)
	if !ok {
		t.Fatal("Get() returned false for started conversation")
	}
	if conv.Command != "ls" || conv.Dir != "/" {
		t.Errorf("Get() = %+v, want command ls in /", conv)
	}
	if len(conv.Outputs) != 2 {
		t.Errorf("len(Outputs) = %d, want 2", len(conv.Outputs))
	}
}

func TestConversationLog_AppendAfterClear(t *testing.T) {
	cl := NewConversationLog()
	id := cl.Start("clear", "/")
	cl.Clear()

	if idx := cl.Append(id, OutputEvent{Kind: OutputText, Text: "late"}); idx != -1 {
		t.Errorf("Append() after Clear = %d, want -1", idx)
	}
	if cl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cl.Len())
	}
}

func TestConversationLog_ReplaceLastOfKind(t *testing.T) {
	cl := NewConversationLog()
	id := cl.Start("wget a.md", "/")

	cl.Append(id, OutputEvent{Kind: OutputInfo, Text: "start"})
	cl.ReplaceLastOfKind(id, OutputEvent{Kind: OutputProgress, Percent: 10})
	cl.ReplaceLastOfKind(id, OutputEvent{Kind: OutputProgress, Percent: 50})
	cl.ReplaceLastOfKind(id, OutputEvent{Kind: OutputProgress, Percent: 100})

	conv, _ := cl.Get(id)
	if len(conv.Outputs) != 2 {
		t.Fatalf("len(Outputs) = %d, want 2", len(conv.Outputs))
	}
	if conv.Outputs[1].Percent != 100 {
		t.Errorf("progress percent = %d, want 100", conv.Outputs[1].Percent)
	}
}

func TestConversationLog_GetReturnsCopy(t *testing.T) {
	cl := NewConversationLog()
	id := cl.Start("echo", "/")
	cl.Append(id, OutputEvent{Kind: OutputText, Text: "a"})

	conv, _ := cl.Get(id)
	conv.Outputs[0].Text = "mutated"

	again, _ := cl.Get(id)
	if again.Outputs[0].Text != "a" {
		t.Errorf("log was mutated through a copy: %q", again.Outputs[0].Text)
	}
}

func TestConversationLog_ConcurrentAccess(t *testing.T) {
	cl := NewConversationLog()
	id := cl.Start("busy", "/")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cl.Append(id, OutputEvent{Kind: OutputText, Text: fmt.Sprint(n)})
		}(i)
		go func() {
			defer wg.Done()
			_ = cl.All()
		}()
	}
	wg.Wait()

	conv, _ := cl.Get(id)
	if len(conv.Outputs) != 10 {
		t.Errorf("len(Outputs) = %d, want 10", len(conv.Outputs))
	}
}

func TestConversationLog_Changed(t *testing.T) {
	cl := NewConversationLog()
	cl.Start("a", "/")
	cl.Start("b", "/")

	select {
	case <-cl.Changed():
	default:
		t.Fatal("Changed() not signalled after Start")
	}
	select {
	case <-cl.Changed():
		t.Fatal("Changed() signals should coalesce")
	default:
	}
}

func TestConversationLog_ClearExcept(t *testing.T) {
	cl := NewConversationLog()
	cl.Start("ls", "/")
	keep := cl.Start("clear-config", "/")
	cl.Start("pwd", "/")

	cl.ClearExcept(keep)
	all := cl.All()
	if len(all) != 1 || all[0].ID != keep {
		t.Errorf("ClearExcept() left %+v", all)
	}

	cl.ClearExcept("missing")
	if cl.Len() != 0 {
		t.Errorf("ClearExcept(missing) Len() = %d, want 0", cl.Len())
	}
}
