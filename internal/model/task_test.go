package model

import "testing"

func TestValidTaskStatus(t *testing.T) {
	for _, s := range []string{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone} {
		if !ValidTaskStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "started", "DONE"} {
		if ValidTaskStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestValidTaskPriority(t *testing.T) {
	for _, p := range []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh} {
		if !ValidTaskPriority(p) {
			t.Fatalf("expected %q to be valid", p)
		}
	}
	if ValidTaskPriority("urgent") {
		t.Fatal("expected \"urgent\" to be invalid")
	}
}
