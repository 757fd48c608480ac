package visit

import "testing"

func TestStatusCan(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		action Action
		want   bool
	}{
		{"confirm pending", StatusPending, ActionConfirm, true},
		{"confirm rescheduled", StatusRescheduled, ActionConfirm, true},
		{"confirm confirmed", StatusConfirmed, ActionConfirm, false},
		{"complete confirmed", StatusConfirmed, ActionComplete, true},
		{"complete pending", StatusPending, ActionComplete, false},
		{"cancel confirmed", StatusConfirmed, ActionCancel, true},
		{"cancel completed", StatusCompleted, ActionCancel, false},
		{"reschedule cancelled", StatusCancelled, ActionReschedule, false},
		{"delete cancelled", StatusCancelled, ActionDelete, true},
		{"unknown allows all", StatusUnknown, ActionComplete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Can(tt.action); got != tt.want {
				t.Errorf("%q.Can(%q) = %v, want %v", tt.status, tt.action, got, tt.want)
			}
		})
	}
}

func TestActionTarget(t *testing.T) {
	tests := []struct {
		a    Action
		want Status
	}{
		{ActionConfirm, StatusConfirmed},
		{ActionCancel, StatusCancelled},
		{ActionComplete, StatusCompleted},
		{ActionReschedule, StatusRescheduled},
		{ActionDelete, StatusUnknown},
	}
	for _, tt := range tests {
		if got := tt.a.Target(); got != tt.want {
			t.Errorf("%q.Target() = %q, want %q", tt.a, got, tt.want)
		}
	}
}

func TestCheckAction(t *testing.T) {
	v := &Visit{RawStatus: "completada"}
	if err := CheckAction(v, ActionConfirm); err == nil {
		t.Fatal("expected error confirming a completed visit")
	}
	if err := CheckAction(v, ActionDelete); err != nil {
		t.Errorf("delete completed: %v", err)
	}
}
