package dialog

import "testing"

func TestLedgerQueries(t *testing.T) {
	l := NewLedger()
	l.Add(Record{Mode: ModeOnce, Actor: "ray", Dialog: "intro", Line: 5})
	l.Add(Record{Mode: ModeOnceEver, Actor: "ray", Dialog: "intro", Line: 7})
	l.Add(Record{Mode: ModeShowOnce, Actor: "ray", Dialog: "intro", Line: 9})

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"已选择的 once", l.IsOnce("ray", "intro", 5), false},
		{"其他角色的 once", l.IsOnce("reyes", "intro", 5), true},
		{"其他对话的 once", l.IsOnce("ray", "outro", 5), true},
		{"onceever 不区分角色", l.IsOnceEver("intro", 7), false},
		{"未记录的 onceever", l.IsOnceEver("intro", 5), true},
		{"已显示的 showonce", l.IsShowOnce("ray", "intro", 9), false},
		{"模式互不影响", l.IsTempOnce("ray", "intro", 9), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLedgerIdempotence(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 5; i++ {
		if !l.IsOnce("ray", "intro", 3) {
			t.Fatal("IsOnce changed without a record")
		}
	}

	r := Record{Mode: ModeOnce, Actor: "ray", Dialog: "intro", Line: 3}
	l.Add(r)
	l.Add(r)
	if l.Len() != 1 {
		t.Errorf("expected one record, got %d", l.Len())
	}
	for i := 0; i < 5; i++ {
		if l.IsOnce("ray", "intro", 3) {
			t.Fatal("IsOnce changed without a new record")
		}
	}
}

func TestLedgerPruneAndRestore(t *testing.T) {
	l := NewLedger()
	l.Add(Record{Mode: ModeTempOnce, Actor: "ray", Dialog: "intro", Line: 1})
	l.Add(Record{Mode: ModeOnce, Actor: "ray", Dialog: "intro", Line: 2})
	l.Add(Record{Mode: ModeTempOnce, Actor: "ray", Dialog: "intro", Line: 3})

	saved := l.Records()
	l.PruneTempOnce()
	if l.Len() != 1 || l.IsOnce("ray", "intro", 2) {
		t.Fatalf("expected only the once record to survive, got %+v", l.Records())
	}

	l.Restore(saved)
	if l.Len() != 3 || l.IsTempOnce("ray", "intro", 3) {
		t.Errorf("expected restored records, got %+v", l.Records())
	}
}

func TestModeChar(t *testing.T) {
	for _, m := range []Mode{ModeOnce, ModeShowOnce, ModeOnceEver, ModeTempOnce} {
		got, err := ParseModeChar(m.Char())
		if err != nil || got != m {
			t.Errorf("%s: round trip gave %v, %v", m, got, err)
		}
	}
	if _, err := ParseModeChar('x'); err == nil {
		t.Error("expected error for unknown mode char")
	}
}
