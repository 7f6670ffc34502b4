package game

import (
	"testing"

	"github.com/gonewx/yack/pkg/dialog"
	"github.com/quasilyte/gdata/v2"
)

func newTestDialog() *dialog.Dialog {
	d := dialog.NewDialog(nil, nil, nil)
	d.Ledger().Add(dialog.Record{Mode: dialog.ModeOnce, Actor: "ray", Dialog: "intro", Line: 3})
	d.Ledger().Add(dialog.Record{Mode: dialog.ModeOnceEver, Actor: "ray", Dialog: "intro", Line: 7})
	d.Ledger().Add(dialog.Record{Mode: dialog.ModeTempOnce, Actor: "reyes", Dialog: "guard", Line: 2})
	d.SetContext(dialog.Context{Actor: "ray", DialogName: "intro", Parrot: true, Limit: 6})
	return d
}

// newTestGdata 在临时 HOME 下创建 gdata 管理器
func newTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: "test_yack_dialog"})
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}
	return m
}

// TestSnapshotApply 测试存档数据与对话引擎之间的转换
func TestSnapshotApply(t *testing.T) {
	src := newTestDialog()
	data := Snapshot(src)

	if len(data.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(data.Records))
	}
	if data.Records[0].Mode != "O" || data.Records[1].Mode != "E" || data.Records[2].Mode != "T" {
		t.Errorf("unexpected mode chars: %+v", data.Records)
	}

	dst := dialog.NewDialog(nil, nil, nil)
	if n := data.Apply(dst); n != 3 {
		t.Errorf("Apply restored %d records, want 3", n)
	}
	if !dst.Ledger().IsOnce("ray", "intro", 3) {
		t.Error("once record not restored")
	}
	if !dst.Ledger().IsOnceEver("intro", 7) {
		t.Error("once-ever record not restored")
	}
	if !dst.Ledger().IsTempOnce("reyes", "guard", 2) {
		t.Error("temp-once record not restored")
	}
	if dst.Context() != src.Context() {
		t.Errorf("context = %+v, want %+v", dst.Context(), src.Context())
	}
}

// TestApplySkipsInvalidModes 测试跳过无效的模式字符
func TestApplySkipsInvalidModes(t *testing.T) {
	data := &DialogSaveData{
		Records: []DialogRecordData{
			{Mode: "S", Dialog: "intro", Line: 1, Actor: "ray"},
			{Mode: "Q", Dialog: "intro", Line: 2, Actor: "ray"},
			{Mode: "", Dialog: "intro", Line: 3, Actor: "ray"},
			{Mode: "OS", Dialog: "intro", Line: 4, Actor: "ray"},
		},
	}
	d := dialog.NewDialog(nil, nil, nil)
	if n := data.Apply(d); n != 1 {
		t.Errorf("Apply restored %d records, want 1", n)
	}
	if !d.Ledger().IsShowOnce("ray", "intro", 1) {
		t.Error("show-once record not restored")
	}
}

// TestDialogSaveManager_NilGdata 测试降级模式
func TestDialogSaveManager_NilGdata(t *testing.T) {
	sm := NewDialogSaveManager(nil)
	d := newTestDialog()

	if err := sm.Save("slot1", d); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	found, err := sm.Load("slot1", dialog.NewDialog(nil, nil, nil))
	if err != nil || found {
		t.Errorf("Load() in degraded mode = (%v, %v), want (false, nil)", found, err)
	}
}

// TestDialogSaveManager_SaveLoad 测试存档往返
func TestDialogSaveManager_SaveLoad(t *testing.T) {
	sm := NewDialogSaveManager(newTestGdata(t))

	found, err := sm.Load("slot1", dialog.NewDialog(nil, nil, nil))
	if err != nil || found {
		t.Fatalf("Load() before Save = (%v, %v), want (false, nil)", found, err)
	}

	src := newTestDialog()
	if err := sm.Save("slot1", src); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	dst := dialog.NewDialog(nil, nil, nil)
	found, err = sm.Load("slot1", dst)
	if err != nil || !found {
		t.Fatalf("Load() = (%v, %v), want (true, nil)", found, err)
	}
	if dst.Ledger().Len() != 3 {
		t.Errorf("restored %d records, want 3", dst.Ledger().Len())
	}
	if dst.Context().Limit != 6 || dst.Context().Actor != "ray" {
		t.Errorf("context = %+v", dst.Context())
	}
}
