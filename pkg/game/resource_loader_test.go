package game

import (
	"sort"
	"testing"
	"testing/fstest"
)

func testDataFS() fstest.MapFS {
	return fstest.MapFS{
		"dialogs/intro.yack":  {Data: []byte(":start\nray: \"@30010\"\n")},
		"dialogs/guard.yack":  {Data: []byte(":main\nguard: \"Halt!\"\n")},
		"lips/ray_30010.lip":  {Data: []byte("0.0\tX\n0.3\tB\n1.5\tX\n")},
		"lips/ray_30011.lip":  {Data: []byte("broken\n")},
		"text/en.txt":         {Data: []byte(testStrings)},
		"sounds/footstep.wav": {Data: []byte("RIFF")},
	}
}

func TestResourceLoader_ReadDialog(t *testing.T) {
	rl := NewResourceLoader(testDataFS())

	data, err := rl.ReadDialog("intro")
	if err != nil {
		t.Fatalf("ReadDialog() error: %v", err)
	}
	if string(data) != ":start\nray: \"@30010\"\n" {
		t.Errorf("unexpected content %q", data)
	}

	if _, err := rl.ReadDialog("missing"); err == nil {
		t.Error("expected error for missing dialog")
	}
}

func TestResourceLoader_DialogNames(t *testing.T) {
	rl := NewResourceLoader(testDataFS())
	names, err := rl.DialogNames()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "guard" || names[1] != "intro" {
		t.Errorf("DialogNames = %v", names)
	}
}

func TestResourceLoader_LipSync(t *testing.T) {
	fsys := testDataFS()
	rl := NewResourceLoader(fsys)

	tests := []struct {
		name     string
		actor    string
		id       string
		wantNil  bool
		duration float64
	}{
		{"存在的口型", "ray", "30010", false, 1.5},
		{"格式错误", "ray", "30011", true, 0},
		{"不存在", "guard", "30010", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lip := rl.LipSync(tt.actor, tt.id)
			if (lip == nil) != tt.wantNil {
				t.Fatalf("LipSync(%s, %s) = %v, wantNil %v", tt.actor, tt.id, lip, tt.wantNil)
			}
			if lip != nil && lip.Duration() != tt.duration {
				t.Errorf("Duration = %v, want %v", lip.Duration(), tt.duration)
			}
		})
	}

	// 缓存：删除文件后仍返回缓存结果
	delete(fsys, "lips/ray_30010.lip")
	if rl.LipSync("ray", "30010") == nil {
		t.Error("expected cached lip sync")
	}
}

func TestResourcePaths(t *testing.T) {
	if got := DialogPath("intro"); got != "dialogs/intro.yack" {
		t.Errorf("DialogPath = %s", got)
	}
	if got := SoundPath("footstep"); got != "sounds/footstep.wav" {
		t.Errorf("SoundPath = %s", got)
	}
}
