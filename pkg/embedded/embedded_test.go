package embedded

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/dialogs/intro.yack":   {Data: []byte(":start\nray: \"Hi\"\n")},
		"data/dialogs/outro.yack":   {Data: []byte(":start\n")},
		"data/dialog_config.yaml":   {Data: []byte("maxChoices: 6\n")},
		"data/sounds/footstep1.wav": {Data: []byte("RIFF")},
	}
}

// TestNotInitialized 测试未初始化时的错误
func TestNotInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to return false")
	}

	if _, err := Open("data/dialog_config.yaml"); err != errNotInitialized {
		t.Errorf("Open: got %v, want errNotInitialized", err)
	}
	if _, err := ReadFile("data/dialog_config.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile: got %v, want errNotInitialized", err)
	}
}

// TestReadFile 测试路径标准化和读取
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/dialog_config.yaml", false},
		{"带 ./ 前缀", "./data/dialog_config.yaml", false},
		{"未知前缀", "assets/dialog_config.yaml", true},
		{"文件不存在", "data/missing.yaml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != "maxChoices: 6\n" {
				t.Errorf("unexpected content %q", data)
			}
		})
	}
}

// TestGlobAndSub 测试文件匹配和子文件系统
func TestGlobAndSub(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	matches, err := Glob("data/dialogs/*.yack")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 dialogs, got %v", matches)
	}

	sub, err := Sub("data/dialogs/")
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if _, err := fs.Stat(sub, "intro.yack"); err != nil {
		t.Errorf("expected intro.yack in sub fs: %v", err)
	}

	if !Exists("data/sounds/footstep1.wav") || Exists("data/sounds/none.wav") {
		t.Error("Exists returned wrong results")
	}
}
