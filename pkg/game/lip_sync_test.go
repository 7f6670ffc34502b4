package game

import (
	"strings"
	"testing"
)

func TestParseLipSync(t *testing.T) {
	lip, err := ParseLipSync(strings.NewReader("0.00\tX\n0.12\tB\n\n0.40\tC\n0.75\tX\n"))
	if err != nil {
		t.Fatalf("ParseLipSync() error: %v", err)
	}
	if lip.Duration() != 0.75 {
		t.Errorf("Duration = %v, want 0.75", lip.Duration())
	}

	tests := []struct {
		name string
		time float64
		want byte
	}{
		{"开始", 0, 'X'},
		{"第二帧", 0.2, 'B'},
		{"恰好关键帧", 0.40, 'C'},
		{"结束之后", 2, 'X'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lip.LetterAt(tt.time); got != tt.want {
				t.Errorf("LetterAt(%v) = %c, want %c", tt.time, got, tt.want)
			}
		})
	}
}

func TestParseLipSyncErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"缺少字母", "0.1\n"},
		{"时间非法", "abc\tA\n"},
		{"时间倒退", "0.5\tA\n0.2\tB\n"},
		{"字母过长", "0.1\tAB\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLipSync(strings.NewReader(tt.input)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestEmptyLipSync(t *testing.T) {
	lip, err := ParseLipSync(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if lip.Duration() != 0 || lip.LetterAt(1) != 'X' {
		t.Error("empty lip sync should have zero duration and closed mouth")
	}
}
