package main

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// 游戏代码引用的每个音效都必须嵌入，且能被 ebitengine-resource 使用的 wav 解码器解码
func TestEmbeddedSounds(t *testing.T) {
	sounds := []string{
		"footstep",
		"footstep_stone",
		"footstep_wood",
		"swing",
		"summon",
		"sword_draw",
		"sword_sheathe",
	}
	for _, id := range sounds {
		t.Run(id, func(t *testing.T) {
			data, err := fs.ReadFile(dataFS, "data/sounds/"+id+".wav")
			if err != nil {
				t.Fatalf("sound not embedded: %v", err)
			}
			stream, err := wav.DecodeWithoutResampling(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("DecodeWithoutResampling() error: %v", err)
			}
			if stream.Length() <= 0 {
				t.Errorf("stream length = %d, want > 0", stream.Length())
			}
		})
	}
}
