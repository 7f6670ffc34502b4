package game

import (
	"errors"
	"testing"

	resource "github.com/quasilyte/ebitengine-resource"
)

// 测试中不创建音频上下文（CI 环境通常没有音频设备），用 fakeBank 代替 resource.Loader

type fakePlayer struct {
	volume  float64
	rewinds int
	plays   int
	err     error
}

func (p *fakePlayer) SetVolume(volume float64) { p.volume = volume }
func (p *fakePlayer) Rewind() error            { p.rewinds++; return p.err }
func (p *fakePlayer) Play()                    { p.plays++ }

type fakeBank struct {
	paths   map[resource.AudioID]string
	players map[resource.AudioID]*fakePlayer
	loads   int
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		paths:   make(map[resource.AudioID]string),
		players: make(map[resource.AudioID]*fakePlayer),
	}
}

func (b *fakeBank) Register(id resource.AudioID, path string) {
	if _, ok := b.paths[id]; ok {
		panic("audio id registered twice")
	}
	b.paths[id] = path
}

func (b *fakeBank) Player(id resource.AudioID) soundPlayer {
	if _, ok := b.paths[id]; !ok {
		panic("audio id not registered")
	}
	b.loads++
	p, ok := b.players[id]
	if !ok {
		p = &fakePlayer{}
		b.players[id] = p
	}
	return p
}

func TestAudioManager_Has(t *testing.T) {
	am := NewAudioManager(nil, testDataFS(), nil)

	tests := []struct {
		name    string
		soundID string
		want    bool
	}{
		{"存在的音效", "footstep", true},
		{"不存在的音效", "sword_draw", false},
		{"再次查询缓存", "footstep", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := am.Has(tt.soundID); got != tt.want {
				t.Errorf("Has(%s) = %v, want %v", tt.soundID, got, tt.want)
			}
		})
	}

	if am.nextID != 1 {
		t.Errorf("each existing sound should be registered once, nextID = %d", am.nextID)
	}
}

func TestAudioManager_PlaySound(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.5)
	bank := newFakeBank()
	am := newAudioManager(bank, testDataFS(), sm)

	if !am.PlaySound("footstep") {
		t.Fatal("PlaySound(footstep) = false, want true")
	}
	if !am.PlaySound("footstep") {
		t.Fatal("second PlaySound(footstep) = false, want true")
	}

	if len(bank.paths) != 1 || bank.paths[1] != "sounds/footstep.wav" {
		t.Errorf("registered paths = %v, want only sounds/footstep.wav", bank.paths)
	}
	p := bank.players[1]
	if p == nil {
		t.Fatal("footstep player was never loaded")
	}
	if p.plays != 2 || p.rewinds != 2 {
		t.Errorf("plays = %d, rewinds = %d, want 2 each", p.plays, p.rewinds)
	}
	if p.volume != 0.5 {
		t.Errorf("volume = %v, want 0.5", p.volume)
	}

	if am.PlaySound("sword_draw") {
		t.Error("PlaySound of a missing file should return false")
	}
	if len(bank.paths) != 1 {
		t.Errorf("missing sounds must not be registered, got %v", bank.paths)
	}
}

func TestAudioManager_RewindErrorStillPlays(t *testing.T) {
	bank := newFakeBank()
	am := newAudioManager(bank, testDataFS(), nil)
	am.Has("footstep")
	bank.players[1] = &fakePlayer{err: errors.New("closed")}

	if !am.PlaySound("footstep") {
		t.Fatal("PlaySound should still succeed after a rewind error")
	}
	if bank.players[1].plays != 1 {
		t.Errorf("plays = %d, want 1", bank.players[1].plays)
	}
}

func TestAudioManager_PreloadSounds(t *testing.T) {
	bank := newFakeBank()
	am := newAudioManager(bank, testDataFS(), nil)

	am.PreloadSounds([]string{"footstep", "missing", "footstep"})

	if bank.loads != 2 {
		t.Errorf("loads = %d, want 2", bank.loads)
	}
	if len(bank.paths) != 1 {
		t.Errorf("registered paths = %v, want one entry", bank.paths)
	}
}

func TestAudioManager_SilentMode(t *testing.T) {
	am := NewAudioManager(nil, testDataFS(), NewSettingsManager(nil))
	if am.PlaySound("footstep") {
		t.Error("PlaySound without an audio context should return false")
	}
	am.PlaySFX(1, "footstep")
	am.PreloadSounds([]string{"footstep", "missing"})
}

func TestAudioManager_SoundDisabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	bank := newFakeBank()
	am := newAudioManager(bank, testDataFS(), sm)
	if am.PlaySound("footstep") {
		t.Error("PlaySound should return false when sound is disabled")
	}
	if bank.loads != 0 {
		t.Errorf("disabled sound should not load players, loads = %d", bank.loads)
	}
}

func TestOpenAsset(t *testing.T) {
	open := openAsset(testDataFS())

	f := open("sounds/footstep.wav")
	buf := make([]byte, 4)
	n, _ := f.Read(buf)
	f.Close()
	if string(buf[:n]) != "RIFF" {
		t.Errorf("read %q, want RIFF", buf[:n])
	}

	defer func() {
		if recover() == nil {
			t.Error("opening a missing asset should panic")
		}
	}()
	open("sounds/none.wav")
}
