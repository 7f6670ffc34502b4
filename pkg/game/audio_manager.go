package game

import (
	"io"
	"io/fs"
	"log"

	"github.com/gonewx/yack/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/audio"
	resource "github.com/quasilyte/ebitengine-resource"
)

// AudioManager 音效管理器
// 职责：
//   - 按音效 ID 从数据文件系统（sounds/<id>.wav）注册并加载音效
//   - 应用 SettingsManager 中的音量和开关
//   - 作为动画驱动进程的帧音效播放器（anim.SoundPlayer）
//
// 没有音频上下文时处于静音模式：所有播放请求返回 false。
type AudioManager struct {
	bank     soundBank // 静音模式下为 nil
	fsys     fs.FS
	settings *SettingsManager // 可为 nil

	ids    map[string]resource.AudioID // 音效 ID -> 资源 ID，0 表示文件不存在
	nextID resource.AudioID
}

// soundBank 音效资源的注册与解码
type soundBank interface {
	Register(id resource.AudioID, path string)
	Player(id resource.AudioID) soundPlayer
}

// soundPlayer 是 *audio.Player 中播放音效用到的部分
type soundPlayer interface {
	SetVolume(volume float64)
	Rewind() error
	Play()
}

// resourceBank 基于 ebitengine-resource 的音效库，按扩展名解码（.wav / .ogg）
type resourceBank struct {
	loader *resource.Loader
}

func newResourceBank(audioContext *audio.Context, fsys fs.FS) *resourceBank {
	loader := resource.NewLoader(audioContext)
	loader.OpenAssetFunc = openAsset(fsys)
	return &resourceBank{loader: loader}
}

func (b *resourceBank) Register(id resource.AudioID, path string) {
	b.loader.AudioRegistry.Assign(map[resource.AudioID]resource.AudioInfo{
		id: {Path: path},
	})
}

func (b *resourceBank) Player(id resource.AudioID) soundPlayer {
	return b.loader.LoadAudio(id).Player
}

// openAsset 返回 resource.Loader 的资源打开函数
// resource.Loader 约定打开失败时 panic；AudioManager 注册前已确认文件存在
func openAsset(fsys fs.FS) func(path string) io.ReadCloser {
	return func(path string) io.ReadCloser {
		f, err := fsys.Open(path)
		if err != nil {
			panic(err)
		}
		return f
	}
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - audioContext: ebiten 音频上下文，可为 nil（静音模式）
//   - fsys: 数据文件系统
//   - settings: 设置管理器，可为 nil（使用默认设置）
func NewAudioManager(audioContext *audio.Context, fsys fs.FS, settings *SettingsManager) *AudioManager {
	var bank soundBank
	if audioContext != nil {
		bank = newResourceBank(audioContext, fsys)
	}
	return newAudioManager(bank, fsys, settings)
}

func newAudioManager(bank soundBank, fsys fs.FS, settings *SettingsManager) *AudioManager {
	return &AudioManager{
		bank:     bank,
		fsys:     fsys,
		settings: settings,
		ids:      make(map[string]resource.AudioID),
	}
}

// Has 音效文件是否存在
func (am *AudioManager) Has(soundID string) bool {
	return am.resolve(soundID) != 0
}

// resolve 查找或注册音效，文件不存在时返回 0
func (am *AudioManager) resolve(soundID string) resource.AudioID {
	if id, ok := am.ids[soundID]; ok {
		return id
	}

	path := SoundPath(soundID)
	if _, err := fs.Stat(am.fsys, path); err != nil {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		am.ids[soundID] = 0
		return 0
	}

	am.nextID++
	id := am.nextID
	am.ids[soundID] = id
	if am.bank != nil {
		am.bank.Register(id, path)
	}
	return id
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	s := am.currentSettings()
	if !s.SoundEnabled || am.bank == nil {
		return false
	}

	id := am.resolve(soundID)
	if id == 0 {
		return false
	}

	player := am.bank.Player(id)
	player.SetVolume(s.SoundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlaySFX 播放动画帧音效
func (am *AudioManager) PlaySFX(actor ecs.EntityID, sfx string) {
	if !am.PlaySound(sfx) && am.bank != nil {
		log.Printf("[AudioManager] Actor %d: sfx %s not played", actor, sfx)
	}
}

// PreloadSounds 预加载音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	loaded := 0
	for _, soundID := range soundIDs {
		id := am.resolve(soundID)
		if id == 0 || am.bank == nil {
			continue
		}
		am.bank.Player(id)
		loaded++
	}
	log.Printf("[AudioManager] Preloaded %d sounds", loaded)
}

func (am *AudioManager) currentSettings() *Settings {
	if am.settings != nil {
		return am.settings.GetSettings()
	}
	return DefaultSettings()
}
