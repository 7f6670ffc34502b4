package game

import (
	"fmt"
	"io/fs"
	"log"
	"path"
)

// Resource directories inside the data file system.
const (
	dialogDir = "dialogs"
	lipDir    = "lips"
	soundDir  = "sounds"
)

// ResourceLoader resolves dialogue scripts, lip-sync data and text tables
// by name inside a single data file system.
//
// The file system is usually the embedded data directory (see embed.go):
//
//	sub, _ := embedded.Sub("data")
//	loader := NewResourceLoader(sub)
//	src, err := loader.ReadDialog("intro") // dialogs/intro.yack
//
// Lip-sync lookups are cached, including misses, because the dialogue target
// asks once per spoken line.
type ResourceLoader struct {
	fsys     fs.FS
	lipCache map[string]*LipSync // "<actor>_<id>" -> lip data, nil for a known miss
}

// NewResourceLoader creates a loader rooted at fsys.
func NewResourceLoader(fsys fs.FS) *ResourceLoader {
	return &ResourceLoader{
		fsys:     fsys,
		lipCache: make(map[string]*LipSync),
	}
}

// FS returns the underlying file system.
func (rl *ResourceLoader) FS() fs.FS {
	return rl.fsys
}

// ReadDialog reads dialogs/<name>.yack.
func (rl *ResourceLoader) ReadDialog(name string) ([]byte, error) {
	data, err := fs.ReadFile(rl.fsys, DialogPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read dialog %s: %w", name, err)
	}
	return data, nil
}

// DialogNames lists the dialogue scripts available in dialogs/.
func (rl *ResourceLoader) DialogNames() ([]string, error) {
	matches, err := fs.Glob(rl.fsys, path.Join(dialogDir, "*.yack"))
	if err != nil {
		return nil, fmt.Errorf("failed to list dialogs: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := path.Base(m)
		names = append(names, base[:len(base)-len(".yack")])
	}
	return names, nil
}

// LipSync returns the lip-sync data for actor saying text id, or nil when
// the line has no .lip file.
func (rl *ResourceLoader) LipSync(actor, id string) *LipSync {
	key := actor + "_" + id
	if lip, ok := rl.lipCache[key]; ok {
		return lip
	}

	var lip *LipSync
	file, err := rl.fsys.Open(path.Join(lipDir, key+".lip"))
	if err == nil {
		lip, err = ParseLipSync(file)
		file.Close()
		if err != nil {
			log.Printf("[ResourceLoader] Warning: Failed to parse lip file %s: %v", key, err)
			lip = nil
		}
	}
	rl.lipCache[key] = lip
	return lip
}

// SoundPath maps a sound id to its file under sounds/.
func SoundPath(id string) string {
	return path.Join(soundDir, id+".wav")
}

// DialogPath maps a dialogue name to its file under dialogs/.
func DialogPath(name string) string {
	return path.Join(dialogDir, name+".yack")
}
