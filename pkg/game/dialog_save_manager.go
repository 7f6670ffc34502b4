package game

import (
	"fmt"
	"log"

	"github.com/gonewx/yack/pkg/dialog"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DialogRecordData 条件记录的存档格式
// 每条记录存为 (模式字符, 对话名, 行号, 角色) 元组
type DialogRecordData struct {
	Mode   string `yaml:"mode"` // "O" / "S" / "E" / "T"
	Dialog string `yaml:"dialog"`
	Line   int    `yaml:"line"`
	Actor  string `yaml:"actor"`
}

// DialogSaveData 对话存档
type DialogSaveData struct {
	Records []DialogRecordData `yaml:"records"`
	Context dialog.Context     `yaml:"context"`
}

// DialogSaveManager 对话存档管理器
// 负责把条件记录账本和对话上下文持久化到 gdata
type DialogSaveManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
}

const dialogSaveObject = "dialog"

// NewDialogSaveManager 创建对话存档管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，不持久化）
func NewDialogSaveManager(gdataManager *gdata.Manager) *DialogSaveManager {
	return &DialogSaveManager{gdataManager: gdataManager}
}

// Snapshot 从对话引擎生成存档数据
func Snapshot(d *dialog.Dialog) *DialogSaveData {
	records := d.Ledger().Records()
	data := &DialogSaveData{
		Records: make([]DialogRecordData, 0, len(records)),
		Context: d.Context(),
	}
	for _, r := range records {
		data.Records = append(data.Records, DialogRecordData{
			Mode:   string(r.Mode.Char()),
			Dialog: r.Dialog,
			Line:   r.Line,
			Actor:  r.Actor,
		})
	}
	return data
}

// Apply 把存档数据恢复到对话引擎
// 未知模式字符的记录会被跳过
//
// 返回：
//   - int: 恢复的记录条数
func (data *DialogSaveData) Apply(d *dialog.Dialog) int {
	records := make([]dialog.Record, 0, len(data.Records))
	for _, r := range data.Records {
		if len(r.Mode) != 1 {
			log.Printf("[DialogSaveManager] Warning: Skipping record with invalid mode %q", r.Mode)
			continue
		}
		mode, err := dialog.ParseModeChar(r.Mode[0])
		if err != nil {
			log.Printf("[DialogSaveManager] Warning: Skipping record: %v", err)
			continue
		}
		records = append(records, dialog.Record{
			Mode:   mode,
			Actor:  r.Actor,
			Dialog: r.Dialog,
			Line:   r.Line,
		})
	}
	d.Ledger().Restore(records)
	d.SetContext(data.Context)
	return len(records)
}

// Save 保存对话状态到指定存档槽
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *DialogSaveManager) Save(slot string, d *dialog.Dialog) error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(Snapshot(d))
	if err != nil {
		return fmt.Errorf("failed to marshal dialog state: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(dialogSaveObject, slot, data); err != nil {
		return fmt.Errorf("failed to save dialog state: %w", err)
	}

	log.Printf("[DialogSaveManager] Saved %d dialog records to slot %s", d.Ledger().Len(), slot)
	return nil
}

// Load 从存档槽恢复对话状态
//
// 返回：
//   - bool: 存档是否存在（不存在时对话状态保持不变）
//   - error: 读取或反序列化失败
func (sm *DialogSaveManager) Load(slot string, d *dialog.Dialog) (bool, error) {
	if sm.gdataManager == nil {
		return false, nil
	}

	if !sm.gdataManager.ObjectPropExists(dialogSaveObject, slot) {
		return false, nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(dialogSaveObject, slot)
	if err != nil {
		return false, fmt.Errorf("failed to load dialog state: %w", err)
	}

	var data DialogSaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return false, fmt.Errorf("failed to unmarshal dialog state: %w", err)
	}

	n := data.Apply(d)
	log.Printf("[DialogSaveManager] Restored %d dialog records from slot %s", n, slot)
	return true, nil
}
