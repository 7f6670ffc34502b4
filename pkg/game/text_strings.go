package game

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// TextStrings 对话文本字符串表
// 对话脚本中以 "@<id>" 引用文本，运行时通过本表解析为显示文字
type TextStrings struct {
	strings map[string]string // ID -> 文本映射
}

// NewTextStrings 从文件系统加载文本表
// 参数：
//   - fsys: 数据文件系统（通常为嵌入的 data 目录）
//   - filePath: 文本文件路径（如 "text/en.txt"）
//
// 返回：
//   - *TextStrings: 文本表实例
//   - error: 如果文件读取或解析失败
//
// 文件格式：
//
//	[ID]
//	文本内容
//
// 示例：
//
//	[30010]
//	Hey, you're not supposed to be here.
func NewTextStrings(fsys fs.FS, filePath string) (*TextStrings, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open text strings file %s: %w", filePath, err)
	}
	defer file.Close()

	ts, err := ParseTextStrings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read text strings file %s: %w", filePath, err)
	}
	return ts, nil
}

// ParseTextStrings 从 Reader 解析文本表
func ParseTextStrings(r io.Reader) (*TextStrings, error) {
	ts := &TextStrings{
		strings: make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		// 键定义（格式：[ID]）
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		if currentKey != "" {
			ts.strings[currentKey] = line
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ts, nil
}

// GetString 根据 ID 获取文本
// 参数：
//   - key: 文本 ID（如 "30010"）
//
// 返回：
//   - string: 对应的文本内容，如果 ID 不存在则返回 "[key]"（用于调试）
func (ts *TextStrings) GetString(key string) string {
	if text, ok := ts.strings[key]; ok {
		return text
	}
	return "[" + key + "]"
}

// Resolve 解析文本引用
// "@30010" 形式的文本返回表中的文字，其余文本原样返回
func (ts *TextStrings) Resolve(text string) string {
	id, ok := TextID(text)
	if !ok {
		return text
	}
	return ts.GetString(id)
}

// Len 已加载的文本数量
func (ts *TextStrings) Len() int {
	return len(ts.strings)
}

// TextID 提取文本引用中的 ID
// 返回：
//   - string: "@" 之后的数字 ID
//   - bool: text 是否为合法的文本引用
func TextID(text string) (string, bool) {
	if len(text) < 2 || text[0] != '@' {
		return "", false
	}
	id := text[1:]
	for _, c := range id {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return id, true
}
