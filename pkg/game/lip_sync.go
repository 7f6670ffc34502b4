package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LipKey 口型关键帧
type LipKey struct {
	Time   float64 // 秒
	Letter byte    // 口型字母（'A'..'H'，'X' 为闭嘴）
}

// LipSync 一句台词的口型数据
// 最后一个关键帧的时间即台词时长
type LipSync struct {
	keys []LipKey
}

// ParseLipSync 解析 .lip 文件
//
// 文件每行一个关键帧，时间与字母以制表符分隔：
//
//	0.00	X
//	0.12	B
//	0.40	X
func ParseLipSync(r io.Reader) (*LipSync, error) {
	lip := &LipSync{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 || len(fields[1]) != 1 {
			return nil, fmt.Errorf("line %d: malformed lip key %q", lineNo, line)
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time: %w", lineNo, err)
		}
		if n := len(lip.keys); n > 0 && t < lip.keys[n-1].Time {
			return nil, fmt.Errorf("line %d: time %.2f goes backwards", lineNo, t)
		}
		lip.keys = append(lip.keys, LipKey{Time: t, Letter: fields[1][0]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lip, nil
}

// Duration 台词时长（秒），没有关键帧时为 0
func (l *LipSync) Duration() float64 {
	if len(l.keys) == 0 {
		return 0
	}
	return l.keys[len(l.keys)-1].Time
}

// LetterAt 时刻 t 的口型，t 早于第一个关键帧或没有数据时返回 'X'
func (l *LipSync) LetterAt(t float64) byte {
	letter := byte('X')
	for _, k := range l.keys {
		if k.Time > t {
			break
		}
		letter = k.Letter
	}
	return letter
}
