package types

import (
	"fmt"
	"strings"
)

// Direction 八方向，顺时针从北开始
type Direction int

const (
	DirNorth Direction = iota
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirNorthWest
	DirInvalid
)

var directionNames = [...]string{"n", "ne", "e", "se", "s", "sw", "w", "nw"}

// 每个方向的单位位移因子（屏幕坐标，y 向下）
var (
	dirXFactor = [...]float64{0, 1, 1, 1, 0, -1, -1, -1}
	dirYFactor = [...]float64{-1, -1, 0, 1, 1, 1, 0, -1}
)

// Valid 方向是否合法
func (d Direction) Valid() bool {
	return d >= DirNorth && d < DirInvalid
}

// XFactor 方向的 x 因子；非法方向返回 0
func (d Direction) XFactor() float64 {
	if !d.Valid() {
		return 0
	}
	return dirXFactor[d]
}

// YFactor 方向的 y 因子；非法方向返回 0
func (d Direction) YFactor() float64 {
	if !d.Valid() {
		return 0
	}
	return dirYFactor[d]
}

// Opposite 相反方向
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return DirInvalid
	}
	return (d + 4) % 8
}

// String 返回方向名称
func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// ParseDirection 解析方向名称（不区分大小写）
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return DirInvalid, fmt.Errorf("unknown direction %q", s)
}

// DirectionTowards 返回从 from 指向 to 的最接近方向
// 两点重合时返回 DirInvalid
func DirectionTowards(from, to Point3) Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return DirInvalid
	}
	sx, sy := sign(dx), sign(dy)
	// 一个轴远大于另一个轴时视为正方向
	adx, ady := dx*sx, dy*sy
	if adx > 2*ady {
		sy = 0
	} else if ady > 2*adx {
		sx = 0
	}
	for i := range dirXFactor {
		if dirXFactor[i] == sx && dirYFactor[i] == sy {
			return Direction(i)
		}
	}
	return DirInvalid
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
