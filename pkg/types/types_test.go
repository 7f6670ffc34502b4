package types

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDirectionFactors(t *testing.T) {
	tests := []struct {
		dir    Direction
		wx, wy float64
	}{
		{DirNorth, 0, -1},
		{DirNorthEast, 1, -1},
		{DirEast, 1, 0},
		{DirSouthEast, 1, 1},
		{DirSouth, 0, 1},
		{DirSouthWest, -1, 1},
		{DirWest, -1, 0},
		{DirNorthWest, -1, -1},
		{DirInvalid, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if tt.dir.XFactor() != tt.wx || tt.dir.YFactor() != tt.wy {
				t.Errorf("factors = (%v, %v), want (%v, %v)", tt.dir.XFactor(), tt.dir.YFactor(), tt.wx, tt.wy)
			}
		})
	}
}

func TestDirectionTowards(t *testing.T) {
	origin := Point3{}
	tests := []struct {
		name string
		to   Point3
		want Direction
	}{
		{"正东", Point3{X: 10}, DirEast},
		{"东南", Point3{X: 10, Y: 9}, DirSouthEast},
		{"接近正北", Point3{X: 1, Y: -10}, DirNorth},
		{"重合", Point3{}, DirInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionTowards(origin, tt.to); got != tt.want {
				t.Errorf("DirectionTowards = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" SW ")
	if err != nil || d != DirSouthWest {
		t.Errorf("ParseDirection(SW) = (%v, %v)", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if DirEast.Opposite() != DirWest || DirNorthWest.Opposite() != DirSouthEast {
		t.Error("Opposite mismatch")
	}
}

func TestBoxOverlap(t *testing.T) {
	a := Box{Pos: Point3{0, 0, 0}, Dims: Point3{10, 10, 10}}
	tests := []struct {
		name           string
		b              Box
		overlap, touch bool
	}{
		{"相交", Box{Pos: Point3{5, 5, 5}, Dims: Point3{10, 10, 10}}, true, true},
		{"贴边", Box{Pos: Point3{10, 0, 0}, Dims: Point3{10, 10, 10}}, false, true},
		{"分离", Box{Pos: Point3{20, 0, 0}, Dims: Point3{10, 10, 10}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.overlap {
				t.Errorf("Overlaps = %v, want %v", got, tt.overlap)
			}
			if got := a.Touches(tt.b); got != tt.touch {
				t.Errorf("Touches = %v, want %v", got, tt.touch)
			}
		})
	}
}

func TestPointLerp(t *testing.T) {
	p := Point3{0, 0, 0}.Lerp(Point3{10, 20, 30}, 0.5)
	if p != (Point3{5, 10, 15}) {
		t.Errorf("Lerp = %v", p)
	}
	if l := (Point3{3, 4, 0}).Length(); math.Abs(l-5) > 1e-9 {
		t.Errorf("Length = %v", l)
	}
}

func TestAnimSequenceYAML(t *testing.T) {
	var out struct {
		Seq AnimSequence `yaml:"seq"`
	}
	if err := yaml.Unmarshal([]byte("seq: readyWeapon\n"), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.Seq != AnimReadyWeapon {
		t.Errorf("Seq = %v, want readyWeapon", out.Seq)
	}
	if err := yaml.Unmarshal([]byte("seq: fly\n"), &out); err == nil {
		t.Error("expected error for unknown sequence")
	}
}
