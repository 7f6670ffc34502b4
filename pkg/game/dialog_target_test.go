package game

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
)

// fakeEvaluator 记录求值过的表达式
type fakeEvaluator struct {
	results map[string]bool
	calls   []string
}

func (f *fakeEvaluator) EvalBool(expr string) bool {
	f.calls = append(f.calls, expr)
	return f.results[expr]
}

func newTestTarget(t *testing.T) (*ActorDialogTarget, *ecs.EntityManager, ecs.EntityID, *fakeEvaluator) {
	t.Helper()
	em := ecs.NewEntityManager()
	ray := em.CreateEntity()
	ecs.AddComponent(em, ray, &components.ActorComponent{
		Key:        "ray",
		TalkColor:  color.RGBA{R: 0x80, G: 0x80, B: 0xff, A: 0xff},
		HoverColor: color.RGBA{R: 0xc0, G: 0xc0, B: 0xff, A: 0xff},
	})
	reyes := em.CreateEntity()
	ecs.AddComponent(em, reyes, &components.ActorComponent{Key: "reyes"})

	texts, err := ParseTextStrings(strings.NewReader(testStrings))
	if err != nil {
		t.Fatal(err)
	}
	eval := &fakeEvaluator{results: map[string]bool{"g.door_open": true}}
	target := NewActorDialogTarget(em, config.DefaultDialogConfig(), texts, NewResourceLoader(testDataFS()), eval)
	return target, em, ray, eval
}

func TestActorDialogTarget_SayWithLipSync(t *testing.T) {
	target, em, ray, _ := newTestTarget(t)

	m := target.Say("ray", "@30010")
	talking, ok := ecs.GetComponent[*components.TalkingComponent](em, ray)
	if !ok {
		t.Fatal("Say should attach a TalkingComponent")
	}
	if !talking.Active || talking.Text != "Hey, you're not supposed to be here." {
		t.Fatalf("talking = %+v", talking)
	}
	if talking.Remaining != 1.5 {
		t.Errorf("lip duration: got %v, want 1.5", talking.Remaining)
	}
	if !target.IsTalking() {
		t.Error("IsTalking should be true while the line plays")
	}

	m.Update(1.0)
	if !m.IsEnabled() || math.Abs(talking.Remaining-0.5) > 1e-9 {
		t.Fatalf("after 1s: enabled=%v remaining=%v", m.IsEnabled(), talking.Remaining)
	}
	m.Update(0.5)
	if m.IsEnabled() || talking.Active {
		t.Error("line should end after the lip duration")
	}
	if target.IsTalking() {
		t.Error("IsTalking should be false after the line ends")
	}
}

func TestActorDialogTarget_SayDuration(t *testing.T) {
	target, _, _, _ := newTestTarget(t)

	tests := []struct {
		name  string
		actor string
		text  string
		want  float64
	}{
		{"普通文本按字数", "ray", "Hi!", 1.0 + 3*0.05},
		{"中文按字符数", "ray", "你好", 1.0 + 2*0.05},
		{"有口型数据", "ray", "@30010", 1.5},
		{"无口型数据的引用", "reyes", "@30011", 1.0 + float64(len("Who are you?"))*0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := target.texts.Resolve(tt.text)
			got := target.SayDuration(tt.actor, tt.text, display)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SayDuration = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActorDialogTarget_Shutup(t *testing.T) {
	target, em, ray, _ := newTestTarget(t)

	m := target.Say("ray", "A long line that keeps going")
	target.Shutup()
	if m.IsEnabled() {
		t.Error("Shutup should stop the line")
	}
	talking, _ := ecs.GetComponent[*components.TalkingComponent](em, ray)
	if talking.Active {
		t.Error("actor should stop talking")
	}
}

func TestActorDialogTarget_SayReplacesPreviousLine(t *testing.T) {
	target, em, ray, _ := newTestTarget(t)

	first := target.Say("ray", "First")
	second := target.Say("ray", "Second")
	if first.IsEnabled() {
		t.Error("a new line should interrupt the previous one")
	}
	talking, _ := ecs.GetComponent[*components.TalkingComponent](em, ray)
	if !second.IsEnabled() || !talking.Active || talking.Text != "Second" {
		t.Errorf("second line should be active: %+v", talking)
	}
}

func TestActorDialogTarget_SayUnknownActor(t *testing.T) {
	target, _, _, _ := newTestTarget(t)
	m := target.Say("nobody", "Hello")
	if m == nil || !m.IsEnabled() {
		t.Fatal("Say should still return a running motor")
	}
	m.Update(10)
	if m.IsEnabled() {
		t.Error("motor should end after its duration")
	}
}

func TestActorDialogTarget_ExecCond(t *testing.T) {
	target, _, _, eval := newTestTarget(t)
	target.SelectActor("ray")

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"当前角色", "ray", true},
		{"其他角色", "reyes", false},
		{"脚本为真", "g.door_open", true},
		{"脚本为假", "g.has_key", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := target.ExecCond(tt.code); got != tt.want {
				t.Errorf("ExecCond(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}

	if len(eval.calls) != 2 {
		t.Errorf("actor names must not reach the script host, calls = %v", eval.calls)
	}
}

func TestActorDialogTarget_ExecCondFollowsSelection(t *testing.T) {
	target, _, _, _ := newTestTarget(t)
	if target.ExecCond("ray") {
		t.Error("no actor selected, actor conditions must be false")
	}

	target.SelectActor("reyes")
	if target.SelectedActor() != "reyes" {
		t.Fatalf("SelectedActor() = %q", target.SelectedActor())
	}
	if !target.ExecCond("reyes") || target.ExecCond("ray") {
		t.Error("actor condition should follow the selected actor")
	}
}

func TestActorDialogTarget_ExecCondWithoutScript(t *testing.T) {
	em := ecs.NewEntityManager()
	target := NewActorDialogTarget(em, nil, nil, nil, nil)
	if target.ExecCond("g.anything") {
		t.Error("conditions without a script host must be false")
	}
}

func TestActorDialogTarget_WaitWhile(t *testing.T) {
	target, _, _, eval := newTestTarget(t)
	m := target.WaitWhile("g.door_open")
	m.Update(0.016)
	if !m.IsEnabled() {
		t.Fatal("should wait while the condition holds")
	}
	eval.results["g.door_open"] = false
	m.Update(0.016)
	if m.IsEnabled() {
		t.Error("should stop once the condition is false")
	}
}

func TestActorDialogTarget_Colors(t *testing.T) {
	target, _, _, _ := newTestTarget(t)

	if got := target.ActorColor("ray"); got != (color.RGBA{R: 0x80, G: 0x80, B: 0xff, A: 0xff}) {
		t.Errorf("ActorColor(ray) = %v", got)
	}
	if got := target.ActorColorHover("ray"); got != (color.RGBA{R: 0xc0, G: 0xc0, B: 0xff, A: 0xff}) {
		t.Errorf("ActorColorHover(ray) = %v", got)
	}
	if got := target.ActorColor("reyes"); got != defaultTalkColor {
		t.Errorf("ActorColor(reyes) = %v, want default", got)
	}
	if got := target.ActorColorHover("nobody"); got != defaultHoverColor {
		t.Errorf("ActorColorHover(nobody) = %v, want default", got)
	}
}
