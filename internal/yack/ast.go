// Package yack parses conversation scripts into a CompilationUnit.
//
// A script is a list of labels. Each label holds statements; a statement is
// one expression plus optional bracketed guard conditions:
//
//	:start
//	ray: "Hello there." [once]
//	1 "Who are you?" -> who [showonce]
//	2 "Bye." -> exit
//	!pause 0.5
//	$ g.visited = true
//	-> start
package yack

// CompilationUnit is the parsed form of one dialogue file.
// It is immutable after Parse returns.
type CompilationUnit struct {
	File   string
	Labels []*Label
}

// Label is a named entry point holding an ordered list of statements.
type Label struct {
	Name       string
	Line       int
	Statements []*Statement
}

// Statement is one expression guarded by zero or more conditions.
// All conditions must pass for the statement to run.
type Statement struct {
	Expr       Expression
	Conditions []Condition
	Line       int
}

// FindLabel returns the index of the first label called name whose line is at
// or after minLine. If none is found it rescans the whole file from line 0.
// It returns -1 when the label does not exist at all.
func (cu *CompilationUnit) FindLabel(minLine int, name string) int {
	if cu == nil {
		return -1
	}
	for i, l := range cu.Labels {
		if l.Name == name && l.Line >= minLine {
			return i
		}
	}
	if minLine == 0 {
		return -1
	}
	return cu.FindLabel(0, name)
}

// Label returns the label found by FindLabel, or nil.
func (cu *CompilationUnit) Label(minLine int, name string) *Label {
	i := cu.FindLabel(minLine, name)
	if i < 0 {
		return nil
	}
	return cu.Labels[i]
}

// Condition is a guard attached to a statement. The concrete types are
// CodeCond, Once, ShowOnce, OnceEver and TempOnce.
type Condition interface {
	SourceLine() int
	condition()
}

// CodeCond is a script expression evaluated at runtime.
type CodeCond struct {
	Code string
	Line int
}

// Once passes until the choice carrying it has been picked once.
type Once struct{ Line int }

// ShowOnce passes until the choice carrying it has been displayed.
type ShowOnce struct{ Line int }

// OnceEver is like Once but shared by every actor.
type OnceEver struct{ Line int }

// TempOnce passes until the choice has been displayed in this session.
type TempOnce struct{ Line int }

func (c *CodeCond) SourceLine() int { return c.Line }
func (c *Once) SourceLine() int     { return c.Line }
func (c *ShowOnce) SourceLine() int { return c.Line }
func (c *OnceEver) SourceLine() int { return c.Line }
func (c *TempOnce) SourceLine() int { return c.Line }

func (*CodeCond) condition() {}
func (*Once) condition()     {}
func (*ShowOnce) condition() {}
func (*OnceEver) condition() {}
func (*TempOnce) condition() {}

// Expression is the action part of a statement. The concrete types are the
// pointer types declared below; callers dispatch with a type switch.
type Expression interface {
	expression()
}

type (
	// Say makes an actor speak a line.
	Say struct {
		Actor string
		Text  string
	}
	// Goto jumps to the first label called Name at or after Line.
	Goto struct {
		Name string
		Line int
	}
	// Choice offers Text in slot Number-1 and jumps to Goto when picked.
	Choice struct {
		Number int
		Text   string
		Goto   Goto
	}
	// Pause blocks the dialogue for Seconds.
	Pause struct{ Seconds float64 }
	// Parrot toggles echoing the chosen line.
	Parrot struct{ Active bool }
	// Dialog changes the actor the choices are attributed to.
	Dialog struct{ Actor string }
	// Override selects a different dialogue node.
	Override struct{ Node string }
	// AllowObjects toggles object interaction during the dialogue.
	AllowObjects struct{ Active bool }
	// Limit caps the number of visible choices.
	Limit struct{ Max int }
	// WaitWhile blocks while Cond evaluates true.
	WaitWhile struct{ Cond string }
	// WaitFor waits for an actor to finish talking.
	WaitFor struct{ Actor string }
	// Shutup silences every talking actor.
	Shutup struct{}
	// CodeExp runs a script fragment.
	CodeExp struct{ Code string }
)

func (*Say) expression()          {}
func (*Goto) expression()         {}
func (*Choice) expression()       {}
func (*Pause) expression()        {}
func (*Parrot) expression()       {}
func (*Dialog) expression()       {}
func (*Override) expression()     {}
func (*AllowObjects) expression() {}
func (*Limit) expression()        {}
func (*WaitWhile) expression()    {}
func (*WaitFor) expression()      {}
func (*Shutup) expression()       {}
func (*CodeExp) expression()      {}
