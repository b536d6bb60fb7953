package launch

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "True", "TRUE", "1", " true "} {
		v, err := ParseBool(s)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldBeTrue)
	}
	for _, s := range []string{"false", "False", "0"} {
		v, err := ParseBool(s)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldBeFalse)
	}
	for _, s := range []string{"yes", "", "2", "on"} {
		_, err := ParseBool(s)
		test.That(t, errors.Is(err, ErrInvalidCondition), test.ShouldBeTrue)
	}
}

func TestConditions(t *testing.T) {
	lc := newTestContext(t)
	lc.SetConfiguration("flag", "true")

	ok, err := IfCondition{Expression: Arg("flag")}.Satisfied(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)

	ok, err = UnlessCondition{Expression: Arg("flag")}.Satisfied(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)

	lc.SetConfiguration("flag", "maybe")
	_, err = UnlessCondition{Expression: Arg("flag")}.Satisfied(context.Background(), lc)
	test.That(t, errors.Is(err, ErrInvalidCondition), test.ShouldBeTrue)
}

func sampleDescription() *Description {
	return &Description{
		Arguments: []DeclaredArgument{
			{Name: "mode", Default: Text("fast"), Choices: []string{"fast", "slow"}},
			{Name: "robot", Default: Text("mbot")},
			{Name: "frame", Default: Concat{Arg("robot"), Text("_base")}},
			{Name: "enable_extra", Default: Text("false")},
		},
		Nodes: []Node{
			{
				Package:    "demo",
				Executable: "talker",
				Parameters: []Parameter{
					{Name: "frame", Value: Arg("frame")},
					{Name: "rate", Value: Text("10")},
					{Name: "label", Value: Text("10"), Type: ParamString},
				},
				Arguments: []Substitution{Text("--mode"), Arg("mode")},
			},
			{
				Package:    "demo",
				Executable: "extra",
				Condition:  IfCondition{Expression: Arg("enable_extra")},
			},
			{
				Package:    "demo",
				Executable: "listener",
				Name:       "ears",
				Namespace:  "robot",
				Output:     OutputScreen,
			},
		},
	}
}

func TestEvaluate(t *testing.T) {
	logger := logging.NewTestLogger(t)

	t.Run("defaults", func(t *testing.T) {
		plan, err := Evaluate(context.Background(), sampleDescription(), nil, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)

		frame, ok := plan.Argument("frame")
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, frame, test.ShouldEqual, "mbot_base")

		test.That(t, plan.Processes, test.ShouldHaveLength, 2)
		test.That(t, plan.Skipped, test.ShouldHaveLength, 1)
		test.That(t, plan.Skipped[0].Executable, test.ShouldEqual, "extra")

		talker := plan.Processes[0]
		test.That(t, talker.Output, test.ShouldEqual, OutputLog)
		test.That(t, talker.Arguments, test.ShouldResemble, []string{"--mode", "fast"})
		v, _ := talker.Parameter("frame")
		test.That(t, v, test.ShouldEqual, "mbot_base")
		v, _ = talker.Parameter("rate")
		test.That(t, v, test.ShouldEqual, 10)
		v, _ = talker.Parameter("label")
		test.That(t, v, test.ShouldEqual, "10")

		listener := plan.ProcessesNamed("ears")
		test.That(t, listener, test.ShouldHaveLength, 1)
		test.That(t, listener[0].FullyQualifiedName(), test.ShouldEqual, "/robot/ears")
		test.That(t, listener[0].Argv(), test.ShouldResemble, []string{
			"ros2", "run", "demo", "listener", "--ros-args", "-r", "__node:=ears", "-r", "__ns:=/robot",
		})
	})

	t.Run("overrides", func(t *testing.T) {
		plan, err := Evaluate(context.Background(), sampleDescription(),
			map[string]string{"robot": "turtle", "enable_extra": "TRUE", "undeclared": "x"}, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)

		frame, _ := plan.Argument("frame")
		test.That(t, frame, test.ShouldEqual, "turtle_base")
		test.That(t, plan.Processes, test.ShouldHaveLength, 3)
		test.That(t, plan.Skipped, test.ShouldBeEmpty)

		last := plan.Arguments[len(plan.Arguments)-1]
		test.That(t, last, test.ShouldResemble, ResolvedArgument{Name: "undeclared", Value: "x"})
	})

	t.Run("invalid choice", func(t *testing.T) {
		_, err := Evaluate(context.Background(), sampleDescription(), map[string]string{"mode": "medium"}, WithLogger(logger))
		test.That(t, errors.Is(err, ErrInvalidChoice), test.ShouldBeTrue)
	})

	t.Run("missing argument", func(t *testing.T) {
		d := &Description{Arguments: []DeclaredArgument{{Name: "required"}}}
		_, err := Evaluate(context.Background(), d, nil, WithLogger(logger))
		test.That(t, errors.Is(err, ErrMissingArgument), test.ShouldBeTrue)

		plan, err := Evaluate(context.Background(), d, map[string]string{"required": "set"}, WithLogger(logger))
		test.That(t, err, test.ShouldBeNil)
		v, _ := plan.Argument("required")
		test.That(t, v, test.ShouldEqual, "set")
	})

	t.Run("invalid condition value", func(t *testing.T) {
		_, err := Evaluate(context.Background(), sampleDescription(), map[string]string{"enable_extra": "yes"}, WithLogger(logger))
		test.That(t, errors.Is(err, ErrInvalidCondition), test.ShouldBeTrue)
	})
}

func TestDescriptionValidate(t *testing.T) {
	d := &Description{Arguments: []DeclaredArgument{{Name: "a"}, {Name: "a"}}}
	test.That(t, errors.Is(d.Validate(), ErrInvalidDescription), test.ShouldBeTrue)

	d = &Description{Nodes: []Node{{Package: "demo"}}}
	test.That(t, errors.Is(d.Validate(), ErrInvalidDescription), test.ShouldBeTrue)

	d = &Description{Nodes: []Node{{Package: "demo", Executable: "x", Output: "terminal"}}}
	test.That(t, errors.Is(d.Validate(), ErrInvalidDescription), test.ShouldBeTrue)

	test.That(t, sampleDescription().Validate(), test.ShouldBeNil)
}
