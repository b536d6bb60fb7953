package launch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

type fakeRunner struct {
	calls  [][]string
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, argv []string) (string, string, error) {
	f.calls = append(f.calls, argv)
	return f.stdout, f.stderr, f.err
}

type fakeLocator map[string]string

func (f fakeLocator) PackageShare(name string) (string, error) {
	if p, ok := f[name]; ok {
		return p, nil
	}
	return "", errors.Errorf("package %q not found", name)
}

func newTestContext(t *testing.T, opts ...Option) *Context {
	return NewContext(append([]Option{WithLogger(logging.NewTestLogger(t))}, opts...)...)
}

func TestLaunchConfiguration(t *testing.T) {
	lc := newTestContext(t)
	lc.SetConfiguration("model", "/tmp/robot.urdf")

	v, err := Arg("model").Perform(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, "/tmp/robot.urdf")

	_, err = Arg("missing").Perform(context.Background(), lc)
	test.That(t, errors.Is(err, ErrUnknownArgument), test.ShouldBeTrue)
}

func TestConcatAndPathJoin(t *testing.T) {
	lc := newTestContext(t, WithLocator(fakeLocator{"learning_urdf": "/opt/ros/share/learning_urdf"}))
	lc.SetConfiguration("name", "mbot")

	v, err := Concat{Text("xacro "), Arg("name")}.Perform(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, "xacro mbot")

	v, err = PathJoin{PackageShare{Package: "learning_urdf"}, Text("urdf"), Text("mbot_base.urdf")}.Perform(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, filepath.Join("/opt/ros/share/learning_urdf", "urdf", "mbot_base.urdf"))

	_, err = PackageShare{Package: "nope"}.Perform(context.Background(), lc)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestEnvironmentVariable(t *testing.T) {
	env := map[string]string{"ROBOT": "mbot"}
	lc := newTestContext(t, WithEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))

	v, err := EnvironmentVariable{Name: "ROBOT"}.Perform(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, "mbot")

	v, err = EnvironmentVariable{Name: "UNSET", Default: Text("fallback")}.Perform(context.Background(), lc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, "fallback")

	_, err = EnvironmentVariable{Name: "UNSET"}.Perform(context.Background(), lc)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCommand(t *testing.T) {
	t.Run("splits and returns stdout", func(t *testing.T) {
		runner := &fakeRunner{stdout: "<robot/>"}
		lc := newTestContext(t, WithRunner(runner))
		lc.SetConfiguration("model", "/path with space/robot.urdf")

		v, err := Command{Parts: []Substitution{Text("xacro '"), Arg("model"), Text("' use_gui:=true")}}.Perform(context.Background(), lc)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldEqual, "<robot/>")
		test.That(t, runner.calls, test.ShouldResemble, [][]string{{"xacro", "/path with space/robot.urdf", "use_gui:=true"}})
	})

	t.Run("non-zero exit", func(t *testing.T) {
		lc := newTestContext(t, WithRunner(&fakeRunner{stderr: "No such file", err: errors.New("exit status 2")}))
		_, err := Command{Parts: []Substitution{Text("xacro missing.urdf")}}.Perform(context.Background(), lc)
		test.That(t, errors.Is(err, ErrCommandFailed), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "No such file")
	})

	t.Run("empty command", func(t *testing.T) {
		lc := newTestContext(t, WithRunner(&fakeRunner{}))
		_, err := Command{Parts: []Substitution{Text("   ")}}.Perform(context.Background(), lc)
		test.That(t, errors.Is(err, ErrCommandFailed), test.ShouldBeTrue)
	})

	t.Run("stderr policies", func(t *testing.T) {
		runner := &fakeRunner{stdout: "out", stderr: "warning: deprecated"}
		lc := newTestContext(t, WithRunner(runner))
		cmd := Command{Parts: []Substitution{Text("xacro a.urdf")}}

		_, err := cmd.Perform(context.Background(), lc)
		test.That(t, errors.Is(err, ErrCommandFailed), test.ShouldBeTrue)

		cmd.OnStderr = StderrWarn
		v, err := cmd.Perform(context.Background(), lc)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldEqual, "out")

		cmd.OnStderr = StderrIgnore
		v, err = cmd.Perform(context.Background(), lc)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldEqual, "out")

		cmd.OnStderr = StderrCapture
		v, err = cmd.Perform(context.Background(), lc)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldEqual, "outwarning: deprecated")
	})
}

func TestCoerceScalar(t *testing.T) {
	test.That(t, coerceScalar("true"), test.ShouldEqual, true)
	test.That(t, coerceScalar("3"), test.ShouldEqual, 3)
	test.That(t, coerceScalar("1.5"), test.ShouldEqual, 1.5)
	test.That(t, coerceScalar("hello"), test.ShouldEqual, "hello")
	test.That(t, coerceScalar(""), test.ShouldEqual, "")
	test.That(t, coerceScalar("a: 1"), test.ShouldEqual, "a: 1")
	test.That(t, coerceScalar("[1, 2]"), test.ShouldEqual, "[1, 2]")
}
