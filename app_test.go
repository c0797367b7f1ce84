package morphcloud

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := NewApp()
	app.state = StateRunning

	app.changeState(StateExit)
	assert.Equal(t, StateExit, app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(StateExit)
	assert.Equal(t, StateExit, app.state)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	require.Panics(t, func() {
		app.addResources(MockResource1{name: "by value"})
	})
}

func TestResource(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewMockResource1("a"))

	r, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "a", r.name)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)

	assert.PanicsWithValue(t,
		"test requires resource *morphcloud.MockResource2; install its module first",
		func() { MustResource[MockResource2](app, "test") })
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewApp()
	var order []string
	for _, stage := range []Stage{Render, Prelude, PostUpdate, Update, PreUpdate, Finale} {
		name := stage.Name
		app.UseSystem(System(func() { order = append(order, name) }).InStage(stage))
	}

	require.True(t, app.Step())
	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "PostUpdate", "Render", "Finale"}, order)
}

func TestApp_UseStage(t *testing.T) {
	app := NewApp()
	late := Stage{Name: "Late"}
	app.UseStage(late, AfterStage(Render))

	var order []string
	app.UseSystem(System(func() { order = append(order, "late") }).InStage(late))
	app.UseSystem(System(func() { order = append(order, "render") }).InStage(Render))
	app.Step()

	assert.Equal(t, []string{"render", "late"}, order)
	assert.Panics(t, func() { app.UseStage(Stage{Name: "x"}, BeforeStage(Stage{Name: "missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "missing"})) })
}

func TestApp_InjectsResourcesAndCommands(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewMockResource1("one"), NewMockResource2("two"))

	var got []string
	app.UseSystem(System(func(r1 *MockResource1, cmd *Commands, r2 *MockResource2) {
		require.NotNil(t, cmd)
		got = append(got, r1.name, r2.name)
	}))
	app.Step()

	assert.Equal(t, []string{"one", "two"}, got)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(*MockResource2) {}))

	assert.Panics(t, func() { app.Step() })
}

func TestApp_ExitRunsExitSystems(t *testing.T) {
	app := NewApp()
	var frames, entered, exited int
	app.UseSystem(System(func() { entered++ }).InState(OnEnter(StateRunning)))
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}).InState(OnExecute(StateRunning)))
	app.UseSystem(System(func() { exited++ }).InStage(Finale).InState(OnExit(StateRunning)))

	app.Run()

	assert.Equal(t, 3, frames)
	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, exited)
	assert.Equal(t, StateExit, app.State())
	assert.False(t, app.Step())
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
	assert.NotNil(t, NewApp().Logger())

	app := NewApp().UseModules(LoggingModule{Prefix: "test", Debug: true})
	l := app.Logger()
	assert.True(t, l.DebugEnabled())
	l.SetDebug(false)
	assert.False(t, l.DebugEnabled())
}
