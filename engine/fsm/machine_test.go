package fsm

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/event"
)

type testCtx struct {
	log     []string
	ready   bool
	emitted []*EmitEventArgs
}

const testGraph = `
initial: Idle
states:
  Idle:
    on_enter: [{action: Log, args: {msg: enter-idle}}]
    on_exit: [{action: Log, args: {msg: exit-idle}}]
    transitions:
      - {trigger: Tick, target: Busy, guard: Ready}
  Active:
    on_enter: [{action: Log, args: {msg: enter-active}}]
    on_exit: [{action: Log, args: {msg: exit-active}}]
    transitions:
      - {trigger: UnitDied, target: Done}
  Busy:
    parent: Active
    on_enter: [{action: Log, args: {msg: enter-busy}}]
    on_exit: [{action: Log, args: {msg: exit-busy}}]
    transitions:
      - {trigger: Tick, target: Rest, guard: StateTimeExceeds, guard_args: {frames: 3}}
  Rest:
    parent: Active
    on_enter: [{action: Log, args: {msg: enter-rest}}]
  Done:
    on_enter:
      - {action: EmitEvent, event: BossDefeated, payload: {phase: DEAD, ability: none}}
`

func newTestMachine(t *testing.T, graph string) *Machine[*testCtx] {
	t.Helper()
	m := NewMachine[*testCtx]()
	m.RegisterGuard("Ready", func(ctx *testCtx, _ *Machine[*testCtx]) bool { return ctx.ready })
	m.RegisterAction("Log", func(ctx *testCtx, args any) {
		ctx.log = append(ctx.log, args.(string))
	})
	m.RegisterActionArgs("Log", func(args map[string]any) (any, error) {
		msg, ok := args["msg"].(string)
		if !ok {
			return nil, fmt.Errorf("missing msg")
		}
		return msg, nil
	})
	m.RegisterAction("EmitEvent", func(ctx *testCtx, args any) {
		ctx.emitted = append(ctx.emitted, args.(*EmitEventArgs))
	})
	require.NoError(t, m.LoadConfig([]byte(graph)))
	return m
}

func TestMachine_InitEntersInitialChain(t *testing.T) {
	m := newTestMachine(t, testGraph)
	ctx := &testCtx{}

	require.NoError(t, m.Init(ctx))
	assert.Equal(t, "Idle", m.Current())
	assert.Equal(t, []string{"enter-idle"}, ctx.log)
	assert.Equal(t, 0, m.FramesInState())
}

func TestMachine_TickTransitionHonorsGuard(t *testing.T) {
	m := newTestMachine(t, testGraph)
	ctx := &testCtx{}
	require.NoError(t, m.Init(ctx))

	require.NoError(t, m.Update(ctx))
	assert.Equal(t, "Idle", m.Current(), "guard false keeps state")

	ctx.ready = true
	require.NoError(t, m.Update(ctx))
	assert.Equal(t, "Busy", m.Current())
	assert.True(t, m.IsIn("Active"))
	assert.Equal(t, []string{"enter-idle", "exit-idle", "enter-active", "enter-busy"}, ctx.log)
}

func TestMachine_StateTimeExceedsCountsFrames(t *testing.T) {
	m := newTestMachine(t, testGraph)
	ctx := &testCtx{ready: true}
	require.NoError(t, m.Init(ctx))
	require.NoError(t, m.Update(ctx))
	require.Equal(t, "Busy", m.Current())

	require.NoError(t, m.Update(ctx))
	require.NoError(t, m.Update(ctx))
	assert.Equal(t, "Busy", m.Current())
	assert.Equal(t, 2, m.FramesInState())

	require.NoError(t, m.Update(ctx))
	assert.Equal(t, "Rest", m.Current())
	assert.Equal(t, 0, m.FramesInState())
}

func TestMachine_SiblingTransitionKeepsParent(t *testing.T) {
	m := newTestMachine(t, testGraph)
	ctx := &testCtx{ready: true}
	require.NoError(t, m.Init(ctx))
	for i := 0; i < 4; i++ {
		require.NoError(t, m.Update(ctx))
	}
	require.Equal(t, "Rest", m.Current())
	assert.NotContains(t, ctx.log, "exit-active")
	assert.Equal(t, "enter-rest", ctx.log[len(ctx.log)-1])
	assert.Equal(t, "exit-busy", ctx.log[len(ctx.log)-2])
}

func TestMachine_EventBubblesToParent(t *testing.T) {
	m := newTestMachine(t, testGraph)
	ctx := &testCtx{ready: true}
	require.NoError(t, m.Init(ctx))
	require.NoError(t, m.Update(ctx))

	assert.False(t, m.HandleEvent(ctx, event.EventExplosion), "no transition for unrelated event")
	assert.True(t, m.HandleEvent(ctx, event.EventUnitDied))
	assert.Equal(t, "Done", m.Current())
	assert.False(t, m.IsIn("Active"))

	require.Len(t, ctx.emitted, 1)
	assert.Equal(t, event.EventBossDefeated, ctx.emitted[0].Type)
	payload, ok := ctx.emitted[0].Payload.(*event.BossPhasePayload)
	require.True(t, ok)
	assert.Equal(t, "DEAD", payload.Phase)
	assert.Equal(t, "none", payload.Ability)
}

func TestMachine_OnTransitionHook(t *testing.T) {
	m := newTestMachine(t, testGraph)
	var seen []string
	m.OnTransition(func(_ *testCtx, from, to string) {
		seen = append(seen, from+">"+to)
	})
	ctx := &testCtx{ready: true}
	require.NoError(t, m.Init(ctx))
	require.NoError(t, m.Update(ctx))

	assert.Equal(t, []string{">Idle", "Idle>Busy"}, seen)
}

func TestMachine_ResetReturnsToInitial(t *testing.T) {
	m := newTestMachine(t, testGraph)
	ctx := &testCtx{ready: true}
	require.NoError(t, m.Init(ctx))
	require.NoError(t, m.Update(ctx))

	ctx.log = nil
	require.NoError(t, m.Reset(ctx))
	assert.Equal(t, "Idle", m.Current())
	assert.Equal(t, []string{"exit-busy", "exit-active", "enter-idle"}, ctx.log)
}

func TestMachine_UpdateBeforeInit(t *testing.T) {
	m := newTestMachine(t, testGraph)
	err := m.Update(&testCtx{})
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestLoad_RejectsBadReferences(t *testing.T) {
	cases := map[string]string{
		"unknown target": `
initial: A
states:
  A:
    transitions: [{trigger: Tick, target: Missing}]`,
		"unknown parent": `
initial: A
states:
  A: {parent: Nowhere}`,
		"unknown guard": `
initial: A
states:
  A:
    transitions: [{trigger: Tick, target: A, guard: Nope}]`,
		"unknown action": `
initial: A
states:
  A:
    on_enter: [{action: Nope}]`,
		"unknown event": `
initial: A
states:
  A:
    transitions: [{trigger: NotAnEvent, target: A}]`,
		"unknown initial": `
initial: Z
states:
  A: {}`,
		"bad guard args": `
initial: A
states:
  A:
    transitions: [{trigger: Tick, target: A, guard: StateTimeExceeds}]`,
	}

	for name, graph := range cases {
		t.Run(name, func(t *testing.T) {
			m := NewMachine[*testCtx]()
			assert.Error(t, m.LoadConfig([]byte(graph)))
		})
	}
}

func TestParseConfigFS_MergesIncludes(t *testing.T) {
	fsys := fstest.MapFS{
		"graphs/common.yaml": {Data: []byte(`
states:
  Dead: {}
  Idle:
    transitions: [{trigger: UnitDied, target: Dead}]
`)},
		"graphs/boss.yaml": {Data: []byte(`
include: [common.yaml]
initial: Idle
states:
  Idle:
    transitions: [{trigger: Tick, target: Dead}]
`)},
	}

	cfg, err := ParseConfigFS(fsys, "graphs/boss.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Idle", cfg.InitialState)
	require.Contains(t, cfg.States, "Dead")
	require.Contains(t, cfg.States, "Idle")
	assert.Equal(t, "Tick", cfg.States["Idle"].Transitions[0].Trigger, "including file overrides")

	m := NewMachine[*testCtx]()
	require.NoError(t, m.Load(cfg))
	ctx := &testCtx{}
	require.NoError(t, m.Init(ctx))
	require.NoError(t, m.Update(ctx))
	assert.Equal(t, "Dead", m.Current())
}

func TestParseConfigFS_CircularInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("include: [b.yaml]\ninitial: X\nstates: {X: {}}\n")},
		"b.yaml": {Data: []byte("include: [a.yaml]\nstates: {}\n")},
	}
	_, err := ParseConfigFS(fsys, "a.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular include")
}

func TestParseConfigAuto_PrefersCustomPath(t *testing.T) {
	dir := t.TempDir()
	custom := dir + "/custom.yaml"
	require.NoError(t, writeFile(custom, "initial: Custom\nstates: {Custom: {}}\n"))

	fallback := fstest.MapFS{"default.yaml": {Data: []byte("initial: Default\nstates: {Default: {}}\n")}}

	cfg, err := ParseConfigAuto(custom, fallback, "default.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Custom", cfg.InitialState)

	cfg, err = ParseConfigAuto("", fallback, "default.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Default", cfg.InitialState)

	_, err = ParseConfigAuto(dir+"/missing.yaml", fallback, "default.yaml")
	assert.Error(t, err)
}

func writeFile(name, content string) error {
	return os.WriteFile(name, []byte(content), 0o644)
}
