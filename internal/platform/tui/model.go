package tui

import (
	"fmt"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/evosim/internal/config"
	"github.com/vovakirdan/evosim/internal/core"
	"github.com/vovakirdan/evosim/internal/setups"
	"github.com/vovakirdan/evosim/internal/sim"
	"github.com/vovakirdan/evosim/internal/storage"
	"github.com/vovakirdan/evosim/internal/telemetry"
)

// Layout of the run view.
const (
	gridLeft   = 2
	gridTop    = 3
	hudWidth   = 30
	hudSpacing = 3
)

// RunOptions carries the collaborators of one animated run.
type RunOptions struct {
	Preset   string // history key; storage.CustomPreset for files and wizard setups
	Settings config.Settings
	Store    *storage.Store
	Recorder *telemetry.Recorder
	// QuitOnBack ends the program when the user leaves a finished run.
	// Embedded runs (menu, SSH) leave that decision to the parent model.
	QuitOnBack bool
}

// runEngine is the part of *sim.Engine a RunModel drives.
type runEngine interface {
	Step() (sim.CycleReport, error)
	Status() sim.Status
	CyclesRun() int
	Result() sim.RunResult
	Snapshot() sim.Snapshot
	Cell(sim.Coord) sim.CellKind
}

// RunModel is the Bubble Tea model that animates one simulation run.
type RunModel struct {
	setup      setups.Setup
	opts       RunOptions
	engine     runEngine
	seed       int64
	pacer      *config.Pacer
	screen     *core.Screen
	keyMapper  *KeyMapper
	inputFrame core.InputFrame

	paused     bool
	finalized  bool
	quitting   bool
	backToMenu bool

	result   sim.RunResult
	summary  telemetry.Summary
	savedID  int64
	saveErr  error
	traceErr error
	stepErr  error
}

// NewRunModel builds the engine for setup. The seed in cfg is resolved first, so the
// run can be reproduced with the reported seed.
func NewRunModel(setup setups.Setup, opts RunOptions, cfg core.RuntimeConfig) (RunModel, error) {
	seed := cfg.ResolveSeed()
	engine, err := sim.Start(setup.Config, rand.New(rand.NewSource(seed)))
	if err != nil {
		return RunModel{}, err
	}
	if opts.Preset == "" {
		opts.Preset = storage.CustomPreset
	}

	return RunModel{
		setup:      setup,
		opts:       opts,
		engine:     engine,
		seed:       seed,
		pacer:      config.NewPacer(opts.Settings.Pacing),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}, nil
}

// Init starts the tick loop.
func (m RunModel) Init() tea.Cmd {
	return tickCmd(m.pacer.Delay(0))
}

// Update handles messages and updates the model state.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Only one action is applied per key.
func (m RunModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.finalize()
		return m, tea.Quit
	}

	switch {
	case m.inputFrame.Has(core.ActionPause):
		m.paused = !m.paused
	case m.inputFrame.Has(core.ActionFaster):
		m.pacer.Faster()
	case m.inputFrame.Has(core.ActionSlower):
		m.pacer.Slower()
	case m.inputFrame.Has(core.ActionStep):
		if m.paused {
			m.advance()
		}
	case m.inputFrame.Has(core.ActionFinish):
		for m.advance() {
		}
	case m.inputFrame.Has(core.ActionBack), m.inputFrame.Has(core.ActionConfirm):
		if m.finalized {
			m.backToMenu = true
			m.inputFrame.Clear()
			if m.opts.QuitOnBack {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	m.inputFrame.Clear()

	return m, nil
}

// handleTick advances one cycle unless paused. Ticking stops once the run is finalized.
func (m RunModel) handleTick() (tea.Model, tea.Cmd) {
	if m.finalized {
		return m, nil
	}
	if !m.paused {
		m.advance()
	}
	if m.finalized || m.engine.Status() == sim.StatusTerminated {
		m.finalize()
		return m, nil
	}
	return m, tickCmd(m.pacer.Delay(m.engine.CyclesRun()))
}

// advance runs one cycle and records it. Returns false when no cycle ran.
func (m *RunModel) advance() bool {
	if m.engine.Status() != sim.StatusRunning {
		m.finalize()
		return false
	}
	rep, err := m.engine.Step()
	if err != nil {
		m.stepErr = err
		m.finalize()
		return false
	}
	if m.traceErr == nil {
		if err := m.opts.Recorder.Record(rep); err != nil {
			m.traceErr = err
		}
	}
	if rep.Status == sim.StatusTerminated {
		m.finalize()
	}
	return true
}

// finalize freezes the result, stores a terminated run in history and closes the
// trace. It runs once, also when the user quits mid-run.
func (m *RunModel) finalize() {
	if m.finalized {
		return
	}
	m.finalized = true
	m.result = m.engine.Result()

	if m.opts.Store != nil && !m.setup.IsTutorial() && m.result.Reason != sim.ReasonNone {
		rec := storage.NewRunRecord(m.opts.Preset, m.seed, m.setup.Config, m.result)
		m.savedID, m.saveErr = m.opts.Store.SaveRun(rec)
	}

	summary, err := m.opts.Recorder.Finish(m.opts.Preset, m.seed, m.result)
	m.summary = summary
	if err != nil && m.traceErr == nil {
		m.traceErr = err
	}
}

// View renders the current state to a string for display.
func (m RunModel) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// render draws the title, grid, HUD and help line into the screen buffer.
func (m RunModel) render() {
	s := m.screen
	s.Clear()

	snap := m.engine.Snapshot()
	title := fmt.Sprintf(" %s  (seed %d) ", m.setup.Title(), m.seed)
	s.DrawColorText(gridLeft, 1, title, core.ColorBrightCyan)

	gw, gh := gridSize(snap.Rows, snap.Cols)
	box := core.NewRect(gridLeft-2, gridTop-1, gw+4, gh+2)
	s.DrawBox(box, core.ColorGray)
	drawGrid(s, m.engine, snap.Rows, snap.Cols, gridLeft, gridTop, m.opts.Settings.Display)

	hx, hy := box.Right()+hudSpacing, gridTop
	if !s.Bounds().Contains(hx+hudWidth-1, hy) {
		hx, hy = gridLeft, box.Bottom()+1
	}
	y := m.drawHUD(hx, hy, snap)
	if m.opts.Settings.Display.Legend {
		y++
		y += drawLegend(s, hx, y, m.opts.Settings.Display)
	}

	if m.finalized {
		m.drawOutcome(hx, y+1)
	}

	help := "space: pause  n: step  +/-: speed  f: finish  q: quit"
	if m.finalized {
		help = "enter/b: back  q: quit"
	}
	s.DrawColorText(gridLeft, s.Height()-1, help, core.ColorGray)
}

// drawHUD writes the run counters and returns the next free row.
func (m RunModel) drawHUD(x, y int, snap sim.Snapshot) int {
	s := m.screen
	lines := []string{
		fmt.Sprintf("Cycle      %d / %d", snap.CyclesRun, snap.CyclesTotal),
		fmt.Sprintf("Mutations  %d", snap.MutationCount),
		fmt.Sprintf("Growth     %.3f / %.3f", snap.Growth, snap.InitialGrowth),
		fmt.Sprintf("Survival   %d", snap.SurvivalBudget),
		fmt.Sprintf("Entity     %d cells", snap.Occupied),
		fmt.Sprintf("Nutrients  %d left", snap.Nutrients),
		fmt.Sprintf("Delay      %s", m.pacer.Delay(snap.CyclesRun)),
	}
	for i, line := range lines {
		s.DrawText(x, y+i, line)
	}
	y += len(lines)

	if m.paused && !m.finalized {
		s.DrawColorText(x, y, "PAUSED", core.ColorYellow)
		y++
	}
	return y
}

// drawOutcome writes the termination reason and where the run was stored.
func (m RunModel) drawOutcome(x, y int) {
	s := m.screen
	color := core.ColorBrightGreen
	if m.result.Reason != sim.ReasonExhausted {
		color = core.ColorBrightRed
	}
	reason := m.result.Reason.Describe()
	switch {
	case m.stepErr != nil:
		reason = "Run failed: " + m.stepErr.Error()
	case m.result.Reason == sim.ReasonNone:
		reason = "Run stopped."
	}
	s.DrawColorText(x, y, reason, color)
	y++

	switch {
	case m.saveErr != nil:
		s.DrawColorText(x, y, "History not saved: "+m.saveErr.Error(), core.ColorRed)
	case m.savedID > 0:
		s.DrawText(x, y, fmt.Sprintf("Saved as run #%d", m.savedID))
	}
	if m.traceErr != nil {
		s.DrawColorText(x, y+1, "Trace failed: "+m.traceErr.Error(), core.ColorRed)
	}
}

// Result returns the frozen run result once the run is finalized.
func (m RunModel) Result() (sim.RunResult, bool) {
	return m.result, m.finalized
}

// Summary returns the trace summary; zero when tracing is disabled.
func (m RunModel) Summary() telemetry.Summary {
	return m.summary
}

// Seed returns the seed the run was started with.
func (m RunModel) Seed() int64 {
	return m.seed
}

// Errors returns the best-effort history and trace errors of the run.
func (m RunModel) Errors() (saveErr, traceErr error) {
	return m.saveErr, m.traceErr
}

// Err returns the engine error that ended the run, if any.
func (m RunModel) Err() error {
	return m.stepErr
}

// IsQuitting returns true if user requested to quit entirely.
func (m RunModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user left the finished run.
func (m RunModel) BackToMenu() bool {
	return m.backToMenu
}

// RunOutcome is what an animated run hands back to the command line.
type RunOutcome struct {
	Result   sim.RunResult
	Summary  telemetry.Summary
	Seed     int64
	SaveErr  error
	TraceErr error
	StepErr  error
}

// Run starts the Bubble Tea program for one setup and returns its outcome. An engine
// failure during the run is returned as the error, alongside the partial outcome.
func Run(setup setups.Setup, opts RunOptions, cfg core.RuntimeConfig) (RunOutcome, error) {
	opts.QuitOnBack = true
	model, err := NewRunModel(setup, opts, cfg)
	if err != nil {
		return RunOutcome{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunOutcome{Seed: model.Seed()}, err
	}

	m, ok := finalModel.(RunModel)
	if !ok {
		return RunOutcome{Seed: model.Seed()}, nil
	}
	res, _ := m.Result()
	saveErr, traceErr := m.Errors()
	outcome := RunOutcome{
		Result:   res,
		Summary:  m.Summary(),
		Seed:     m.Seed(),
		SaveErr:  saveErr,
		TraceErr: traceErr,
		StepErr:  m.Err(),
	}
	if outcome.StepErr != nil {
		return outcome, fmt.Errorf("run failed after %d cycles: %w", res.CyclesRun, outcome.StepErr)
	}
	return outcome, nil
}
