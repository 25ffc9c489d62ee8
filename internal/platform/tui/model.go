package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/arcadekit/engine/internal/config"
	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/fsm"
	"github.com/arcadekit/engine/internal/input"
	"github.com/arcadekit/engine/internal/loop"
	"github.com/arcadekit/engine/internal/registry"
	"github.com/arcadekit/engine/internal/replay"
	"github.com/arcadekit/engine/internal/storage"
)

// snapshotter is implemented by games that can serialize their full state.
type snapshotter interface {
	Snapshot() any
}

// host owns the engine assembly for one game session. The Bubble Tea model
// is a value type, so all mutable state lives behind this pointer and is
// shared with the loop callbacks.
type host struct {
	game     registry.Game
	session  *fsm.Machine
	gameLoop *loop.Loop
	sched    *loop.ManualScheduler
	screen   *core.Screen
	in       *input.Manager
	store    *storage.Store
	logger   *log.Logger

	cfg       core.RuntimeConfig
	engineCfg config.EngineConfig

	record   bool // Persist an input recording for this session
	replayer *replay.Replayer
	states   *replay.StateRecorder // Non-nil while recording, if the game snapshots

	status     core.GameStatus
	scoreSaved bool
	quitting   bool
}

// Model is the Bubble Tea model for running engine games.
type Model struct {
	h *host
}

// Options configures a game session model.
type Options struct {
	Game      registry.Game
	Store     *storage.Store
	Runtime   core.RuntimeConfig
	EngineCfg config.EngineConfig
	Logger    *log.Logger

	// Record persists the session's input recording on game over.
	Record bool

	// Replayer, when set, plays a recording back instead of live input.
	Replayer *replay.Replayer
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	manager := input.NewManager(input.ManagerOptions{
		Buffer: input.NewBuffer(input.BufferOptions{
			MaxBufferFrames: opts.EngineCfg.Input.MaxBufferFrames,
			FrameWindow:     opts.EngineCfg.Input.FrameWindow,
			MaxRecordFrames: opts.EngineCfg.Replay.MaxRecordFrames,
			Logger:          logger,
		}),
		Logger: logger,
	})

	session, err := fsm.NewGameSession(nil, logger)
	if err != nil {
		// The standard session table is statically valid.
		panic(err)
	}

	h := &host{
		game:      opts.Game,
		session:   session,
		sched:     loop.NewManualScheduler(),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		in:        manager,
		store:     opts.Store,
		logger:    logger,
		cfg:       cfg,
		engineCfg: opts.EngineCfg,
		record:    opts.Record,
		replayer:  opts.Replayer,
	}

	// Recorded sessions also keep a rolling game-state history when the
	// game can snapshot itself.
	if opts.Record {
		if _, ok := opts.Game.(snapshotter); ok {
			h.states = replay.NewStateRecorder(replay.StateRecorderOptions{
				MaxSnapshots: opts.EngineCfg.Replay.MaxSnapshots,
				Buffer:       manager.Buffer(),
			})
		}
	}

	h.gameLoop = loop.New(loop.Options{
		TargetFPS:         cfg.TickRate,
		UseFixedTimestep:  opts.EngineCfg.Loop.UseFixedTimestep,
		FixedTimestep:     opts.EngineCfg.Loop.FixedTimestepMS,
		MaxDeltaTime:      opts.EngineCfg.Loop.MaxDeltaMS,
		AutoPauseOnHidden: opts.EngineCfg.Loop.AutoPauseOnHidden,
		FPSWindow:         opts.EngineCfg.Loop.FPSWindow,
		Scheduler:         h.sched,
		Clock:             loop.NewSystemClock(),
		Logger:            logger,
	})

	h.gameLoop.OnFixedUpdate(h.fixedUpdate)
	h.gameLoop.OnUpdate(h.update)
	h.gameLoop.OnRender(h.render)

	return Model{h: h}
}

func (h *host) fixedUpdate(dtMS float64) {
	if h.session.Current() == fsm.StatePlaying {
		h.game.FixedUpdate(dtMS)
	}
}

func (h *host) update(info core.FrameInfo) {
	in := h.in.Current()
	if h.replayer != nil {
		if bi, ok := h.replayer.Next(); ok {
			in = bi.Input
		} else if h.session.Current() == fsm.StatePlaying {
			// Recording exhausted; freeze the session.
			h.session.TransitionTo(fsm.StateGameOver)
		}
	}

	if h.session.Current() == fsm.StatePlaying {
		h.game.Update(info, in)
	}

	h.in.CaptureFrame(info.FrameNumber)

	if h.states != nil && h.session.Current() == fsm.StatePlaying {
		if s, ok := h.game.(snapshotter); ok {
			if err := h.states.Capture(info.FrameNumber, s.Snapshot()); err != nil {
				h.logger.Warn("failed to capture game state", "error", err)
			}
		}
	}

	h.status = h.game.Status()
	if h.session.Current() == fsm.StatePlaying {
		if h.status.Victory {
			h.session.TransitionTo(fsm.StateVictory)
			h.finishSession()
		} else if h.status.Over {
			h.session.TransitionTo(fsm.StateGameOver)
			h.finishSession()
		}
	} else if h.sessionEnded() {
		// The primary action restarts, forgiving presses a few frames off.
		if h.in.Buffer().WasActionPressedInWindow(core.ActionPrimary, info.FrameNumber) {
			h.restart()
		}
	}
}

func (h *host) render(core.FrameInfo) {
	h.game.Render(h.screen)
}

func (h *host) sessionEnded() bool {
	s := h.session.Current()
	return s == fsm.StateGameOver || s == fsm.StateVictory
}

// finishSession saves the score and persists the input recording, once.
func (h *host) finishSession() {
	if !h.scoreSaved && h.status.Score > 0 && h.store != nil {
		if _, err := h.store.SaveScore(h.game.ID(), h.status.Score); err != nil {
			h.logger.Warn("failed to save score", "game", h.game.ID(), "error", err)
		}
	}
	h.scoreSaved = true

	rec := h.in.Buffer().StopRecording()
	if rec == nil || h.store == nil {
		return
	}
	data, err := replay.SerializeRecording(rec)
	if err != nil {
		h.logger.Warn("failed to serialize recording", "error", err)
		return
	}
	if _, err := h.store.SaveRecording(
		h.game.ID(), rec.Metadata.Duration, rec.TotalFrames, rec.Metadata.TargetFPS, data,
	); err != nil {
		h.logger.Warn("failed to save recording", "error", err)
	}
}

// restart begins a fresh session with a new seed.
func (h *host) restart() {
	h.cfg.Seed = time.Now().UnixNano()
	h.game.Reset(h.cfg)
	h.in.Reset()
	h.scoreSaved = false
	h.status = core.GameStatus{}

	h.session.Reset()
	h.session.TransitionTo(fsm.StateReady)
	h.session.TransitionTo(fsm.StatePlaying)

	if h.record && h.replayer == nil {
		h.in.Buffer().StartRecording(h.game.ID(), h.cfg.TickRate)
	}
	if h.states != nil {
		h.states.Reset()
	}
	if h.replayer != nil {
		h.replayer.Reset()
	}
}

// Init initializes the model and starts the session.
func (m Model) Init() tea.Cmd {
	h := m.h
	h.game.Reset(h.cfg)
	h.session.TransitionTo(fsm.StateReady)
	h.session.TransitionTo(fsm.StatePlaying)

	if h.record && h.replayer == nil {
		h.in.Buffer().StartRecording(h.game.ID(), h.cfg.TickRate)
	}

	h.gameLoop.Start()
	return tickCmd(h.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.FocusMsg:
		m.h.gameLoop.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.h.gameLoop.SetVisible(false)
		m.h.in.Blur()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.h

	switch msg.String() {
	case "ctrl+c", "q":
		h.quitting = true
		h.gameLoop.Destroy()
		return m, tea.Quit
	case "ctrl+s":
		h.saveScreenshot()
		return m, nil
	case "p", "esc":
		h.togglePause()
		return m, nil
	case "r":
		if h.sessionEnded() {
			h.restart()
		}
		return m, nil
	}

	// Terminals deliver discrete keypresses with no key-up, so every
	// press is a one-frame tap.
	switch msg.String() {
	case "up", "w", "k":
		h.in.Swipe(core.DirUp)
	case "down", "s", "j":
		h.in.Swipe(core.DirDown)
	case "left", "a", "h":
		h.in.Swipe(core.DirLeft)
	case "right", "d", "l":
		h.in.Swipe(core.DirRight)
	case " ":
		h.in.Tap(" ")
	case "x":
		h.in.Tap("x")
	}

	return m, nil
}

// handleMouse forwards pointer events to the input manager.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	h := m.h
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		h.in.PointerDown(x, y)
	case tea.MouseActionRelease:
		h.in.PointerUp()
	case tea.MouseActionMotion:
		h.in.PointerMove(x, y)
	}

	return m, nil
}

func (h *host) togglePause() {
	switch h.session.Current() {
	case fsm.StatePlaying:
		if h.session.TransitionTo(fsm.StatePaused) {
			h.gameLoop.Pause()
		}
	case fsm.StatePaused:
		if h.session.TransitionTo(fsm.StatePlaying) {
			h.gameLoop.Resume()
		}
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h := m.h
	h.cfg.ScreenW = msg.Width
	h.cfg.ScreenH = msg.Height
	h.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if still in play.
	if !h.sessionEnded() {
		h.game.Reset(h.cfg)
	}

	return m, nil
}

// handleTick pumps one scheduled loop frame. The loop reschedules itself
// before doing frame work, so exactly one frame runs per tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.h.sched.RunNext()
	return m, tickCmd(m.h.cfg.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (h *host) saveScreenshot() {
	h.game.Render(h.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcadekit", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", h.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(h.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	h := m.h
	if h.quitting {
		return ""
	}

	out := RenderScreen(h.screen)

	status := fmt.Sprintf(" %s | fps %d | %s ",
		h.game.Title(), h.gameLoop.FPS(), h.session.Current())
	if h.in.Buffer().IsRecording() {
		status += "| REC "
	}
	return out + "\n" + statusStyle.Render(status)
}

// Run starts the Bubble Tea program for a live game session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer input
		tea.WithReportFocus(),     // Focus/blur drives auto-pause
	)

	_, err := p.Run()
	return err
}
