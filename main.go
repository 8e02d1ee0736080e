package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-pexeso/internal/board"
	"go-pexeso/internal/game"
	"go-pexeso/internal/scoring"
	"go-pexeso/internal/shuffle"
	"go-pexeso/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type LocalState struct {
	Session   *game.Session
	Scheduler *teaScheduler
	Cursor    int
	Columns   int
	Last      state.SelectOutcome
	Err       error

	keys keyMap
	help help.Model
}

// flipBackMsg is delivered by the tea runtime once a mismatch delay elapses.
type flipBackMsg struct {
	action state.DelayedAction
}

// teaScheduler turns delayed actions into tea.Tick commands. Update flushes
// them into its return value so they run on the program's event loop.
type teaScheduler struct {
	cmds []tea.Cmd
}

func (t *teaScheduler) Schedule(action state.DelayedAction) {
	t.cmds = append(t.cmds, tea.Tick(action.Delay, func(time.Time) tea.Msg {
		return flipBackMsg{action: action}
	}))
}

func (t *teaScheduler) Flush() tea.Cmd {
	cmds := t.cmds
	t.cmds = nil
	return tea.Batch(cmds...)
}

func initialModel(cfg config, log *zap.Logger) (*LocalState, error) {
	level, err := cfg.level()
	if err != nil {
		return nil, err
	}

	catalog := board.DefaultCatalog()
	if len(cfg.facePaths) > 0 {
		catalog, err = board.LoadCatalog(cfg.facePaths)
		if err != nil {
			return nil, err
		}
	}

	sh, err := shuffle.FromSource(cfg.seed.source())
	if err != nil {
		return nil, err
	}

	storage, err := scoring.NewJSONFileStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to create score storage: %w", err)
	}

	sched := &teaScheduler{}
	opts := state.GameOptions{
		FlipBackDelay: time.Duration(cfg.delay),
		FixedFaces:    cfg.fixedFaces,
		Logger:        log,
	}
	sess, err := game.NewSession(level, catalog, sh, opts, storage, sched)
	if err != nil {
		return nil, err
	}

	return &LocalState{
		Session:   sess,
		Scheduler: sched,
		Columns:   columnsFor(level.TotalCards),
		keys:      newKeyMap(),
		help:      help.New(),
	}, nil
}

func (s *LocalState) Init() tea.Cmd {
	return nil
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	g := s.Session.CurrentGame

	switch msg := msg.(type) {
	case flipBackMsg:
		s.Err = g.HandleTimeout(msg.action)
		return s, nil
	case tea.WindowSizeMsg:
		s.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.Left):
			s.moveCursor(-1)
		case key.Matches(msg, s.keys.Right):
			s.moveCursor(1)
		case key.Matches(msg, s.keys.Up):
			s.moveCursor(-s.Columns)
		case key.Matches(msg, s.keys.Down):
			s.moveCursor(s.Columns)
		case key.Matches(msg, s.keys.NewRound):
			s.Err = s.Session.NextRound()
			s.Last = state.SelectOutcome{}
		case key.Matches(msg, s.keys.Select):
			s.Last, s.Err = g.HandleSelect(s.Cursor)
			s.Session.Update()
			return s, s.Scheduler.Flush()
		}
	}

	return s, nil
}

func (s *LocalState) moveCursor(delta int) {
	next := s.Cursor + delta
	if next < 0 || next >= s.Session.CurrentGame.State.Len() {
		return
	}
	s.Cursor = next
}

// columnsFor picks the narrowest square-ish grid that fits n cards.
func columnsFor(n int) int {
	c := 1
	for c*c < n {
		c++
	}
	return c
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	NewRound key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "flip")),
		NewRound: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new board")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.NewRound, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// seedFlag holds -seed. Unset means fresh entropy.
type seedFlag struct {
	seed shuffle.Seed
	set  bool
}

func (f *seedFlag) String() string {
	if f == nil || !f.set {
		return "random"
	}
	return f.seed.String()
}

func (f *seedFlag) Set(s string) error {
	if s == "demo" {
		f.seed, f.set = shuffle.DemoSeed, true
		return nil
	}
	seed, err := shuffle.ParseSeed(s)
	if err != nil {
		return err
	}
	f.seed, f.set = seed, true
	return nil
}

func (f *seedFlag) source() shuffle.SeedSource {
	if f.set {
		return shuffle.Fixed(f.seed)
	}
	return shuffle.Entropy
}

// delayFlag accepts a Go duration or a bare number of milliseconds.
type delayFlag time.Duration

func (d *delayFlag) String() string {
	return time.Duration(*d).String()
}

func (d *delayFlag) Set(s string) error {
	if ms, err := strconv.Atoi(s); err == nil {
		*d = delayFlag(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid delay %q (use e.g. 800ms, 1s or 1000)", s)
	}
	*d = delayFlag(v)
	return nil
}

type pathsFlag []string

func (p *pathsFlag) String() string {
	return strings.Join(*p, ",")
}

func (p *pathsFlag) Set(s string) error {
	*p = append(*p, s)
	return nil
}

type config struct {
	preset     string
	groupSize  int
	totalCards int
	seed       seedFlag
	delay      delayFlag
	fixedFaces bool
	facePaths  pathsFlag
	logPath    string
}

// level resolves the preset, then applies any explicit overrides.
func (c config) level() (board.Level, error) {
	level, err := board.Preset(c.preset)
	if err != nil {
		return board.Level{}, err
	}
	if c.groupSize > 0 || c.totalCards > 0 {
		level.Name = "Custom"
	}
	if c.groupSize > 0 {
		level.GroupSize = c.groupSize
	}
	if c.totalCards > 0 {
		level.TotalCards = c.totalCards
	}
	return level, nil
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func main() {
	cfg := config{delay: delayFlag(state.DefaultFlipBackDelay)}

	flag.StringVar(&cfg.preset, "level", "1", "Preset level (1-4)")
	flag.StringVar(&cfg.preset, "l", "1", "Preset level (shorthand)")

	flag.IntVar(&cfg.groupSize, "group", 0, "Cards per matching group (overrides the preset)")
	flag.IntVar(&cfg.groupSize, "g", 0, "Cards per matching group (shorthand)")
	flag.IntVar(&cfg.totalCards, "cards", 0, "Total cards on the board (overrides the preset)")
	flag.IntVar(&cfg.totalCards, "c", 0, "Total cards on the board (shorthand)")

	flag.Var(&cfg.seed, "seed", "64 hex chars, or 'demo' for the fixed demo board")
	flag.Var(&cfg.seed, "s", "Board seed (shorthand)")

	flag.Var(&cfg.delay, "delay", "How long a mismatch stays visible (e.g. 800ms, 1s)")
	flag.Var(&cfg.delay, "d", "Mismatch delay (shorthand)")

	flag.BoolVar(&cfg.fixedFaces, "fixed-faces", false, "Use catalog faces in order instead of shuffling them")
	flag.BoolVar(&cfg.fixedFaces, "ff", false, "Use catalog faces in order (shorthand)")

	flag.Var(&cfg.facePaths, "faces", "Load faces from a file or directory (repeatable)")
	flag.Var(&cfg.facePaths, "f", "Load faces from a file or directory (shorthand)")

	flag.StringVar(&cfg.logPath, "log", "", "Write debug logs to this file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "   -l, --level=NAME        Preset level: %s (default 1)\n", strings.Join(board.PresetNames(), ", "))
		fmt.Fprintf(os.Stderr, "   -g, --group=N           Cards per matching group\n")
		fmt.Fprintf(os.Stderr, "   -c, --cards=N           Total cards on the board\n")
		fmt.Fprintf(os.Stderr, "   -s, --seed=HEX|demo     Board seed (default: random)\n")
		fmt.Fprintf(os.Stderr, "   -d, --delay=DURATION    Mismatch flip-back delay (default 800ms)\n")
		fmt.Fprintf(os.Stderr, "  -ff, --fixed-faces       Take faces in catalog order\n")
		fmt.Fprintf(os.Stderr, "   -f, --faces=PATH        Face catalog file or directory (repeatable)\n")
		fmt.Fprintf(os.Stderr, "       --log=PATH          Write debug logs to PATH\n")
		fmt.Fprintf(os.Stderr, "   -h, --help              Show this help message\n")
	}

	flag.Parse()

	log, err := newLogger(cfg.logPath)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	model, err := initialModel(cfg, log)
	if err != nil {
		fmt.Printf("Error starting game: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running the program: %v\n", err)
	}

	if model.Session.RoundsWon > 0 {
		fmt.Printf("Boards cleared: %d | Total score: %d\n", model.Session.RoundsWon, model.Session.TotalScore)
	}
}
