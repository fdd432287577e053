package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// SessionState is the controller state
type SessionState int

const (
	StateReady SessionState = iota
	StateExecuting
	StateSuspended
)

func (s SessionState) String() string {
	switch s {
	case StateExecuting:
		return "executing"
	case StateSuspended:
		return "suspended"
	default:
		return "ready"
	}
}

// SessionConfig wires a session to its collaborators
type SessionConfig struct {
	FileSystem   *FileSystem
	Registry     *Registry
	Settings     *SettingsStore
	Store        StateStore
	Content      ContentSource
	DownloadDir  string
	HistoryLimit int
	StartDir     string
}

// Session owns one interactive shell: the current directory, the history,
// the completer and the conversation log. Lines are executed one at a time.
type Session struct {
	mu        sync.Mutex
	state     SessionState
	cwd       string
	prompt    string
	run       *invocation
	closed    bool
	redraw    func()
	fsys      *FileSystem
	reg       *Registry
	settings  *SettingsStore
	store     StateStore
	files     *FileService
	history   *History
	completer *Completer
	log       *ConversationLog
	download  string
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// invocation is one running handler. The handler signals suspension or
// completion on signals; suspended handlers receive lines on lines.
type invocation struct {
	convID  string
	lines   chan string
	signals chan runSignal
}

type runSignal struct {
	suspended bool
	prompt    string
	err       error
}

// NewSession creates a session. History is loaded from the store; a load
// failure is logged and the session starts with an empty history.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.FileSystem == nil || cfg.Registry == nil || cfg.Settings == nil || cfg.Store == nil {
		return nil, fmt.Errorf("session: filesystem, registry, settings and store are required")
	}
	content := cfg.Content
	if content == nil {
		content = NewFSContent(DefaultContent())
	}
	cwd := "/"
	if cfg.StartDir != "" {
		if !cfg.FileSystem.IsDir(cfg.StartDir) {
			return nil, &NotFoundError{What: "Directory", Name: cfg.StartDir}
		}
		cwd = cfg.StartDir
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cwd:       cwd,
		fsys:      cfg.FileSystem,
		reg:       cfg.Registry,
		settings:  cfg.Settings,
		store:     cfg.Store,
		files:     NewFileService(cfg.FileSystem, cfg.Settings, cfg.Store, content),
		history:   NewHistory(cfg.Store, cfg.HistoryLimit),
		completer: NewCompleter(cfg.Registry, cfg.FileSystem, cfg.Settings),
		log:       NewConversationLog(),
		download:  cfg.DownloadDir,
		ctx:       ctx,
		cancel:    cancel,
	}
	if err := s.history.Load(); err != nil {
		LogWarn("Failed to load history: %v", err)
	}
	return s, nil
}

// Submit handles an Enter press. In the ready state the line is recorded
// and dispatched; when suspended it is handed to the waiting handler. It
// returns once the handler finishes or suspends. While a handler is
// running the line is dropped and ErrBusy returned.
func (s *Session) Submit(line string) (SessionState, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.state, ErrSessionClosed
	}

	switch s.state {
	case StateExecuting:
		s.mu.Unlock()
		return StateExecuting, ErrBusy

	case StateSuspended:
		run := s.run
		s.log.Append(run.convID, OutputEvent{Kind: OutputText, Text: line})
		s.state = StateExecuting
		s.prompt = ""
		s.mu.Unlock()
		select {
		case run.lines <- line:
		case <-s.ctx.Done():
			return s.State(), ErrSessionClosed
		}
		return s.await(run)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		s.mu.Unlock()
		return StateReady, nil
	}

	if err := s.history.Append(line); err != nil {
		LogWarn("Failed to persist history: %v", err)
	}
	s.history.Reset()
	s.completer.Reset()

	convID := s.log.Start(line, s.cwd)
	fields := strings.Fields(line)
	cmd, ok := s.reg.Resolve(fields[0])
	if !ok {
		s.log.Append(convID, OutputEvent{Kind: OutputError, Text: "Command not found: " + fields[0]})
		s.mu.Unlock()
		return StateReady, nil
	}

	run := &invocation{
		convID:  convID,
		lines:   make(chan string),
		signals: make(chan runSignal, 1),
	}
	ectx := &ExecContext{s: s, run: run, name: cmd.Name, args: fields[1:], ctx: s.ctx}
	s.run = run
	s.state = StateExecuting
	s.wg.Add(1)
	s.mu.Unlock()

	go s.execute(cmd, ectx, run)
	return s.await(run)
}

func (s *Session) execute(cmd Command, ectx *ExecContext, run *invocation) {
	defer s.wg.Done()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				LogError("Command %s panicked: %v", cmd.Name, r)
				err = &HandlerFault{Command: cmd.Name, Value: r}
			}
		}()
		err = cmd.Handler.Execute(ectx, ectx.args)
	}()

	select {
	case run.signals <- runSignal{err: err}:
	case <-s.ctx.Done():
	}
}

func (s *Session) await(run *invocation) (SessionState, error) {
	var sig runSignal
	select {
	case sig = <-run.signals:
	case <-s.ctx.Done():
		return s.State(), ErrSessionClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sig.suspended {
		s.state = StateSuspended
		s.prompt = sig.prompt
		return StateSuspended, nil
	}

	s.run = nil
	s.state = StateReady
	s.prompt = ""
	if sig.err != nil {
		s.log.Append(run.convID, errorEvent(sig.err))
	}
	return StateReady, nil
}

func errorEvent(err error) OutputEvent {
	var fault *HandlerFault
	if errors.As(err, &fault) {
		return OutputEvent{Kind: OutputError, Text: "Error: " + err.Error()}
	}
	return OutputEvent{Kind: OutputError, Text: err.Error()}
}

// Complete handles a Tab press. Completion is only offered while ready.
func (s *Session) Complete(line string) (string, bool) {
	if s.State() != StateReady {
		return line, false
	}
	return s.completer.Complete(line, s.Cwd())
}

// NavigateUp handles the Up key: previous completion candidate while
// cycling, otherwise an older history entry
func (s *Session) NavigateUp(line string) (string, bool) {
	return s.navigate(Older, line)
}

// NavigateDown handles the Down key: next completion candidate while
// cycling, otherwise a newer history entry
func (s *Session) NavigateDown(line string) (string, bool) {
	return s.navigate(Newer, line)
}

func (s *Session) navigate(dir Direction, line string) (string, bool) {
	if s.State() != StateReady {
		return line, false
	}
	if next, ok := s.completer.Navigate(dir); ok {
		return next, true
	}
	next, ok := s.history.Navigate(dir, line)
	if ok {
		s.completer.Observe(next)
	}
	return next, ok
}

// SetInput must be called with the input line after every edit so the
// completer can drop a stale session
func (s *Session) SetInput(line string) {
	s.completer.Observe(line)
}

// State returns the controller state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Prompt returns the prompt a suspended handler asked for
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// Cwd returns the current directory
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

func (s *Session) setCwd(p string) {
	s.mu.Lock()
	s.cwd = p
	s.mu.Unlock()
}

// OnRedraw registers a hook run when a handler asks for a redraw
func (s *Session) OnRedraw(fn func()) {
	s.mu.Lock()
	s.redraw = fn
	s.mu.Unlock()
}

func (s *Session) requestRedraw() {
	s.mu.Lock()
	fn := s.redraw
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Log returns the conversation log
func (s *Session) Log() *ConversationLog { return s.log }

// History returns the history log
func (s *Session) History() *History { return s.history }

// Settings returns the settings store
func (s *Session) Settings() *SettingsStore { return s.settings }

// FileSystem returns the document tree
func (s *Session) FileSystem() *FileSystem { return s.fsys }

// Registry returns the command registry
func (s *Session) Registry() *Registry { return s.reg }

// Completer returns the completer
func (s *Session) Completer() *Completer { return s.completer }

// Close cancels the session context and waits for a running or suspended
// handler to return
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return nil
}
