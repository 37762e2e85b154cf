// Package session holds the state behind one beautifier window: the raw
// input, the decode mode, the parsed document and everything derived from it.
// Every mutation reprocesses synchronously and re-renders before returning,
// so callers can read View and Search straight after.
package session

import (
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/mcncl/jsonbeautifier/internal/errors"
	"github.com/mcncl/jsonbeautifier/internal/formatter"
	"github.com/mcncl/jsonbeautifier/internal/jwt"
	"github.com/mcncl/jsonbeautifier/internal/logging"
	"github.com/mcncl/jsonbeautifier/internal/models"
	"github.com/mcncl/jsonbeautifier/internal/parser"
	"github.com/mcncl/jsonbeautifier/internal/render"
	"github.com/mcncl/jsonbeautifier/internal/search"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Options configures a Session.
type Options struct {
	Mode Mode
	// Indent used by Formatted; empty means two spaces.
	Indent string
	// CollapseDepth collapses nodes at this depth and below whenever a new
	// document appears. Zero keeps everything expanded.
	CollapseDepth int
	Clipboard     Clipboard
	Scroller      search.Scroller
	Logger        *log.Logger
}

// Session is the controller for one input/output pair.
type Session struct {
	input string
	mode  Mode
	query string

	root      *models.Value
	formatted string
	err       error
	// fresh is set until a document has been shown since the last reset, so
	// the initial collapse depth is applied once per new document.
	fresh bool

	formatter     *formatter.Formatter
	collapse      *render.CollapseState
	collapseDepth int
	registry      *render.Registry
	renderer      *render.Renderer
	search        *search.Coordinator
	view          *render.View

	clipboard Clipboard
	logger    *log.Logger
}

// New returns an empty session showing the placeholder.
func New(opts Options) *Session {
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	f := formatter.NewFormatter()
	if opts.Indent != "" {
		f = formatter.NewFormatterWithIndent(opts.Indent)
	}
	collapse := render.NewCollapseState()
	s := &Session{
		mode:          opts.Mode,
		fresh:         true,
		formatter:     f,
		collapse:      collapse,
		collapseDepth: opts.CollapseDepth,
		registry:      render.NewRegistry(),
		renderer:      render.NewRenderer(collapse),
		search:        search.NewCoordinator(opts.Scroller),
		clipboard:     opts.Clipboard,
		logger:        opts.Logger,
	}
	s.render()
	return s
}

// SetScroller sets where scroll requests for the active match go.
func (s *Session) SetScroller(sc search.Scroller) {
	s.search.SetScroller(sc)
}

// SetInput replaces the raw input and reprocesses it.
func (s *Session) SetInput(text string) {
	s.input = text
	s.process()
}

// Input returns the raw input.
func (s *Session) Input() string {
	return s.input
}

// SetMode switches between JSON and JWT decoding and reprocesses.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.process()
}

// ToggleMode flips the decode mode and returns the new one.
func (s *Session) ToggleMode() Mode {
	s.SetMode(s.mode.Toggle())
	return s.mode
}

// Mode returns the decode mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetQuery narrows the document to the value at a gjson path before it is
// rendered. An empty query shows the whole document.
func (s *Session) SetQuery(query string) {
	query = strings.TrimSpace(query)
	if query == s.query {
		return
	}
	s.query = query
	s.process()
}

// Query returns the gjson path in effect.
func (s *Session) Query() string {
	return s.query
}

// process runs the input through decode, parse and query, then renders.
func (s *Session) process() {
	if strings.TrimSpace(s.input) == "" {
		s.reset()
		s.render()
		return
	}

	root, err := s.decode()
	if err != nil {
		s.logger.Debug("input rejected", logging.FieldMode, s.mode, logging.FieldError, err)
		s.root = nil
		s.formatted = ""
		s.err = err
		s.fresh = true
		s.collapse.ExpandAll()
		s.render()
		return
	}

	s.err = nil
	s.root = root
	rewound := s.search.ResetActive()
	s.formatted = s.formatter.Format(root)
	if s.fresh {
		s.collapse.ExpandAll()
		s.collapse.CollapseFrom(root, s.collapseDepth)
		s.fresh = false
	} else {
		s.collapse.Prune(root)
	}
	if s.redraw() || rewound {
		s.search.ScrollToActive(s.registry)
	}
	s.logger.Debug("input processed",
		logging.FieldMode, s.mode,
		logging.FieldBytes, len(s.input),
		logging.FieldMatches, s.search.Total())
}

func (s *Session) decode() (*models.Value, error) {
	var (
		root *models.Value
		err  error
	)
	switch s.mode {
	case ModeJWT:
		var doc []byte
		doc, err = jwt.Decode(strings.TrimSpace(s.input))
		if err != nil {
			return nil, err
		}
		root, err = parser.ParseBytes(doc)
	default:
		root, err = parser.ParseString(s.input)
	}
	if err != nil {
		return nil, err
	}
	if s.query == "" {
		return root, nil
	}
	return s.applyQuery(root)
}

func (s *Session) applyQuery(root *models.Value) (*models.Value, error) {
	result := gjson.Get(s.formatter.Compact(root), s.query)
	if !result.Exists() {
		return nil, errors.NewInputError("query '"+s.query+"' matched nothing", errors.ErrQueryNotFound)
	}
	return parser.ParseString(result.Raw)
}

// reset drops everything derived from the input, including the search term.
func (s *Session) reset() {
	s.root = nil
	s.formatted = ""
	s.err = nil
	s.fresh = true
	s.collapse.ExpandAll()
	s.search.Reset()
}

// render redraws and scrolls to the active match if it moved.
func (s *Session) render() {
	if s.redraw() {
		s.search.ScrollToActive(s.registry)
	}
}

// redraw runs one pass. If the pass changed the match total the active
// match is reset and the pass is repeated so the highlighting agrees with it.
// It reports whether any match was drawn somewhere else or the active index
// changed.
func (s *Session) redraw() bool {
	anchors, active := s.registry.Anchors(), s.search.Active()
	s.view = s.renderPass()
	if s.search.Sync(s.registry) {
		s.view = s.renderPass()
	}
	return active != s.search.Active() || !slices.Equal(anchors, s.registry.Anchors())
}

func (s *Session) renderPass() *render.View {
	return s.renderer.Render(s.root, render.Options{
		Term:   s.search.Term(),
		Active: s.search.Active(),
	}, s.registry)
}

// Toggle flips the collapse state of the node at p. It reports whether p
// named a node that could be toggled.
func (s *Session) Toggle(p render.Path) bool {
	if s.root == nil {
		return false
	}
	if _, ok := s.view.LineOf(p); !ok {
		return false
	}
	s.collapse.Toggle(p)
	s.render()
	return true
}

// ToggleLine toggles the node whose control is on view line i.
func (s *Session) ToggleLine(i int) bool {
	p, ok := s.view.ToggleAt(i)
	if !ok {
		return false
	}
	return s.Toggle(p)
}

// ExpandAll expands every node.
func (s *Session) ExpandAll() {
	s.collapse.ExpandAll()
	s.render()
}

// CollapseAll collapses every node below the root.
func (s *Session) CollapseAll() {
	if s.root == nil {
		return
	}
	s.collapse.CollapseAll(s.root)
	s.render()
}

// SetSearchTerm changes the term and re-renders with the first match active.
func (s *Session) SetSearchTerm(term string) {
	if !s.search.SetTerm(term) {
		return
	}
	s.render()
	s.logger.Debug("search", logging.FieldTerm, term, logging.FieldMatches, s.search.Total())
}

// NextMatch activates the following match, wrapping around, and scrolls to
// it even when it is the only one.
func (s *Session) NextMatch() {
	if s.search.Next() {
		s.redraw()
		s.search.ScrollToActive(s.registry)
	}
}

// PrevMatch activates the preceding match, wrapping around.
func (s *Session) PrevMatch() {
	if s.search.Prev() {
		s.redraw()
		s.search.ScrollToActive(s.registry)
	}
}

// Search returns the search state of the last pass.
func (s *Session) Search() search.State {
	return s.search.State()
}

// ActiveAnchor returns where the active match was drawn.
func (s *Session) ActiveAnchor() (render.Anchor, bool) {
	if s.search.Total() == 0 {
		return render.Anchor{}, false
	}
	return s.registry.Lookup(s.search.Active())
}

// Clear empties the input and resets every piece of state, including the
// mode and the query.
func (s *Session) Clear() {
	s.input = ""
	s.mode = ModeJSON
	s.query = ""
	s.reset()
	s.render()
}

// Copy writes the formatted document to the clipboard. It reports whether
// anything was copied; clipboard failures are logged and reported as false.
func (s *Session) Copy() bool {
	if s.formatted == "" {
		return false
	}
	if err := s.clipboard.WriteAll(s.formatted); err != nil {
		s.logger.Warn("copy to clipboard failed", logging.FieldError, err)
		return false
	}
	return true
}

// View returns the lines of the last render pass.
func (s *Session) View() *render.View {
	return s.view
}

// Root returns the document being shown, or nil.
func (s *Session) Root() *models.Value {
	return s.root
}

// Formatted returns the document as indented JSON, regardless of what is
// collapsed. It is empty when nothing is shown.
func (s *Session) Formatted() string {
	return s.formatted
}

// Compact returns the document as minified JSON.
func (s *Session) Compact() string {
	if s.root == nil {
		return ""
	}
	return s.formatter.Compact(s.root)
}

// Err returns the error of the last reprocess, if any.
func (s *Session) Err() error {
	return s.err
}

// ErrorMessage returns the inline text for Err, or "".
func (s *Session) ErrorMessage() string {
	return errors.InlineMessage(s.err)
}
