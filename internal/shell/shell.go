// Package shell is the interactive terminal form over the roster.
//
// It keeps the table it last displayed so that "delete <row>" always refers
// to what the user is looking at, including a filtered search result.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/response"
	"github.com/stemsi/roster/internal/service"
)

// Confirmer obtains a yes/no decision from the user before a destructive
// operation.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// Shell reads commands line by line and renders the roster table.
type Shell struct {
	svc         *service.StudentService
	in          *bufio.Reader
	out         io.Writer
	confirmer   Confirmer
	interactive bool
	log         zerolog.Logger

	view []model.Student
}

// Option configures a Shell.
type Option func(*Shell)

// WithConfirmer replaces the default confirmer, which reads a y/n answer from
// the shell's own input.
func WithConfirmer(c Confirmer) Option {
	return func(s *Shell) { s.confirmer = c }
}

// Interactive enables the command and field prompts.
func Interactive(on bool) Option {
	return func(s *Shell) { s.interactive = on }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Shell) { s.log = log.With().Str("component", "shell").Logger() }
}

// New creates a Shell over svc reading from in and writing to out.
func New(svc *service.StudentService, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		svc: svc,
		in:  bufio.NewReader(in),
		out: out,
		log: zerolog.Nop(),
	}
	s.confirmer = ConfirmFunc(s.confirmFromInput)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const helpText = `Commands:
  list                          show every student
  search [keyword]              filter by ID or name; empty shows all
  add [id | name | age | class] add a student; prompts when no fields given
  delete <row>                  delete a row of the table shown
  reset                         remove every student
  help                          show this help
  quit                          leave
`

// Run shows the roster and processes commands until quit or end of input.
func (s *Shell) Run() error {
	s.view = s.svc.List()
	if err := s.render(); err != nil {
		return err
	}

	for {
		if s.interactive {
			s.printf("> ")
		}
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := s.Exec(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the shell should stop.
func (s *Shell) Exec(line string) (bool, error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	s.log.Debug().Str("command", cmd).Msg("command received")

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help", "?":
		s.printf("%s", helpText)
		return false, nil
	case "list":
		s.view = s.svc.List()
		return false, s.render()
	case "search":
		return false, s.search(rest)
	case "add":
		return false, s.add(rest)
	case "delete", "del", "rm":
		return false, s.delete(rest)
	case "reset":
		return false, s.reset()
	default:
		s.printf("Unknown command %q. Type help for commands.\n", cmd)
		return false, nil
	}
}

func (s *Shell) search(keyword string) error {
	res := s.svc.Search(keyword)
	s.view = res.Students
	if err := s.render(); err != nil {
		return err
	}
	if res.Status == service.SearchNoMatch {
		s.printf("%s\n", response.MsgNoMatch)
	}
	return nil
}

func (s *Shell) add(inline string) error {
	var fields [4]string
	if strings.TrimSpace(inline) != "" {
		parts := strings.SplitN(inline, "|", 4)
		copy(fields[:], parts)
	} else {
		for i, label := range []string{"ID", "Name", "Age", "Class"} {
			if s.interactive {
				s.printf("%s: ", label)
			}
			v, err := s.readLine()
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			fields[i] = v
		}
	}

	if _, err := s.svc.Add(fields[0], fields[1], fields[2], fields[3]); err != nil {
		s.printf("Input Error: %s\n", message(err))
		return nil
	}

	s.view = s.svc.List()
	s.printf("%s\n", response.MsgStudentAdded)
	return s.render()
}

func (s *Shell) delete(arg string) error {
	position := -1
	if row, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil && row >= 1 && row <= len(s.view) {
		position = row - 1
	}
	if position < 0 {
		s.printf("%s\n", message(service.ErrNoSelection))
		return nil
	}

	ok, err := s.confirmer.Confirm(response.MsgConfirmDelete)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !ok {
		s.printf("Cancelled\n")
		return nil
	}

	students, err := s.svc.DeleteAt(s.view, position)
	if err != nil {
		s.printf("%s\n", message(err))
		return nil
	}
	s.view = students
	return s.render()
}

func (s *Shell) reset() error {
	ok, err := s.confirmer.Confirm(response.MsgConfirmReset)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !ok {
		s.printf("Cancelled\n")
		return nil
	}

	s.view = s.svc.Reset()
	return s.render()
}

func (s *Shell) confirmFromInput(prompt string) (bool, error) {
	s.printf("%s [y/N]: ", prompt)
	answer, err := s.readLine()
	if !s.interactive {
		s.printf("\n")
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, err
	default:
		return false, err
	}
}

func (s *Shell) render() error {
	return RenderTable(s.out, s.view)
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned together with io.EOF.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// message maps a roster error to the text shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingField):
		return response.GetMessage(response.ErrMissingField)
	case errors.Is(err, service.ErrInvalidNumber):
		return response.GetMessage(response.ErrInvalidNumber)
	case errors.Is(err, service.ErrInvalidAge):
		return response.GetMessage(response.ErrInvalidAge)
	case errors.Is(err, service.ErrDuplicateID):
		return response.GetMessage(response.ErrDuplicateID)
	case errors.Is(err, service.ErrNoSelection):
		return response.GetMessage(response.ErrNoSelection)
	case errors.Is(err, service.ErrNotFound):
		return response.GetMessage(response.ErrNotFound)
	default:
		return err.Error()
	}
}
