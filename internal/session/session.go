package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/kingsmud/kings/internal"
	"github.com/kingsmud/kings/internal/action"
	"github.com/kingsmud/kings/internal/display"
	"github.com/kingsmud/kings/internal/world"
)

// mailboxDepth bounds how many undrained narrations a slow reader can
// accumulate before new ones are dropped.
const mailboxDepth = 32

// Session is the cooperative task managing one connected player. It
// owns the player's store lifecycle: the entity is added after the
// username prompt and removed on every exit path, graceful or not.
type Session struct {
	id     string
	conn   io.ReadWriter
	store  *world.Store
	interp *action.Interpreter
	bus    Bus
	send   action.Deliverer
	start  string

	player *world.Player
	msgs   chan string
}

func (s *Session) Run(ctx context.Context) error {
	username, err := internal.Prompt(s.conn, "User: ", internal.WithValidator(validUsername))
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	s.player = world.NewPlayer(username, s.start)
	err = s.store.Add(s.player)
	if err != nil {
		return fmt.Errorf("registering player: %w", err)
	}
	defer s.close(ctx)

	s.msgs = make(chan string, mailboxDepth)
	unsubscribe, err := s.bus.Subscribe(s.player.MailboxSubject(), func(data []byte) {
		select {
		case s.msgs <- string(data):
		default:
			slog.Warn("mailbox full, dropping narration", "player", username)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing mailbox: %w", err)
	}
	defer unsubscribe()

	slog.InfoContext(ctx, "player connected", "session", s.id, "player", username)

	// The first thing a new player sees is their surroundings, queued on
	// their own mailbox like any other asynchronous narration.
	look := &action.Look{Store: s.store, Observer: s.player, TargetId: s.player.LocationId()}
	text, err := look.Execute(ctx)
	if err != nil {
		return fmt.Errorf("initial look: %w", err)
	}
	err = s.send.Deliver(s.player.Id(), text)
	if err != nil {
		return fmt.Errorf("queueing initial look: %w", err)
	}

	return s.loop(ctx)
}

// loop multiplexes input lines and mailbox deliveries. One message
// batch is flushed per iteration, interleaved with input handling, so
// neither side starves the other and a slow reader never gets an
// unbounded backlog in one write.
func (s *Session) loop(ctx context.Context) error {
	// done lets the reader goroutine abandon a pending send once the
	// loop has returned, e.g. when an input segment carried more lines
	// after an exit command.
	done := make(chan struct{})
	defer close(done)

	inputc := make(chan string)
	inputErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			select {
			case inputc <- scanner.Text():
			case <-done:
				return
			}
		}
		inputErr <- scanner.Err()
		close(inputc)
	}()

	for s.player.Active() {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			err := s.writeBlock(msg)
			if err != nil {
				return err
			}

		case line, ok := <-inputc:
			if !ok {
				// Connection severed; cleanup runs on the way out.
				select {
				case err := <-inputErr:
					return err
				default:
					return nil
				}
			}

			err := s.handle(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Session) handle(ctx context.Context, line string) error {
	if line == "" {
		return s.writePrompt()
	}

	act := s.interp.Interpret(s.player, line)
	text, err := act.Execute(ctx)
	if err != nil {
		return fmt.Errorf("executing %q: %w", line, err)
	}

	if text == "" {
		return s.writePrompt()
	}
	return s.writeBlock(text)
}

// writeBlock flushes one narration batch: wrapped text, a blank line,
// then the prompt marker.
func (s *Session) writeBlock(text string) error {
	_, err := s.conn.Write([]byte(display.Wrap(text) + "\n\n% "))
	return err
}

func (s *Session) writePrompt() error {
	_, err := s.conn.Write([]byte("\n% "))
	return err
}

// close removes the player from the store. Removal may have already
// happened (death), which is fine.
func (s *Session) close(ctx context.Context) {
	err := s.store.Remove(s.player.Id())
	if err != nil && !errors.Is(err, world.ErrNotFound) {
		slog.WarnContext(ctx, "removing player", "session", s.id, "player", s.player.Id(), "error", err)
	}
	slog.InfoContext(ctx, "session closed", "session", s.id, "player", s.player.Id())
}

// validUsername keeps identifiers to single alphanumeric words so they
// stay valid store ids and mailbox subject tokens.
func validUsername(str string) (bool, string) {
	if str == "" {
		return false, "A name is required.\n"
	}
	for _, r := range str {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false, "Names are a single word of letters and digits.\n"
		}
	}
	return true, ""
}
