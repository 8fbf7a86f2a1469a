package generator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"XRPVanity/pkg/appcfg"
)

const matchTimeLayout = "2006-01-02 15:04:05"

type ConsoleOptions struct {
	Status string // appcfg.StatusAuto|StatusAlways|StatusNever
	Color  bool
}

// Console is the output gate. Match lines and the status line share one lock
// so neither is ever written mid-line of the other.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	status bool
	width  int // width of the status line currently on screen
	addr   *color.Color
}

func NewConsole(w io.Writer, opt ConsoleOptions) *Console {
	c := &Console{w: w}
	switch opt.Status {
	case appcfg.StatusAlways:
		c.status = true
	case appcfg.StatusNever:
		c.status = false
	default:
		c.status = isTerminal(w)
	}
	if opt.Color {
		c.addr = color.New(color.FgGreen, color.Bold)
		c.addr.EnableColor()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Match writes "[YYYY-MM-DD HH:MM:SS] <address> => <familySeed>".
func (c *Console) Match(at time.Time, address, familySeed string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearStatus()
	if c.addr != nil {
		address = c.addr.Sprint(address)
	}
	_, err := fmt.Fprintf(c.w, "[%s] %s => %s\n", at.Format(matchTimeLayout), address, familySeed)
	return err
}

// Status runs sample under the gate and, when enabled, overwrites the status
// line with its result as "[<n>/s]". sample always runs so the counter is
// reset even when the line is suppressed.
func (c *Console) Status(sample func() uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rate := sample()
	if !c.status {
		return
	}
	line := fmt.Sprintf("[%d/s]", rate)
	pad := ""
	if n := c.width - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	c.width = len(line)
	_, _ = fmt.Fprint(c.w, line+pad+"\r")
}

func (c *Console) clearStatus() {
	if c.width == 0 {
		return
	}
	_, _ = fmt.Fprint(c.w, strings.Repeat(" ", c.width)+"\r")
	c.width = 0
}

// Println writes a plain line under the gate.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearStatus()
	_, _ = fmt.Fprintln(c.w, a...)
}

// Printf writes formatted text under the gate.
func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearStatus()
	_, _ = fmt.Fprintf(c.w, format, a...)
}
