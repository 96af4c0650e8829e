package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Symbol prefixes a narration line.
type Symbol string

const (
	SymInfo    Symbol = "📋"
	SymSuccess Symbol = "✅"
	SymError   Symbol = "❌"
	SymWarning Symbol = "⚠️"
	SymPending Symbol = "⏳"
	SymWallet  Symbol = "💳"
	SymETH     Symbol = "💎"
	SymPRIOR   Symbol = "🔶"
	SymUSDT    Symbol = "💵"
	SymUSDC    Symbol = "💰"
	SymSwap    Symbol = "🔄"
	SymApprove Symbol = "🔑"
	SymWait    Symbol = "⌛"
	SymFaucet  Symbol = "💧"
)

var symbolColors = map[Symbol]*color.Color{
	SymSuccess: color.New(color.FgGreen),
	SymError:   color.New(color.FgRed),
	SymWarning: color.New(color.FgYellow),
	SymWallet:  color.New(color.FgCyan),
	SymSwap:    color.New(color.FgMagenta),
	SymWait:    color.New(color.Faint),
}

// Printer writes operator-facing narration.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Printf writes one line prefixed with sym.
func (p *Printer) Printf(sym Symbol, format string, args ...interface{}) {
	line := string(sym) + " " + fmt.Sprintf(format, args...)
	if c, ok := symbolColors[sym]; ok {
		c.Fprintln(p.w, line)
		return
	}
	fmt.Fprintln(p.w, line)
}

// Println writes an undecorated line.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Info(format string, args ...interface{})    { p.Printf(SymInfo, format, args...) }
func (p *Printer) Success(format string, args ...interface{}) { p.Printf(SymSuccess, format, args...) }
func (p *Printer) Error(format string, args ...interface{})   { p.Printf(SymError, format, args...) }
func (p *Printer) Warning(format string, args ...interface{}) { p.Printf(SymWarning, format, args...) }

// Banner prints the startup header.
func (p *Printer) Banner(title string) {
	c := color.New(color.FgCyan, color.Bold)
	c.Fprintln(p.w, "==========================================")
	c.Fprintln(p.w, " "+title)
	c.Fprintln(p.w, "==========================================")
}
