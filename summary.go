// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"io"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"

	"github.com/jetsetilly/h8core/hardware"
	"github.com/jetsetilly/h8core/hardware/clocks"
	"github.com/jetsetilly/h8core/logger"
)

// newPrinter returns a printer for the user's locale. counts printed by the
// printer are grouped according to the locale.
func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		logger.Logf(logger.Allow, "h8core", "locale: %v", err)
	}
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}
	return message.NewPrinter(message.MatchLanguage(locales...))
}

// printSummary writes the statistics of the run and the final registers.
func printSummary(w io.Writer, b *hardware.Board) {
	p := newPrinter()
	st := b.CPU.Stats()

	p.Fprintf(w, "%s\n", b.CPU.Variant().Name)
	p.Fprintf(w, "cycles:        %d\n", b.Cycles())
	if mhz, ok := clocks.MHz(b.CPU.Variant().Name); ok {
		p.Fprintf(w, "time:          %v at %.0fMHz\n", clocks.Duration(b.Cycles(), mhz), mhz)
	}
	p.Fprintf(w, "instructions:  %d\n", st.Instructions)
	p.Fprintf(w, "interrupts:    %d\n", st.Interrupts)
	if st.Traces > 0 {
		p.Fprintf(w, "traces:        %d\n", st.Traces)
	}
	p.Fprintf(w, "dma units:     %d\n", st.DMAUnits)
	p.Fprintf(w, "dtc transfers: %d\n", st.DTCTransfers)
	if b.Stimulus != nil {
		p.Fprintf(w, "events:        %d of %d\n", b.Stimulus.Fired(), len(b.Stimulus.Events()))
	}
	if b.CPU.Sleeping() {
		p.Fprintf(w, "sleeping\n")
	}

	for _, r := range b.CPU.Registers() {
		// hex values are not grouped
		p.Fprintf(w, "%-4s %0*x\n", r.Name, (r.Bits+3)/4, r.Value)
	}
	p.Fprintf(w, "flags %s\n", b.CPU.Flags())
}
