/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"strings"
)

// Trace remembers the most recently executed instructions. Once full, the
// oldest line is overwritten.
type Trace struct {
	// buf contains each line of traced text.
	buf []string

	// pos is where the next line is written.
	pos int

	// full is true once buf has wrapped.
	full bool
}

// NewTrace creates a new Trace holding up to n lines.
func NewTrace(n int) *Trace {
	return &Trace{
		buf: make([]string, n),
	}
}

// Log outputs a new line to the trace.
func (t *Trace) Log(s ...string) {
	t.buf[t.pos] = strings.Join(s, " ")

	t.pos++
	if t.pos == len(t.buf) {
		t.pos = 0
		t.full = true
	}
}

// Lines returns the traced lines, oldest first.
func (t *Trace) Lines() []string {
	if !t.full {
		return append([]string(nil), t.buf[:t.pos]...)
	}

	lines := make([]string, 0, len(t.buf))
	lines = append(lines, t.buf[t.pos:]...)
	return append(lines, t.buf[:t.pos]...)
}

// Window returns the last n traced lines.
func (t *Trace) Window(n int) []string {
	lines := t.Lines()

	// don't scroll past the beginning
	start := len(lines) - n
	if start < 0 {
		start = 0
	}

	return lines[start:]
}

// Reset empties the trace.
func (t *Trace) Reset() {
	t.pos = 0
	t.full = false
}
