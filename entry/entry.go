// Package entry accumulates keypad characters into a fixed-length code.
package entry

// Length is the number of characters in a complete code.
const Length = 4

// Entry holds the characters selected so far. It never holds more than
// Length characters: the press that completes a code also clears it.
type Entry struct {
	buf [Length]byte
	n   int
}

// Press appends ch. When the code reaches Length characters it is returned
// with complete set and the buffer is cleared in the same call.
func (e *Entry) Press(ch byte) (code string, complete bool) {
	if e.n < Length {
		e.buf[e.n] = ch
		e.n++
	}
	if e.n < Length {
		return e.Code(), false
	}
	code = e.Code()
	e.Reset()
	return code, true
}

// Code returns the characters entered so far.
func (e *Entry) Code() string {
	return string(e.buf[:e.n])
}

// Len returns the number of characters held.
func (e *Entry) Len() int {
	return e.n
}

// Reset clears the buffer.
func (e *Entry) Reset() {
	e.buf = [Length]byte{}
	e.n = 0
}
