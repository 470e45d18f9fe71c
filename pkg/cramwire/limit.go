package cramwire

// limitFrame is one entry of the reader's nested length-delimited
// message stack. end is the absolute buffer position at which the
// frame's sub-message must stop; the frame below it may extend past
// end, which is why a token is required to pop frames in LIFO order
// rather than just tracking a single current limit.
type limitFrame struct {
	end int
}

// LimitToken identifies a previously pushed read limit. It must be
// passed to PopLimit to close the corresponding frame; tokens are not
// interchangeable between readers and must be popped in the reverse
// order they were pushed.
type LimitToken int

// PushLimit restricts reads to the next n bytes, for decoding a nested
// length-delimited sub-message without allocating a sub-reader. It
// returns a token to pass to PopLimit once the sub-message has been
// fully consumed.
//
// PushLimit enforces that the new limit falls within any
// already-active limit, and counts against the decoder's MaxDepth.
func (r *Reader) PushLimit(n int) (LimitToken, error) {
	if n < 0 {
		r.setError(ErrNegativeLength)
		return 0, ErrNegativeLength
	}
	if !r.enterNested() {
		return 0, r.err
	}
	end := r.pos + n
	if end < r.pos {
		r.exitNested()
		r.setErrorAt(ErrOverflow, "limit overflow")
		return 0, r.err
	}
	if outer := r.currentLimit(); outer >= 0 && end > outer {
		r.exitNested()
		r.setErrorAt(ErrOverflow, "nested limit exceeds enclosing frame")
		return 0, r.err
	}
	if end > len(r.data) {
		r.exitNested()
		r.setErrorAt(ErrUnexpectedEOF, "nested limit exceeds available data")
		return 0, r.err
	}
	token := LimitToken(len(r.limitStack))
	r.limitStack = append(r.limitStack, limitFrame{end: end})
	return token, nil
}

// PopLimit closes the frame opened by the matching PushLimit call. Any
// bytes within the frame that were not consumed by the caller are
// skipped, debiting them against the enclosing frame (if any) the way
// a length-delimited field's declared size always does, regardless of
// how much of it the caller actually decoded.
func (r *Reader) PopLimit(token LimitToken) {
	if int(token) != len(r.limitStack)-1 {
		r.setErrorAt(ErrOverflow, "limit token popped out of order")
		return
	}
	frame := r.limitStack[token]
	r.limitStack = r.limitStack[:token]
	r.exitNested()
	if r.err != nil {
		return
	}
	if r.pos < frame.end {
		r.pos = frame.end
	} else if r.pos > frame.end {
		r.setErrorAt(ErrOverflow, "read past message boundary")
	}
}

// currentLimit returns the absolute position of the innermost active
// frame, or -1 if there is none.
func (r *Reader) currentLimit() int {
	if len(r.limitStack) == 0 {
		return -1
	}
	return r.limitStack[len(r.limitStack)-1].end
}

// LimitRemaining reports how many bytes remain in the innermost active
// frame, or the whole buffer's remaining length if no frame is active.
func (r *Reader) LimitRemaining() int {
	limit := r.currentLimit()
	if limit < 0 {
		return r.Len()
	}
	if r.pos >= limit {
		return 0
	}
	return limit - r.pos
}
