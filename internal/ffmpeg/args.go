package ffmpeg

// Args is an ordered token list. Order is significant to ffmpeg, duplicates
// are kept, and flag/value pairing is not checked.
type Args []string

// Append adds tokens to the end of the list.
func (a *Args) Append(tokens ...string) {
	*a = append(*a, tokens...)
}

// Len reports the number of tokens.
func (a Args) Len() int {
	return len(a)
}

// Slice returns a copy of the tokens.
func (a Args) Slice() []string {
	return append([]string(nil), a...)
}
