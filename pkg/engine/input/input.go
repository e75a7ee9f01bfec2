package input

import (
	"bufio"
	"context"
	"io"
	"time"
)

// ReadKey decodes one key from a terminal in raw mode. Printable keys come
// back as themselves (lower-cased), arrows as "arrow_up" and friends, and a
// few control bytes by name. Unknown escape sequences decode to "".
func ReadKey(r *bufio.Reader) (string, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch {
	case b1 == 0x1b:
		return readEscape(r)
	case b1 == 3:
		return "ctrl_c", nil
	case b1 == '\r' || b1 == '\n':
		return "enter", nil
	case b1 == 127 || b1 == 8:
		return "backspace", nil
	case b1 >= 'A' && b1 <= 'Z':
		return string(rune(b1 - 'A' + 'a')), nil
	case b1 >= 32 && b1 < 127:
		return string(rune(b1)), nil
	}
	return "", nil
}

// readEscape handles both CSI sequences (ESC [) and SS3 sequences (ESC O).
// A lone ESC with nothing buffered behind it is the escape key.
func readEscape(r *bufio.Reader) (string, error) {
	if r.Buffered() == 0 {
		return "escape", nil
	}
	b2, err := r.ReadByte()
	if err != nil {
		return "escape", nil
	}
	if b2 != '[' && b2 != 'O' {
		return "escape", r.UnreadByte()
	}
	b3, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	return "", nil
}

// Listen reads keys from r until it fails or ctx is done and delivers them
// as raw terminal presses. The channel is closed when reading stops.
func Listen(ctx context.Context, r io.Reader) <-chan RawInput {
	out := make(chan RawInput, 16)
	br := bufio.NewReader(r)
	go func() {
		defer close(out)
		for {
			code, err := ReadKey(br)
			if err != nil {
				return
			}
			if code == "" {
				continue
			}
			select {
			case out <- RawInput{Device: DeviceTerminal, Code: code, Phase: Pressed, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
