package key

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Decoder reads key events from a raw-mode terminal byte stream.
//
// A lone ESC byte is reported as KeyEscape when no further bytes are
// already buffered; terminals write an escape sequence in one piece, so a
// sequence never straddles two reads in practice.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadEvent blocks until one complete key event has been read.
// Unknown escape sequences are consumed and reported as KeyNone.
func (d *Decoder) ReadEvent() (Event, error) {
	r, size, err := d.r.ReadRune()
	if err != nil {
		return Event{}, err
	}
	if r == utf8.RuneError && size == 1 {
		return Event{Key: KeyNone}, nil
	}

	switch {
	case r == 0x1b:
		return d.readEscape()
	case r == 0x7f || r == 0x08:
		return NewSpecialEvent(KeyBackspace, ModNone), nil
	case r == '\r' || r == '\n':
		return NewSpecialEvent(KeyEnter, ModNone), nil
	case r == '\t':
		return NewSpecialEvent(KeyTab, ModNone), nil
	case r == 0x00:
		return NewRuneEvent(' ', ModCtrl), nil
	case r < 0x20:
		return controlEvent(byte(r)), nil
	default:
		return NewRuneEvent(r, ModNone), nil
	}
}

// controlEvent maps C0 control bytes 0x01..0x1f to Ctrl+letter.
func controlEvent(b byte) Event {
	if b >= 0x01 && b <= 0x1a {
		return Ctrl(rune('a' + b - 1))
	}
	// 0x1c..0x1f: Ctrl+\ ] ^ _
	return NewRuneEvent(rune(b+0x40), ModCtrl)
}

func (d *Decoder) readEscape() (Event, error) {
	if d.r.Buffered() == 0 {
		return NewSpecialEvent(KeyEscape, ModNone), nil
	}

	b, err := d.r.ReadByte()
	if err != nil {
		return NewSpecialEvent(KeyEscape, ModNone), nil
	}

	switch {
	case b == '[':
		return d.readCSI()
	case b == 'O':
		return d.readSS3()
	case b == 0x1b:
		return NewSpecialEvent(KeyEscape, ModAlt), nil
	case b < 0x20:
		ev := controlEvent(b)
		ev.Modifiers = ev.Modifiers.With(ModAlt)
		return ev, nil
	default:
		if err := d.r.UnreadByte(); err != nil {
			return Event{}, err
		}
		r, _, err := d.r.ReadRune()
		if err != nil {
			return Event{}, err
		}
		return NewRuneEvent(r, ModAlt), nil
	}
}

// maxCSILen bounds how far a malformed sequence is scanned.
const maxCSILen = 16

func (d *Decoder) readCSI() (Event, error) {
	var params strings.Builder
	for i := 0; i < maxCSILen; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			k, mods, ok := lookupCSI(params.String(), b)
			if !ok {
				return Event{Key: KeyNone}, nil
			}
			return NewSpecialEvent(k, mods), nil
		}
		if b < 0x20 || b > 0x7e {
			return Event{Key: KeyNone}, nil
		}
		params.WriteByte(b)
	}
	return Event{Key: KeyNone}, nil
}

func (d *Decoder) readSS3() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Event{}, err
	}
	if k, ok := finalKeys[b]; ok {
		return NewSpecialEvent(k, ModNone), nil
	}
	switch b {
	case 'P':
		return NewSpecialEvent(KeyF1, ModNone), nil
	case 'Q':
		return NewSpecialEvent(KeyF2, ModNone), nil
	case 'R':
		return NewSpecialEvent(KeyF3, ModNone), nil
	case 'S':
		return NewSpecialEvent(KeyF4, ModNone), nil
	}
	return Event{Key: KeyNone}, nil
}

// finalKeys maps the final byte of "ESC [ A" style sequences.
var finalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys maps the numeric parameter of "ESC [ n ~" sequences.
var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

func lookupCSI(params string, final byte) (Key, Modifier, bool) {
	fields := strings.Split(params, ";")
	mods := ModNone
	if len(fields) == 2 {
		mods = xtermModifier(fields[1])
	}

	if final == '~' {
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return KeyNone, ModNone, false
		}
		k, ok := tildeKeys[n]
		return k, mods, ok
	}

	k, ok := finalKeys[final]
	return k, mods, ok
}

// xtermModifier decodes the "1;5" style modifier parameter (value-1 is a bitmask).
func xtermModifier(param string) Modifier {
	n, err := strconv.Atoi(param)
	if err != nil || n < 2 {
		return ModNone
	}
	bits := n - 1
	mods := ModNone
	if bits&1 != 0 {
		mods = mods.With(ModShift)
	}
	if bits&2 != 0 {
		mods = mods.With(ModAlt)
	}
	if bits&4 != 0 {
		mods = mods.With(ModCtrl)
	}
	if bits&8 != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}
