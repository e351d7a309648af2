package evil

// Operator acts on the span a motion covers. The zero value is no operator.
type Operator uint8

const (
	Yank Operator = iota + 1
	Delete
	Change
)

var operatorNames = map[Operator]string{
	Yank:   "yank",
	Delete: "delete",
	Change: "change",
}

var operatorKeys = map[Operator]rune{
	Yank:   'y',
	Delete: 'd',
	Change: 'c',
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "none"
}

// Key returns the conventional key for the operator.
func (o Operator) Key() rune {
	return operatorKeys[o]
}

func (o Operator) valid() bool {
	_, ok := operatorNames[o]
	return ok
}

// ParseOperator maps a keymap name such as "delete" to an operator.
func ParseOperator(name string) (Operator, bool) {
	for o, n := range operatorNames {
		if n == name {
			return o, true
		}
	}
	return 0, false
}

// Motion identifies the motion or text object of a command.
type Motion uint8

const (
	ParagraphForward Motion = iota + 1
	ParagraphBackward
	NextWordStart
	NextWordEnd
	PrevWordStart
	// Word and Paragraph are text objects and need a scope modifier.
	Word
	Paragraph
)

var motionNames = map[Motion]string{
	ParagraphForward:  "paragraph_forward",
	ParagraphBackward: "paragraph_backward",
	NextWordStart:     "next_word_start",
	NextWordEnd:       "next_word_end",
	PrevWordStart:     "prev_word_start",
	Word:              "word",
	Paragraph:         "paragraph",
}

var motionKeys = map[Motion]rune{
	ParagraphForward:  '}',
	ParagraphBackward: '{',
	NextWordStart:     'w',
	NextWordEnd:       'e',
	PrevWordStart:     'b',
	Word:              'w',
	Paragraph:         'p',
}

func (m Motion) String() string {
	if name, ok := motionNames[m]; ok {
		return name
	}
	return "none"
}

func (m Motion) Key() rune {
	return motionKeys[m]
}

func (m Motion) valid() bool {
	_, ok := motionNames[m]
	return ok
}

// RequiresModifier reports whether the motion is only valid with a scope.
func (m Motion) RequiresModifier() bool {
	return m == Word || m == Paragraph
}

func (m Motion) satisfiedBy(mods []Modifier) bool {
	return !m.RequiresModifier() || len(mods) > 0
}

func ParseMotion(name string) (Motion, bool) {
	for m, n := range motionNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// Modifier narrows the scope of a motion.
type Modifier uint8

const (
	Inner Modifier = iota + 1
	Around
)

func (q Modifier) String() string {
	switch q {
	case Inner:
		return "inner"
	case Around:
		return "around"
	default:
		return "none"
	}
}

func (q Modifier) Key() rune {
	switch q {
	case Inner:
		return 'i'
	case Around:
		return 'a'
	default:
		return 0
	}
}

func (q Modifier) valid() bool {
	return q == Inner || q == Around
}

func ParseModifier(name string) (Modifier, bool) {
	switch name {
	case "inner":
		return Inner, true
	case "around":
		return Around, true
	}
	return 0, false
}

// Mode is the editing mode a command switches to. The zero value means no
// switch.
type Mode uint8

const (
	ModeNormal Mode = iota + 1
	ModeInsert
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	default:
		return "none"
	}
}

func (m Mode) valid() bool {
	return m == ModeNormal || m == ModeInsert
}

func ParseMode(name string) (Mode, bool) {
	switch name {
	case "normal":
		return ModeNormal, true
	case "insert":
		return ModeInsert, true
	}
	return 0, false
}

// addModifiers appends the valid modifiers of add that mods lacks. It never
// modifies mods in place.
func addModifiers(mods []Modifier, add ...Modifier) []Modifier {
	out := append([]Modifier(nil), mods...)
	for _, q := range add {
		if !q.valid() || containsModifier(out, q) {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func containsModifier(mods []Modifier, q Modifier) bool {
	for _, m := range mods {
		if m == q {
			return true
		}
	}
	return false
}
