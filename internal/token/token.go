// Package token defines lexical tokens for the robot control language.
package token

import "strconv"

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF
	WORD                 // <word>

	// Punctuation
	punctStart
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
	ASSIGN    // =
	punctEnd

	// Statement keywords
	keywordStart
	LOOP  // loop
	IF    // if
	ELIF  // elif
	ELSE  // else
	WHILE // while
	keywordEnd

	// Logical operators
	logicStart
	NOT // not
	AND // and
	OR  // or
	logicEnd

	// Relational operators
	relopStart
	LT // lt
	GT // gt
	EQ // eq
	relopEnd

	// Arithmetic operators
	mathStart
	ADD // add
	SUB // sub
	MUL // mul
	DIV // div
	mathEnd

	// Robot actions
	actionStart
	MOVE        // move
	TURN_L      // turnL
	TURN_R      // turnR
	TURN_AROUND // turnAround
	SHIELD_ON   // shieldOn
	SHIELD_OFF  // shieldOff
	TAKE_FUEL   // takeFuel
	WAIT        // wait
	actionEnd

	// Robot sensors
	sensorStart
	FUEL_LEFT   // fuelLeft
	OPP_LR      // oppLR
	OPP_FB      // oppFB
	NUM_BARRELS // numBarrels
	BARREL_LR   // barrelLR
	BARREL_FB   // barrelFB
	WALL_DIST   // wallDist
	sensorEnd

	// Literals
	NUMBER // number
	VAR    // variable
)

var names = [...]string{
	ILLEGAL:     "<illegal>",
	EOF:         "EOF",
	WORD:        "<word>",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	COMMA:       ",",
	SEMICOLON:   ";",
	ASSIGN:      "=",
	LOOP:        "loop",
	IF:          "if",
	ELIF:        "elif",
	ELSE:        "else",
	WHILE:       "while",
	NOT:         "not",
	AND:         "and",
	OR:          "or",
	LT:          "lt",
	GT:          "gt",
	EQ:          "eq",
	ADD:         "add",
	SUB:         "sub",
	MUL:         "mul",
	DIV:         "div",
	MOVE:        "move",
	TURN_L:      "turnL",
	TURN_R:      "turnR",
	TURN_AROUND: "turnAround",
	SHIELD_ON:   "shieldOn",
	SHIELD_OFF:  "shieldOff",
	TAKE_FUEL:   "takeFuel",
	WAIT:        "wait",
	FUEL_LEFT:   "fuelLeft",
	OPP_LR:      "oppLR",
	OPP_FB:      "oppFB",
	NUM_BARRELS: "numBarrels",
	BARREL_LR:   "barrelLR",
	BARREL_FB:   "barrelFB",
	WALL_DIST:   "wallDist",
	NUMBER:      "number",
	VAR:         "variable",
}

// String returns the source spelling of keyword, operator, action, sensor
// and punctuation tokens, and a descriptive name for the others.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// IsPunct returns true if the token is a punctuation token.
func (t Token) IsPunct() bool {
	return t > punctStart && t < punctEnd
}

// IsKeyword returns true if the token starts a control statement.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLogicOp returns true for not, and, or.
func (t Token) IsLogicOp() bool {
	return t > logicStart && t < logicEnd
}

// IsRelOp returns true for lt, gt, eq.
func (t Token) IsRelOp() bool {
	return t > relopStart && t < relopEnd
}

// IsMathOp returns true for add, sub, mul, div.
func (t Token) IsMathOp() bool {
	return t > mathStart && t < mathEnd
}

// IsAction returns true if the token names a robot action.
func (t Token) IsAction() bool {
	return t > actionStart && t < actionEnd
}

// IsSensor returns true if the token names a robot sensor.
func (t Token) IsSensor() bool {
	return t > sensorStart && t < sensorEnd
}

// TakesCount reports whether an action accepts a parenthesized repeat count.
func (t Token) TakesCount() bool {
	return t == MOVE || t == WAIT
}

// TakesIndex reports whether a sensor accepts a parenthesized barrel index.
func (t Token) TakesIndex() bool {
	return t == BARREL_LR || t == BARREL_FB
}

// Actions returns every action token in declaration order.
func Actions() []Token {
	return rangeOf(actionStart, actionEnd)
}

// Sensors returns every sensor token in declaration order.
func Sensors() []Token {
	return rangeOf(sensorStart, sensorEnd)
}

// RelOps returns every relational operator token.
func RelOps() []Token {
	return rangeOf(relopStart, relopEnd)
}

// MathOps returns every arithmetic operator token.
func MathOps() []Token {
	return rangeOf(mathStart, mathEnd)
}

func rangeOf(start, end Token) []Token {
	toks := make([]Token, 0, end-start-1)
	for t := start + 1; t < end; t++ {
		toks = append(toks, t)
	}
	return toks
}

// words maps reserved words to their token types.
var words = func() map[string]Token {
	m := make(map[string]Token)
	for t := keywordStart + 1; t < sensorEnd; t++ {
		if names[t] != "" {
			m[names[t]] = t
		}
	}
	return m
}()

// Lookup returns the token type for a reserved word,
// or WORD if the word is not reserved.
func Lookup(word string) Token {
	if tok, ok := words[word]; ok {
		return tok
	}
	return WORD
}
