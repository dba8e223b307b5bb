package grading

// Result é o veredito de três estados compartilhado pelos dois caminhos de
// graduação (determinístico e heurístico).
type Result string

const (
	Won     Result = "WON"
	Lost    Result = "LOST"
	Pending Result = "PENDING"
)

// Terminal informa se o veredito encerra o pari.
func (r Result) Terminal() bool { return r == Won || r == Lost }

// Valid informa se a string é um dos três estados conhecidos.
func (r Result) Valid() bool {
	switch r {
	case Won, Lost, Pending:
		return true
	}
	return false
}
